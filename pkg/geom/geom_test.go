package geom

import (
	"math"
	"testing"
)

const tol = 1e-9

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name  string
		theta float64
		want  float64
	}{
		{"Zero", 0, 0},
		{"Positive", math.Pi / 2, math.Pi / 2},
		{"FullTurn", 2 * math.Pi, 0},
		{"Negative", -math.Pi / 2, 3 * math.Pi / 2},
		{"LargePositive", 5 * math.Pi, math.Pi},
		{"LargeNegative", -7 * math.Pi / 2, math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAngle(tt.theta)
			if math.Abs(got-tt.want) > tol {
				t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.theta, got, tt.want)
			}
			if got < 0 || got >= 2*math.Pi {
				t.Errorf("NormalizeAngle(%v) = %v, outside [0, 2π)", tt.theta, got)
			}
		})
	}
}

func TestClampCorner(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{3.7, 1},
	}

	for _, tt := range tests {
		if got := ClampCorner(tt.in); got != tt.want {
			t.Errorf("ClampCorner(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExponentMonotonic(t *testing.T) {
	// Squareness up (corner down) must push the exponent strictly up.
	prev := Exponent(1)
	if math.Abs(prev-2) > tol {
		t.Fatalf("Exponent(1) = %v, want 2 (circle)", prev)
	}
	for corner := 0.9; corner >= -1e-12; corner -= 0.1 {
		n := Exponent(corner)
		if n <= prev {
			t.Fatalf("Exponent(%v) = %v, not greater than %v", corner, n, prev)
		}
		prev = n
	}
}

func TestRadialModulationCircle(t *testing.T) {
	// corner = 1 is a perfect circle: modulation 1 at every angle.
	for theta := 0.0; theta < 2*math.Pi; theta += 0.1 {
		if m := RadialModulation(theta, 1); math.Abs(m-1) > 1e-12 {
			t.Errorf("RadialModulation(%v, 1) = %v, want 1", theta, m)
		}
	}
}

func TestRadialModulationSquareAxis(t *testing.T) {
	// The axis-aligned point on the square extreme sits at or near full radius.
	m := RadialModulation(0, 0)
	if m < 0.85 || m > 1.05 {
		t.Errorf("RadialModulation(0, 0) = %v, want ≈ 1", m)
	}
}

func TestRadialModulationPositiveBounded(t *testing.T) {
	for c := 0.0; c <= 1.0+1e-12; c += 0.125 {
		for theta := 0.0; theta < 2*math.Pi; theta += 0.05 {
			m := RadialModulation(theta, c)
			if m <= 0 || m >= 2 {
				t.Fatalf("RadialModulation(%v, %v) = %v, outside (0, 2)", theta, c, m)
			}
		}
	}
}

func TestRadialModulationSymmetry(t *testing.T) {
	// The shape family is reflective across both axes.
	for c := 0.0; c <= 1.0+1e-12; c += 0.25 {
		for theta := 0.0; theta < 2*math.Pi; theta += 0.1 {
			m := RadialModulation(theta, c)
			if neg := RadialModulation(-theta, c); math.Abs(m-neg) > tol {
				t.Errorf("modulation(%v, %v) = %v but modulation(-θ) = %v", theta, c, m, neg)
			}
			if mirror := RadialModulation(math.Pi-theta, c); math.Abs(m-mirror) > tol {
				t.Errorf("modulation(%v, %v) = %v but modulation(π-θ) = %v", theta, c, m, mirror)
			}
		}
	}
}

func TestSquarenessRatioMonotonic(t *testing.T) {
	// As corner moves from circle (1) to square (0), the corners pull out
	// relative to the axes: the diagonal/axis ratio strictly increases,
	// from 1 at the circle toward sqrt(2) at the square limit.
	prev := -1.0
	for c := 1.0; c >= -1e-12; c -= 0.1 {
		ratio := RadialModulation(math.Pi/4, c) / RadialModulation(0, c)
		if prev > 0 && ratio <= prev {
			t.Fatalf("diagonal/axis ratio at corner %v = %v, not greater than %v", c, ratio, prev)
		}
		prev = ratio
	}
	if prev >= math.Sqrt2 {
		t.Fatalf("diagonal/axis ratio at the square extreme = %v, want < sqrt(2)", prev)
	}
}

func TestRadialModulationTotal(t *testing.T) {
	// Huge and negative angle magnitudes still evaluate cleanly.
	for _, theta := range []float64{-1e6, -12345.678, 1e6, 987654.321} {
		m := RadialModulation(theta, 0.3)
		if math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 {
			t.Errorf("RadialModulation(%v, 0.3) = %v, want finite positive", theta, m)
		}
	}
}

func TestPositionOnPath(t *testing.T) {
	tests := []struct {
		name                   string
		cx, cy, radius, angle  float64
		corner                 float64
		wantX, wantY, posTol   float64
	}{
		{"CircleEast", 0, 0, 100, 0, 1, 100, 0, tol},
		{"CircleSouth", 0, 0, 100, math.Pi / 2, 1, 0, 100, 1e-7},
		{"Centered", 400, 300, 100, math.Pi, 1, 300, 300, 1e-7},
		{"ZeroRadius", 50, 50, 0, 1.234, 0.5, 50, 50, tol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PositionOnPath(tt.cx, tt.cy, tt.radius, tt.angle, tt.corner)
			if math.Abs(p.X-tt.wantX) > tt.posTol || math.Abs(p.Y-tt.wantY) > tt.posTol {
				t.Errorf("PositionOnPath = (%v, %v), want (%v, %v)", p.X, p.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestPositionOnPathContinuityAtExtremes(t *testing.T) {
	// No jump at corner 0 or 1: nearby corner values give nearby points.
	for _, c := range []float64{0, 1} {
		inner := 0.001
		if c == 1 {
			inner = 0.999
		}
		for theta := 0.0; theta < 2*math.Pi; theta += 0.2 {
			a := PositionOnPath(0, 0, 100, theta, c)
			b := PositionOnPath(0, 0, 100, theta, inner)
			if math.Hypot(a.X-b.X, a.Y-b.Y) > 1.0 {
				t.Fatalf("discontinuity near corner %v at θ=%v: %v vs %v", c, theta, a, b)
			}
		}
	}
}
