package geom

import "math"

// Superellipse tuning. The exponent runs from exponentMin (corner = 1,
// perfect circle) to exponentMin + exponentRange (corner = 0, rounded
// square). The compensation constant shrinks the square extreme so it does
// not read as larger than the circle at the same nominal radius. These are
// aesthetic values; the contract is monotonicity and continuity, not the
// literal numbers.
const (
	exponentMin   = 2.0
	exponentRange = 10.0
	compensation  = 0.12
)

// Point is a position in screen coordinates (y grows downward).
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// ClampCorner clamps a corner parameter to [0,1].
// Out-of-range input is normalized, never rejected.
func ClampCorner(corner float64) float64 {
	return math.Min(1, math.Max(0, corner))
}

// NormalizeAngle maps any real angle into [0, 2π).
func NormalizeAngle(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta
}

// Exponent returns the superellipse exponent for a clamped corner value.
// It decreases strictly as corner grows: 0 (square) maps to the high end,
// 1 (circle) maps to exactly 2.
func Exponent(corner float64) float64 {
	return exponentMin + exponentRange*(1-corner)
}

// RadialModulation returns the strictly positive factor that bends a
// circular path of nominal radius 1 into the corner-parametrized shape at
// the given angle. The angle is normalized before evaluation so large
// magnitudes do not pick up sign artifacts.
//
// For corner = 1 the result is exactly 1 at every angle. For smaller corner
// values the modulation stays 1 on the axes and bulges toward the diagonals,
// scaled down by a small compensation factor so the square extreme keeps
// visual size parity with the circle.
func RadialModulation(angle, corner float64) float64 {
	theta := NormalizeAngle(angle)
	n := Exponent(corner)

	x := math.Abs(math.Cos(theta))
	y := math.Abs(math.Sin(theta))

	base := math.Pow(x, n) + math.Pow(y, n)
	if base == 0 {
		// Unreachable for real cos/sin, but a safe default beats a domain error.
		return 1.0
	}

	r := math.Pow(base, -1/n)
	return r / (1 + compensation*(1-corner))
}

// PositionOnPath computes the point on the interpolated circle/square
// boundary at the given angle. The curve is centered at (cx, cy) with
// nominal radius radius; corner selects the shape per [RadialModulation].
// Callers are expected to clamp corner with [ClampCorner] first.
func PositionOnPath(cx, cy, radius, angle, corner float64) Point {
	m := RadialModulation(angle, corner)
	return Point{
		X: cx + radius*m*math.Cos(angle),
		Y: cy + radius*m*math.Sin(angle),
	}
}
