package wheel

import (
	"math"
	"testing"
	"time"

	"github.com/komapc/yearwheel/pkg/events"
)

const tol = 1e-9

func newLaidOut(opts ...Option) *Engine {
	e := New(opts...)
	e.Relayout(800, 800)
	return e
}

func TestEvenSpacing(t *testing.T) {
	// direction=+1, startAngle=0: marker i sits at exactly i·2π/N
	// before shape modulation.
	e := newLaidOut()
	n := e.MarkerCount()
	for i, m := range e.Markers() {
		want := float64(i) * 2 * math.Pi / float64(n)
		if math.Abs(m.Angle-want) > tol {
			t.Fatalf("marker %d angle = %v, want %v", i, m.Angle, want)
		}
	}
}

func TestRelayoutIdempotent(t *testing.T) {
	e := newLaidOut(WithCorner(0.4), WithStartAngle(-90))
	first := e.Markers()
	e.Relayout(800, 800)
	second := e.Markers()

	for i := range first {
		if first[i].Angle != second[i].Angle || first[i].Pos != second[i].Pos ||
			first[i].Season != second[i].Season {
			t.Fatalf("marker %d changed across identical relayouts: %+v vs %+v",
				i, first[i], second[i])
		}
	}
}

func TestMarkerZeroEastAtRadius(t *testing.T) {
	// N=52, circle, clockwise, startAngle 0: marker 0 lies due east of
	// center at distance ≈ radius; marker 13 a quarter-way at ≈ π/2.
	e := newLaidOut()
	radius := 400 * 0.85

	m0, ok := e.Marker(0)
	if !ok {
		t.Fatal("Marker(0) missing")
	}
	if math.Abs(m0.Pos.X-(400+radius)) > tol || math.Abs(m0.Pos.Y-400) > 1e-7 {
		t.Errorf("marker 0 at (%v, %v), want (%v, 400)", m0.Pos.X, m0.Pos.Y, 400+radius)
	}

	m13, _ := e.Marker(13)
	if math.Abs(m13.Angle-math.Pi/2) > tol {
		t.Errorf("marker 13 angle = %v, want π/2", m13.Angle)
	}
}

func TestDirectionAntisymmetry(t *testing.T) {
	e := newLaidOut(WithCorner(0.3))
	before := e.Markers()
	corner := e.Corner()

	if got := e.ToggleDirection(); got != CounterClockwise {
		t.Fatalf("ToggleDirection = %d, want %d", got, CounterClockwise)
	}
	after := e.Markers()

	for i := range before {
		if math.Abs(after[i].Angle+before[i].Angle) > tol {
			t.Fatalf("marker %d: angle %v not negated (now %v)", i, before[i].Angle, after[i].Angle)
		}
		if after[i].Season != before[i].Season {
			t.Fatalf("marker %d: season changed on direction toggle", i)
		}
	}
	if e.Corner() != corner {
		t.Error("corner changed on direction toggle")
	}

	if got := e.ToggleDirection(); got != Clockwise {
		t.Errorf("second ToggleDirection = %d, want %d", got, Clockwise)
	}
}

func TestSetCornerRadiusUIMapping(t *testing.T) {
	tests := []struct {
		ui   float64
		want float64
	}{
		{0, 0},
		{25, 0.5},
		{50, 1},
		{-10, 0}, // clamped
		{99, 1},  // clamped
	}

	e := newLaidOut()
	for _, tt := range tests {
		e.SetCornerRadius(tt.ui)
		if got := e.Corner(); math.Abs(got-tt.want) > tol {
			t.Errorf("SetCornerRadius(%v): corner = %v, want %v", tt.ui, got, tt.want)
		}
	}
}

func TestSeasonQuarters(t *testing.T) {
	e := newLaidOut()
	markers := e.Markers()

	// 52 markers: indices 0-12 winter, 13-25 spring, 26-38 summer, 39-51 autumn.
	checks := []struct {
		index int
		want  string
	}{
		{0, "winter"}, {12, "winter"},
		{13, "spring"}, {25, "spring"},
		{26, "summer"}, {38, "summer"},
		{39, "autumn"}, {51, "autumn"},
	}
	for _, c := range checks {
		if got := markers[c.index].Season; got != c.want {
			t.Errorf("marker %d season = %q, want %q", c.index, got, c.want)
		}
	}
}

func TestSwapSeasonsRoundTrip(t *testing.T) {
	e := newLaidOut()
	original := e.Markers()

	e.SwapSeasons("winter", "summer")
	if m, _ := e.Marker(0); m.Season != "summer" {
		t.Errorf("after swap, marker 0 season = %q, want summer", m.Season)
	}
	if m, _ := e.Marker(0); m.Angle != original[0].Angle || m.Pos != original[0].Pos {
		t.Error("swap moved marker 0")
	}

	e.SwapSeasons("winter", "summer")
	if got := e.Seasons(); got[0] != "winter" || got[2] != "summer" {
		t.Errorf("double swap did not restore order: %v", got)
	}
	for i, m := range e.Markers() {
		if m.Season != original[i].Season {
			t.Fatalf("marker %d season = %q after round trip, want %q", i, m.Season, original[i].Season)
		}
	}
}

func TestSwapSeasonsUnknownIsNoOp(t *testing.T) {
	e := newLaidOut()
	before := e.Seasons()

	e.SwapSeasons("winter", "monsoon")
	e.SwapSeasons("nope", "also-nope")

	after := e.Seasons()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("unknown-label swap mutated sequence: %v -> %v", before, after)
		}
	}
}

func TestAssignEvents(t *testing.T) {
	e := newLaidOut()
	ev := events.Event{Summary: "launch", Start: time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)}

	before5, _ := e.Marker(5)
	e.AssignEvents(map[int][]events.Event{
		5:    {ev},
		-3:   {ev}, // ignored
		9999: {ev}, // ignored
	})

	m5, _ := e.Marker(5)
	if !m5.HasEvents || len(m5.Events) != 1 || m5.Events[0].Summary != "launch" {
		t.Errorf("marker 5 = %+v, want one event", m5)
	}
	if m5.Angle != before5.Angle || m5.Pos != before5.Pos || m5.Season != before5.Season {
		t.Error("AssignEvents altered marker 5 geometry")
	}

	m6, _ := e.Marker(6)
	if m6.HasEvents || len(m6.Events) != 0 {
		t.Errorf("marker 6 = %+v, want no events", m6)
	}

	// Re-assign with an empty mapping clears flags.
	e.AssignEvents(nil)
	m5, _ = e.Marker(5)
	if m5.HasEvents {
		t.Error("marker 5 still flagged after clearing assignment")
	}
}

func TestOnMarkerActivatedFanOut(t *testing.T) {
	e := newLaidOut()

	var got []int
	e.OnMarkerActivated(func(i int) { got = append(got, i) })

	e.Activate(7)
	e.Activate(0)
	e.Activate(-1) // ignored
	e.Activate(52) // ignored

	if len(got) != 2 || got[0] != 7 || got[1] != 0 {
		t.Errorf("activations = %v, want [7 0]", got)
	}

	// Registering again replaces the callback.
	var second []int
	e.OnMarkerActivated(func(i int) { second = append(second, i) })
	e.Activate(3)
	if len(got) != 2 || len(second) != 1 || second[0] != 3 {
		t.Errorf("after re-register: first=%v second=%v", got, second)
	}
}

func TestZeroSizeDegrades(t *testing.T) {
	e := New()
	e.Relayout(0, 0)
	for _, m := range e.Markers() {
		if m.Pos.X != 0 || m.Pos.Y != 0 {
			t.Fatalf("marker %d at %+v with zero-size container, want origin", m.Index, m.Pos)
		}
	}

	// Negative sizes degrade the same way instead of flipping the layout.
	e.Relayout(-100, -100)
	for _, m := range e.Markers() {
		if m.Pos.X != 0 || m.Pos.Y != 0 {
			t.Fatalf("marker %d at %+v with negative container", m.Index, m.Pos)
		}
	}
}

func TestLabelsTrackApproximateWeeks(t *testing.T) {
	e := newLaidOut()
	labels := e.Labels()
	if len(labels) != 12 {
		t.Fatalf("got %d labels, want 12", len(labels))
	}

	n := e.MarkerCount()
	for m, l := range labels {
		week := m * n / 12
		want := float64(week) * 2 * math.Pi / float64(n)
		if math.Abs(l.Angle-want) > tol {
			t.Errorf("label %d angle = %v, want %v", m, l.Angle, want)
		}
	}
	if labels[0].Text != "January" || labels[11].Text != "December" {
		t.Errorf("label texts = %q..%q", labels[0].Text, labels[11].Text)
	}

	// Labels sit outside the marker path (1.15 vs 0.85 of the half-frame).
	m0, _ := e.Marker(0)
	if labels[0].Pos.X <= m0.Pos.X {
		t.Errorf("label 0 at x=%v not outside marker 0 at x=%v", labels[0].Pos.X, m0.Pos.X)
	}
}

func TestGeneralMarkerCount(t *testing.T) {
	e := New(WithMarkerCount(8))
	e.Relayout(100, 100)
	if e.MarkerCount() != 8 {
		t.Fatalf("MarkerCount = %d, want 8", e.MarkerCount())
	}
	markers := e.Markers()
	// 8 markers split cleanly into quarters of 2.
	wants := []string{"winter", "winter", "spring", "spring", "summer", "summer", "autumn", "autumn"}
	for i, w := range wants {
		if markers[i].Season != w {
			t.Errorf("marker %d season = %q, want %q", i, markers[i].Season, w)
		}
	}
}

func TestWithStartAngle(t *testing.T) {
	e := newLaidOut(WithStartAngle(-90))
	m0, _ := e.Marker(0)
	if math.Abs(m0.Angle-(-math.Pi/2)) > tol {
		t.Errorf("marker 0 angle = %v, want -π/2", m0.Angle)
	}
	// Due north of center in screen coordinates.
	if m0.Pos.Y >= 400 {
		t.Errorf("marker 0 y = %v, want above center", m0.Pos.Y)
	}
}
