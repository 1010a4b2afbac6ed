package wheel

import (
	"math"

	"github.com/komapc/yearwheel/pkg/events"
	"github.com/komapc/yearwheel/pkg/geom"
)

const (
	// DefaultMarkerCount is one marker per week of the year.
	DefaultMarkerCount = 52

	// Direction values: sign applied to angular progress in screen
	// coordinates (y grows downward).
	Clockwise        = 1
	CounterClockwise = -1

	// CornerUIMax is the upper end of the external corner-radius control.
	// UI value 0 maps to a square, CornerUIMax to a circle.
	CornerUIMax = 50.0

	// radiusScale leaves a 15% margin for labels and hover growth.
	radiusScale = 0.85

	// labelScale places month labels outside the marker path.
	labelScale = 1.15

	seasonCount = 4
)

// DefaultSeasons is the season order applied to a new engine: index 0
// covers the first quarter of markers, and so on around the wheel.
var DefaultSeasons = [seasonCount]string{"winter", "spring", "summer", "autumn"}

// Marker is a single week's visual representation, placed by angle on the
// path. Angle is the pre-modulation angle in radians; Pos is the final
// screen position after shape modulation.
type Marker struct {
	Index     int            `json:"index" bson:"index"`
	Angle     float64        `json:"angle" bson:"angle"`
	Pos       geom.Point     `json:"pos" bson:"pos"`
	Season    string         `json:"season" bson:"season"`
	Events    []events.Event `json:"events,omitempty" bson:"events,omitempty"`
	HasEvents bool           `json:"has_events,omitempty" bson:"has_events,omitempty"`
}

// Label is a month caption placed outside the marker path.
type Label struct {
	Month int        `json:"month" bson:"month"`
	Text  string     `json:"text" bson:"text"`
	Angle float64    `json:"angle" bson:"angle"`
	Pos   geom.Point `json:"pos" bson:"pos"`
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithMarkerCount sets the number of markers. Values below 1 keep the
// default of 52.
func WithMarkerCount(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.markers = make([]Marker, n)
		}
	}
}

// WithDirection sets the initial direction; any negative value selects
// counter-clockwise, everything else clockwise.
func WithDirection(d int) Option {
	return func(e *Engine) { e.direction = normalizeDirection(d) }
}

// WithCorner sets the initial corner parameter, clamped to [0,1].
func WithCorner(corner float64) Option {
	return func(e *Engine) { e.corner = geom.ClampCorner(corner) }
}

// WithStartAngle sets where marker 0 sits, in degrees. 0 is due east;
// -90 puts the year boundary at the top of the wheel.
func WithStartAngle(degrees float64) Option {
	return func(e *Engine) { e.startAngle = degrees * math.Pi / 180 }
}

// WithSeasons sets the season order. Sequences that are not exactly four
// labels are ignored.
func WithSeasons(seasons []string) Option {
	return func(e *Engine) {
		if len(seasons) == seasonCount {
			copy(e.seasons[:], seasons)
		}
	}
}

// WithMonths sets the month-name / month-start collaborator used for
// label placement.
func WithMonths(p events.MonthProvider) Option {
	return func(e *Engine) {
		if p != nil {
			e.months = p
		}
	}
}

// Engine owns the markers and labels and all mutable layout bookkeeping.
// Marker and label counts are fixed at construction; layout passes only
// reposition them.
type Engine struct {
	markers []Marker
	labels  []Label

	corner     float64 // 0 = square, 1 = circle
	direction  int     // +1 clockwise, -1 counter-clockwise
	startAngle float64 // radians, offset of marker 0
	seasons    [seasonCount]string
	months     events.MonthProvider

	width, height float64
	onActivate    func(index int)
}

// New creates an engine with 52 markers and 12 month labels laid out on a
// circle. Until the first Relayout the container size is zero, so every
// position collapses to the origin; that state is visually inert but valid.
func New(opts ...Option) *Engine {
	e := &Engine{
		markers:   make([]Marker, DefaultMarkerCount),
		corner:    1,
		direction: Clockwise,
		seasons:   DefaultSeasons,
		months:    events.ApproxMonths{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.labels = make([]Label, events.MonthCount)
	e.relayout()
	return e
}

// MarkerCount returns N, the number of markers on the wheel.
func (e *Engine) MarkerCount() int { return len(e.markers) }

// Corner returns the current corner parameter in [0,1].
func (e *Engine) Corner() float64 { return e.corner }

// Direction returns +1 (clockwise) or -1 (counter-clockwise).
func (e *Engine) Direction() int { return e.direction }

// StartAngle returns the offset of marker 0 in radians.
func (e *Engine) StartAngle() float64 { return e.startAngle }

// Seasons returns a copy of the current season order.
func (e *Engine) Seasons() []string {
	out := make([]string, seasonCount)
	copy(out, e.seasons[:])
	return out
}

// Relayout recomputes every marker and label position for the given
// container size. It is idempotent: equal inputs on an unchanged engine
// produce equal outputs. A zero or negative size degrades to a zero-radius
// layout rather than failing.
func (e *Engine) Relayout(width, height float64) {
	e.width = math.Max(0, width)
	e.height = math.Max(0, height)
	e.relayout()
}

// relayout repositions markers and labels from the current parameters and
// the stored container size.
func (e *Engine) relayout() {
	cx, cy := e.width/2, e.height/2
	radius := math.Min(cx, cy) * radiusScale

	n := len(e.markers)
	for i := range e.markers {
		angle := e.angleFor(i, n)
		e.markers[i].Index = i
		e.markers[i].Angle = angle
		e.markers[i].Pos = geom.PositionOnPath(cx, cy, radius, angle, e.corner)
		e.markers[i].Season = e.seasonFor(i, n)
	}

	for m := range e.labels {
		week := e.months.StartWeek(m, n)
		if week < 0 {
			week = 0
		} else if week >= n {
			week = n - 1
		}
		angle := e.angleFor(week, n)
		e.labels[m].Month = m
		e.labels[m].Text = e.months.MonthName(m)
		e.labels[m].Angle = angle
		e.labels[m].Pos = geom.PositionOnPath(cx, cy, radius*labelScale, angle, e.corner)
	}
}

// angleFor converts a logical index into its pre-modulation angle.
func (e *Engine) angleFor(index, n int) float64 {
	progress := float64(index) / float64(n)
	return e.startAngle + float64(e.direction)*progress*2*math.Pi
}

// seasonFor assigns the season label from sequence position alone:
// floor(progress * 4) mod 4.
func (e *Engine) seasonFor(index, n int) string {
	return e.seasons[(index*seasonCount/n)%seasonCount]
}

// SetCornerRadius maps the external control range [0, 50] onto the corner
// parameter [0,1], stores it, and relays out. Out-of-range input is
// clamped, never rejected.
func (e *Engine) SetCornerRadius(uiValue float64) {
	e.corner = geom.ClampCorner(uiValue / CornerUIMax)
	e.relayout()
}

// SetCorner stores an already-normalized corner parameter, clamped to
// [0,1], and relays out.
func (e *Engine) SetCorner(corner float64) {
	e.corner = geom.ClampCorner(corner)
	e.relayout()
}

// SetDirection stores the direction (negative means counter-clockwise),
// relays out, and returns the normalized direction so callers can reflect
// it in UI state.
func (e *Engine) SetDirection(d int) int {
	e.direction = normalizeDirection(d)
	e.relayout()
	return e.direction
}

// ToggleDirection flips the direction and returns the new value.
func (e *Engine) ToggleDirection() int {
	return e.SetDirection(-e.direction)
}

// SwapSeasons exchanges two labels in the season order and re-derives every
// marker's season. Positions and angles are untouched. If either label is
// absent the call is a silent no-op: the season set is closed and
// caller-controlled, so an unknown label is not an error.
func (e *Engine) SwapSeasons(a, b string) {
	ia, ib := -1, -1
	for i, s := range e.seasons {
		switch s {
		case a:
			ia = i
		case b:
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return
	}
	e.seasons[ia], e.seasons[ib] = e.seasons[ib], e.seasons[ia]

	n := len(e.markers)
	for i := range e.markers {
		e.markers[i].Season = e.seasonFor(i, n)
	}
}

// AssignEvents attaches event lists to markers by index. Indices outside
// [0, N) are ignored; markers without an entry get an empty list. Angles,
// positions and seasons are never touched; this is a pure state sync.
func (e *Engine) AssignEvents(mapping map[int][]events.Event) {
	for i := range e.markers {
		evs := mapping[i]
		e.markers[i].Events = evs
		e.markers[i].HasEvents = len(evs) > 0
	}
}

// OnMarkerActivated registers the single callback invoked with a marker's
// index when that marker is activated. One callback fans out to every
// marker; registering again replaces the previous callback.
func (e *Engine) OnMarkerActivated(fn func(index int)) {
	e.onActivate = fn
}

// Activate invokes the registered callback for marker index. Out-of-range
// indices and a missing callback are ignored.
func (e *Engine) Activate(index int) {
	if e.onActivate != nil && index >= 0 && index < len(e.markers) {
		e.onActivate(index)
	}
}

// Marker returns a copy of the marker at index.
func (e *Engine) Marker(index int) (Marker, bool) {
	if index < 0 || index >= len(e.markers) {
		return Marker{}, false
	}
	return e.markers[index], true
}

// Markers returns a copy of the marker list in index order.
func (e *Engine) Markers() []Marker {
	out := make([]Marker, len(e.markers))
	copy(out, e.markers)
	return out
}

// Labels returns a copy of the month labels in month order.
func (e *Engine) Labels() []Label {
	out := make([]Label, len(e.labels))
	copy(out, e.labels)
	return out
}

func normalizeDirection(d int) int {
	if d < 0 {
		return CounterClockwise
	}
	return Clockwise
}
