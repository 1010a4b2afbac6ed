package styles

import "bytes"

// Style names accepted across the CLI, server, and pipeline.
const (
	StyleSimple = "simple"
	StyleInk    = "ink"
)

// Style defines the visual appearance for wheel rendering.
// Implementations control how the path outline, week markers, and month
// labels are drawn into an SVG document.
type Style interface {
	// Name returns the style identifier ("simple", "ink").
	Name() string
	// RenderDefs writes SVG <defs> content (filters, gradients, fonts).
	RenderDefs(buf *bytes.Buffer)
	// RenderOutline writes the closed path the markers sit on.
	RenderOutline(buf *bytes.Buffer, o Outline)
	// RenderMarker writes the SVG for a single week marker.
	RenderMarker(buf *bytes.Buffer, m Marker)
	// RenderLabel writes the SVG for a month label.
	RenderLabel(buf *bytes.Buffer, l Label)
}

// Marker contains all data needed to render a single week marker.
type Marker struct {
	Index     int      // Week index 0..N-1
	X, Y      float64  // Center position
	R         float64  // Marker radius
	Season    string   // Season label, selects the fill color
	HasEvents bool     // Whether the week carries events
	Popup     []string // Event summaries for hover popups (nil if disabled)
}

// Label contains positioning data for a month caption.
type Label struct {
	Month    int     // 0..11
	Text     string  // Display name
	X, Y     float64 // Anchor position
	FontSize float64
}

// Outline is the sampled closed path the markers sit on.
type Outline struct {
	D string // SVG path data ("M … Z")
}

// SeasonColors is the default fill palette, keyed by season label.
// Unknown labels fall back to DefaultColor.
var SeasonColors = map[string]string{
	"winter": "#7eb8da",
	"spring": "#8fce8f",
	"summer": "#f2c14e",
	"autumn": "#d98e73",
}

// DefaultColor is the marker fill for seasons outside the default palette.
const DefaultColor = "#b0b0b0"

// SeasonColor returns the palette color for a season label.
func SeasonColor(season string) string {
	if c, ok := SeasonColors[season]; ok {
		return c
	}
	return DefaultColor
}
