package styles

import (
	"bytes"
	"fmt"
)

// Simple renders flat shapes with no texture: plain circles on a thin
// outline, system font labels. The baseline style and the fallback when a
// requested style is unknown.
type Simple struct{}

// Name returns "simple".
func (Simple) Name() string { return StyleSimple }

// RenderDefs writes nothing; the simple style needs no defs.
func (Simple) RenderDefs(buf *bytes.Buffer) {}

// RenderOutline draws the marker path as a thin gray stroke.
func (Simple) RenderOutline(buf *bytes.Buffer, o Outline) {
	fmt.Fprintf(buf, `  <path d="%s" fill="none" stroke="#cccccc" stroke-width="1.5"/>`+"\n", o.D)
}

// RenderMarker draws a filled circle, with a heavier ring when the week
// carries events.
func (Simple) RenderMarker(buf *bytes.Buffer, m Marker) {
	stroke := "#ffffff"
	strokeWidth := 1.0
	if m.HasEvents {
		stroke = "#333333"
		strokeWidth = 2.0
	}
	fmt.Fprintf(buf,
		`  <circle id="marker-%d" class="marker" data-week="%d" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
		m.Index, m.Index, m.X, m.Y, m.R, SeasonColor(m.Season), stroke, strokeWidth)
}

// RenderLabel draws the month caption centered on its anchor.
func (Simple) RenderLabel(buf *bytes.Buffer, l Label) {
	fmt.Fprintf(buf,
		`  <text class="month-label" x="%.2f" y="%.2f" font-size="%.1f" font-family="sans-serif" fill="#555555" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		l.X, l.Y, l.FontSize, escapeText(l.Text))
}

// Ensure Simple implements Style.
var _ Style = Simple{}
