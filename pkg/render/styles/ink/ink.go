// Package ink implements the hand-drawn wheel style: a turbulence-displaced
// outline and slightly irregular markers, seeded for reproducible output.
package ink

import (
	"bytes"
	"fmt"
	"math/rand"

	"github.com/komapc/yearwheel/pkg/render/styles"
)

// jitterFraction is how far a marker radius may wander from nominal.
const jitterFraction = 0.18

// Ink is the hand-drawn style. The seed drives both the SVG turbulence
// filter and the per-marker radius jitter, so the same seed always yields
// the same picture.
type Ink struct {
	seed uint64
}

// New creates an Ink style with the given seed.
func New(seed uint64) *Ink {
	return &Ink{seed: seed}
}

// Name returns "ink".
func (s *Ink) Name() string { return styles.StyleInk }

// RenderDefs writes the roughen filter every ink element refers to.
func (s *Ink) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <defs>
    <filter id="roughen" x="-5%%" y="-5%%" width="110%%" height="110%%">
      <feTurbulence type="fractalNoise" baseFrequency="0.035" numOctaves="2" seed="%d" result="noise"/>
      <feDisplacementMap in="SourceGraphic" in2="noise" scale="4" xChannelSelector="R" yChannelSelector="G"/>
    </filter>
  </defs>
`, s.seed%1000)
}

// RenderOutline draws the path twice with the roughen filter, offset
// strokes reading as a sketched double line.
func (s *Ink) RenderOutline(buf *bytes.Buffer, o styles.Outline) {
	fmt.Fprintf(buf, `  <path d="%s" fill="none" stroke="#3a3a3a" stroke-width="1.8" filter="url(#roughen)"/>`+"\n", o.D)
	fmt.Fprintf(buf, `  <path d="%s" fill="none" stroke="#3a3a3a" stroke-width="0.7" opacity="0.35" filter="url(#roughen)"/>`+"\n", o.D)
}

// RenderMarker draws a roughened circle with a seeded radius wobble.
func (s *Ink) RenderMarker(buf *bytes.Buffer, m styles.Marker) {
	rng := rand.New(rand.NewSource(int64(s.seed) + int64(m.Index)))
	r := m.R * (1 + jitterFraction*(rng.Float64()*2-1))

	stroke := "#3a3a3a"
	strokeWidth := 1.2
	if m.HasEvents {
		strokeWidth = 2.4
	}
	fmt.Fprintf(buf,
		`  <circle id="marker-%d" class="marker" data-week="%d" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="%.1f" filter="url(#roughen)"/>`+"\n",
		m.Index, m.Index, m.X, m.Y, r, styles.SeasonColor(m.Season), stroke, strokeWidth)
}

// RenderLabel draws the month caption in a cursive stack.
func (s *Ink) RenderLabel(buf *bytes.Buffer, l styles.Label) {
	fmt.Fprintf(buf,
		`  <text class="month-label" x="%.2f" y="%.2f" font-size="%.1f" font-family="'Segoe Script', 'Comic Sans MS', cursive" fill="#3a3a3a" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		l.X, l.Y, l.FontSize*1.05, escapeText(l.Text))
}

// escapeText escapes XML special characters.
func escapeText(s string) string {
	var out bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			out.WriteString("&amp;")
		case '<':
			out.WriteString("&lt;")
		case '>':
			out.WriteString("&gt;")
		case '"':
			out.WriteString("&quot;")
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}

// Ensure Ink implements Style.
var _ styles.Style = (*Ink)(nil)
