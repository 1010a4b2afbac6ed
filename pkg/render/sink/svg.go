package sink

import (
	"bytes"
	"fmt"

	"github.com/komapc/yearwheel/pkg/render/styles"
	"github.com/komapc/yearwheel/pkg/wheel"
)

const markerInteractionCSS = `
    .marker { transition: transform 0.15s ease; transform-origin: center; transform-box: fill-box; cursor: pointer; }
    .marker:hover, .marker.active { transform: scale(1.35); }
    .popup { display: none; pointer-events: none; }
    .popup.visible { display: block; }`

// One delegated listener on the root fans activation out to a single
// subscription point; clicking any marker dispatches weekactivated with
// the marker index, mirroring the engine's OnMarkerActivated contract.
const markerInteractionJS = `
    document.documentElement.addEventListener('click', e => {
      const m = e.target.closest('.marker');
      if (!m) return;
      const week = Number(m.dataset.week);
      document.documentElement.dispatchEvent(new CustomEvent('weekactivated', { detail: { week } }));
    });
    document.documentElement.addEventListener('mouseover', e => {
      const m = e.target.closest('.marker');
      document.querySelectorAll('.popup.visible').forEach(p => p.classList.remove('visible'));
      if (!m) return;
      const p = document.getElementById('popup-' + m.dataset.week);
      if (p) p.classList.add('visible');
    });`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style   styles.Style
	outline bool
	legend  bool
	popups  bool
	title   string
}

// WithStyle selects the visual style (default: simple).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithOutline draws the closed path under the markers.
func WithOutline() SVGOption { return func(r *svgRenderer) { r.outline = true } }

// WithSeasonLegend adds a season color legend in the corner.
func WithSeasonLegend() SVGOption { return func(r *svgRenderer) { r.legend = true } }

// WithPopups adds hover popups listing each week's event summaries.
func WithPopups() SVGOption { return func(r *svgRenderer) { r.popups = true } }

// WithTitle adds a centered title (typically the year).
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// RenderSVG renders a wheel layout as a standalone SVG document.
func RenderSVG(l wheel.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	r.style.RenderDefs(&buf)

	if r.outline {
		r.style.RenderOutline(&buf, styles.Outline{D: outlinePathData(l)})
	}

	mr := markerRadius(l)
	for _, m := range l.Markers {
		sm := styles.Marker{
			Index:     m.Index,
			X:         m.Pos.X,
			Y:         m.Pos.Y,
			R:         mr,
			Season:    m.Season,
			HasEvents: m.HasEvents,
		}
		if r.popups {
			for _, ev := range m.Events {
				sm.Popup = append(sm.Popup, ev.Summary)
			}
		}
		r.style.RenderMarker(&buf, sm)
	}

	fontSize := styles.LabelFontSize(l.Width, l.Height)
	for _, lab := range l.Labels {
		r.style.RenderLabel(&buf, styles.Label{
			Month:    lab.Month,
			Text:     lab.Text,
			X:        lab.Pos.X,
			Y:        lab.Pos.Y,
			FontSize: fontSize,
		})
	}

	if r.title != "" {
		fmt.Fprintf(&buf,
			`  <text x="%.1f" y="%.1f" font-size="%.1f" font-family="sans-serif" fill="#333333" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			l.Width/2, l.Height/2, fontSize*2.2, escapeSVGText(r.title))
	}

	if r.legend {
		renderLegend(&buf, l)
	}
	if r.popups {
		renderPopups(&buf, l)
	}
	renderMarkerInteraction(&buf)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderMarkerInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", markerInteractionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", markerInteractionJS)
}

// renderLegend draws one swatch per season in layout order, top-left.
func renderLegend(buf *bytes.Buffer, l wheel.Layout) {
	const swatch = 12.0
	x, y := 12.0, 16.0
	buf.WriteString(`  <g class="legend">` + "\n")
	for i, season := range l.Seasons {
		yy := y + float64(i)*(swatch+8)
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.0f" height="%.0f" fill="%s"/>`+"\n",
			x, yy, swatch, swatch, styles.SeasonColor(season))
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="11" font-family="sans-serif" fill="#555555" dominant-baseline="middle">%s</text>`+"\n",
			x+swatch+6, yy+swatch/2, escapeSVGText(season))
	}
	buf.WriteString("  </g>\n")
}

// renderPopups emits a hidden popup group per populated week; the
// interaction script toggles visibility on hover.
func renderPopups(buf *bytes.Buffer, l wheel.Layout) {
	for _, m := range l.Markers {
		if !m.HasEvents {
			continue
		}
		fmt.Fprintf(buf, `  <g id="popup-%d" class="popup">`+"\n", m.Index)
		px, py := m.Pos.X+14, m.Pos.Y-10
		h := 16.0*float64(len(m.Events)) + 10
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="160" height="%.1f" rx="4" fill="#ffffff" stroke="#999999"/>`+"\n",
			px, py, h)
		for i, ev := range m.Events {
			fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="11" font-family="sans-serif" fill="#333333">%s</text>`+"\n",
				px+8, py+18+float64(i)*16, escapeSVGText(ev.Summary))
		}
		buf.WriteString("  </g>\n")
	}
}

func escapeSVGText(s string) string {
	var out bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			out.WriteString("&amp;")
		case '<':
			out.WriteString("&lt;")
		case '>':
			out.WriteString("&gt;")
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}
