package sink

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"

	"github.com/komapc/yearwheel/pkg/geom"
	"github.com/komapc/yearwheel/pkg/render/styles"
	"github.com/komapc/yearwheel/pkg/wheel"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale   float64
	outline bool
	legend  bool
	title   string
}

// WithPNGScale sets the raster scale factor (default 2.0 for 2x resolution).
func WithPNGScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGOutline draws the closed path under the markers.
func WithPNGOutline() PNGOption { return func(r *pngRenderer) { r.outline = true } }

// WithPNGLegend adds the season color legend.
func WithPNGLegend() PNGOption { return func(r *pngRenderer) { r.legend = true } }

// WithPNGTitle adds a centered title.
func WithPNGTitle(title string) PNGOption { return func(r *pngRenderer) { r.title = title } }

// RenderPNG rasterizes a wheel layout directly with gg. The ink style's
// stroke jitter is an SVG-filter effect and does not apply here; PNG output
// is always the flat look.
func RenderPNG(l wheel.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("render png: zero-size frame %.0fx%.0f", l.Width, l.Height)
	}

	dc := gg.NewContext(int(l.Width*r.scale), int(l.Height*r.scale))
	dc.Scale(r.scale, r.scale)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	if r.outline {
		drawOutline(dc, l)
	}

	mr := markerRadius(l)
	for _, m := range l.Markers {
		dc.SetHexColor(styles.SeasonColor(m.Season))
		dc.DrawCircle(m.Pos.X, m.Pos.Y, mr)
		dc.Fill()
		if m.HasEvents {
			dc.SetHexColor("#333333")
			dc.SetLineWidth(2)
			dc.DrawCircle(m.Pos.X, m.Pos.Y, mr)
			dc.Stroke()
		}
	}

	dc.SetHexColor("#555555")
	for _, lab := range l.Labels {
		dc.DrawStringAnchored(lab.Text, lab.Pos.X, lab.Pos.Y, 0.5, 0.5)
	}

	if r.title != "" {
		dc.SetHexColor("#333333")
		dc.DrawStringAnchored(r.title, l.Width/2, l.Height/2, 0.5, 0.5)
	}

	if r.legend {
		drawLegend(dc, l)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawOutline(dc *gg.Context, l wheel.Layout) {
	samplePath(l, func(i int, p geom.Point) {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
			return
		}
		dc.LineTo(p.X, p.Y)
	})
	dc.ClosePath()
	dc.SetHexColor("#cccccc")
	dc.SetLineWidth(1.5)
	dc.Stroke()
}

func drawLegend(dc *gg.Context, l wheel.Layout) {
	const swatch = 12.0
	x, y := 12.0, 16.0
	for i, season := range l.Seasons {
		yy := y + float64(i)*(swatch+8)
		dc.SetHexColor(styles.SeasonColor(season))
		dc.DrawRectangle(x, yy, swatch, swatch)
		dc.Fill()
		dc.SetHexColor("#555555")
		dc.DrawStringAnchored(season, x+swatch+6, yy+swatch/2, 0, 0.5)
	}
}
