package sink

import (
	"fmt"
	"math"
	"strings"

	"github.com/komapc/yearwheel/pkg/geom"
	"github.com/komapc/yearwheel/pkg/wheel"
)

// outlineSamples is the number of points the closed path is sampled at.
// Enough that the rounded corners stay smooth at poster sizes.
const outlineSamples = 240

// pathRadiusScale matches the engine's marker-path radius fraction.
const pathRadiusScale = 0.85

// frameRadius returns the marker-path radius for a layout's frame.
func frameRadius(l wheel.Layout) (cx, cy, radius float64) {
	cx, cy = l.Width/2, l.Height/2
	return cx, cy, min(cx, cy) * pathRadiusScale
}

// samplePath walks the full closed curve for a layout, calling fn with each
// sampled point. Rendering backends share this so SVG and PNG outlines agree.
func samplePath(l wheel.Layout, fn func(i int, p geom.Point)) {
	cx, cy, radius := frameRadius(l)
	for i := 0; i < outlineSamples; i++ {
		theta := float64(i) / outlineSamples * 2 * math.Pi
		fn(i, geom.PositionOnPath(cx, cy, radius, theta, l.Corner))
	}
}

// outlinePathData builds the SVG path data for a layout's closed curve.
func outlinePathData(l wheel.Layout) string {
	var b strings.Builder
	samplePath(l, func(i int, p geom.Point) {
		if i == 0 {
			fmt.Fprintf(&b, "M %.2f %.2f", p.X, p.Y)
			return
		}
		fmt.Fprintf(&b, " L %.2f %.2f", p.X, p.Y)
	})
	b.WriteString(" Z")
	return b.String()
}

// markerRadius derives the marker dot size from the spacing between
// markers along the path, so dense wheels get smaller dots.
func markerRadius(l wheel.Layout) float64 {
	n := len(l.Markers)
	if n == 0 {
		return 0
	}
	_, _, radius := frameRadius(l)
	r := radius * math.Pi / float64(n) * 0.75
	return max(1.5, r)
}
