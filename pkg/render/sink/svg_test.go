package sink

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/komapc/yearwheel/pkg/events"
	"github.com/komapc/yearwheel/pkg/render/styles"
	"github.com/komapc/yearwheel/pkg/render/styles/ink"
	"github.com/komapc/yearwheel/pkg/wheel"
)

func testLayout(t *testing.T) wheel.Layout {
	t.Helper()
	e := wheel.New()
	e.Relayout(800, 800)
	e.AssignEvents(map[int][]events.Event{
		5: {{Summary: "release week"}, {Summary: "retro"}},
	})
	return e.Export()
}

func TestRenderSVG(t *testing.T) {
	l := testLayout(t)
	svg := string(RenderSVG(l, WithOutline(), WithSeasonLegend(), WithTitle("2026")))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`viewBox="0 0 800.0 800.0"`,
		`id="marker-0"`,
		`id="marker-51"`,
		`data-week="13"`,
		`<path d="M `,
		`class="legend"`,
		`>January<`,
		`>December<`,
		`>2026<`,
		`weekactivated`,
		"</svg>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}

	if got := strings.Count(svg, `class="marker"`); got != 52 {
		t.Errorf("SVG contains %d markers, want 52", got)
	}
}

func TestRenderSVGPopups(t *testing.T) {
	l := testLayout(t)
	svg := string(RenderSVG(l, WithPopups()))

	if !strings.Contains(svg, `id="popup-5"`) {
		t.Error("populated week 5 has no popup group")
	}
	if strings.Contains(svg, `id="popup-6"`) {
		t.Error("empty week 6 has a popup group")
	}
	if !strings.Contains(svg, "release week") {
		t.Error("popup missing event summary")
	}
}

func TestRenderSVGInkStyle(t *testing.T) {
	l := testLayout(t)
	a := RenderSVG(l, WithStyle(ink.New(42)), WithOutline())
	b := RenderSVG(l, WithStyle(ink.New(42)), WithOutline())
	c := RenderSVG(l, WithStyle(ink.New(7)), WithOutline())

	if !bytes.Equal(a, b) {
		t.Error("same seed produced different ink output")
	}
	if bytes.Equal(a, c) {
		t.Error("different seeds produced identical ink output")
	}
	if !strings.Contains(string(a), "roughen") {
		t.Error("ink output missing roughen filter")
	}
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	l := testLayout(t)
	l.Labels[0].Text = `Jan & <Feb>`
	svg := string(RenderSVG(l))
	if !strings.Contains(svg, "Jan &amp; &lt;Feb&gt;") {
		t.Error("label text not escaped")
	}
}

func TestRenderSVGEscapesTitleAndLegend(t *testing.T) {
	l := testLayout(t)
	l.Seasons = []string{`<img src=x onerror=alert(1)>`, "spring", "summer", "fall"}
	svg := string(RenderSVG(l, WithSeasonLegend(), WithTitle(`<script>alert(1)</script>`)))

	if strings.Contains(svg, "<script>alert(1)</script>") {
		t.Error("title written into the document unescaped")
	}
	if !strings.Contains(svg, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Error("escaped title missing")
	}
	if strings.Contains(svg, "<img") {
		t.Error("legend season label written into the document unescaped")
	}
	if !strings.Contains(svg, "&lt;img src=x onerror=alert(1)&gt;") {
		t.Error("escaped legend label missing")
	}
}

func TestRenderPNG(t *testing.T) {
	l := testLayout(t)
	data, err := RenderPNG(l, WithPNGOutline(), WithPNGLegend(), WithPNGScale(1))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 800 {
		t.Errorf("png size = %dx%d, want 800x800", b.Dx(), b.Dy())
	}
}

func TestRenderPNGZeroFrame(t *testing.T) {
	if _, err := RenderPNG(wheel.Layout{}); err == nil {
		t.Error("RenderPNG of zero-size frame succeeded")
	}
}

func TestRenderJSONRoundTrips(t *testing.T) {
	l := testLayout(t)
	data, err := RenderJSON(l)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	got, err := wheel.UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if len(got.Markers) != len(l.Markers) {
		t.Errorf("markers = %d, want %d", len(got.Markers), len(l.Markers))
	}
}

func TestMarkerRadiusScalesWithDensity(t *testing.T) {
	sparse := wheel.Layout{Width: 800, Height: 800, Markers: make([]wheel.Marker, 12)}
	dense := wheel.Layout{Width: 800, Height: 800, Markers: make([]wheel.Marker, 104)}
	if markerRadius(sparse) <= markerRadius(dense) {
		t.Error("sparse wheel markers not larger than dense wheel markers")
	}
	if markerRadius(wheel.Layout{}) != 0 {
		t.Error("empty layout should have zero marker radius")
	}
}

func TestSimpleStyleFallbackColor(t *testing.T) {
	if got := styles.SeasonColor("monsoon"); got != styles.DefaultColor {
		t.Errorf("unknown season color = %q, want default", got)
	}
}
