package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); len(got) != 1 || got[0] != "svg" {
		t.Errorf("parseFormats(\"\") = %v, want [svg]", got)
	}
	if got := parseFormats("svg,png,json"); len(got) != 3 || got[2] != "json" {
		t.Errorf("parseFormats = %v", got)
	}
}

func TestParseSeasons(t *testing.T) {
	if got := parseSeasons(""); got != nil {
		t.Errorf("parseSeasons(\"\") = %v, want nil", got)
	}
	if got := parseSeasons("wet,dry,wet,dry"); len(got) != 4 {
		t.Errorf("parseSeasons = %v", got)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		year   int
		want   string
	}{
		{"", 2026, "yearwheel_2026"},
		{"wheel.svg", 2026, "wheel"},
		{"out/wheel.png", 2026, "out/wheel"},
		{"wheel", 2026, "wheel"},
		{"wheel.backup", 2026, "wheel.backup"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.year); got != tt.want {
			t.Errorf("basePath(%q, %d) = %q, want %q", tt.output, tt.year, got, tt.want)
		}
	}
}

func TestRunRenderWritesFiles(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "wheel")

	opts := renderOpts{
		output:    out,
		formats:   []string{"svg", "json"},
		year:      2026,
		width:     400,
		height:    400,
		corner:    25,
		direction: "cw",
		style:     "simple",
		noCache:   true,
	}
	if err := runRender(context.Background(), &opts); err != nil {
		t.Fatalf("runRender: %v", err)
	}

	svg, err := os.ReadFile(out + ".svg")
	if err != nil {
		t.Fatalf("read svg output: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("svg output missing root element")
	}
	if _, err := os.Stat(out + ".json"); err != nil {
		t.Errorf("json output missing: %v", err)
	}
}

func TestRunRenderRejectsBadStyle(t *testing.T) {
	opts := renderOpts{
		formats: []string{"svg"},
		style:   "neon",
		noCache: true,
	}
	if err := runRender(context.Background(), &opts); err == nil {
		t.Error("runRender accepted an unknown style")
	}
}
