package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/komapc/yearwheel/pkg/cache"
	"github.com/komapc/yearwheel/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: "svg", "png", "json"
	year       int      // calendar year on the wheel
	weeks      int      // marker count
	width      float64  // frame width in pixels
	height     float64  // frame height in pixels
	corner     float64  // corner control, 0 (square) to 50 (circle)
	direction  string   // "cw" or "ccw"
	startAngle float64  // offset of week 0 in degrees
	seasons    []string // season order, quadrant by quadrant
	style      string   // visual style: "simple" or "ink"
	feed       string   // ICS feed URL for event markers
	refresh    bool     // bypass caches
	noCache    bool     // disable the cache entirely
	legend     bool     // draw the season legend
	popups     bool     // draw hover popups for event weeks
	outline    bool     // draw the path under the markers
	title      string   // center title (defaults to the year)
}

// newRenderCmd creates the render command for generating wheel files.
// Flag defaults come from the saved preferences file, so a tuned wheel
// renders the same way the tuner left it.
func newRenderCmd() *cobra.Command {
	var formatsStr, seasonsStr string
	opts := renderOpts{
		legend:  true,
		popups:  true,
		outline: true,
	}

	cfg, cfgErr := LoadConfig("")

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a year wheel to SVG, PNG, or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				loggerFromContext(cmd.Context()).Warn("ignoring unreadable config", "error", cfgErr)
			}
			opts.formats = parseFormats(formatsStr)
			opts.seasons = parseSeasons(seasonsStr)
			return runRender(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().IntVar(&opts.year, "year", 0, "calendar year (default: current year)")
	cmd.Flags().IntVar(&opts.weeks, "weeks", pipeline.DefaultWeeks, "number of week markers")
	cmd.Flags().Float64Var(&opts.width, "width", pipeline.DefaultWidth, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", pipeline.DefaultHeight, "frame height")
	cmd.Flags().Float64Var(&opts.corner, "corner", cfg.Corner, "shape control: 0 square, 50 circle")
	cmd.Flags().StringVar(&opts.direction, "direction", cfg.Direction, "week direction: cw or ccw")
	cmd.Flags().Float64Var(&opts.startAngle, "start", cfg.StartAngle, "angle of week 0 in degrees")
	cmd.Flags().StringVar(&seasonsStr, "seasons", strings.Join(cfg.Seasons, ","), "season order, 4 comma-separated labels")
	cmd.Flags().StringVar(&opts.style, "style", cfg.Style, "visual style: ink (default), simple")
	cmd.Flags().StringVar(&opts.feed, "feed", cfg.Feed, "ICS feed URL for event markers")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass caches and recompute")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the cache entirely")
	cmd.Flags().BoolVar(&opts.legend, "legend", opts.legend, "draw the season legend")
	cmd.Flags().BoolVar(&opts.popups, "popups", opts.popups, "show hover popups for event weeks")
	cmd.Flags().BoolVar(&opts.outline, "outline", opts.outline, "draw the path under the markers")
	cmd.Flags().StringVar(&opts.title, "title", "", "center title (default: the year)")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// parseSeasons parses the --seasons flag. Empty means the default order.
func parseSeasons(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// runRender executes the pipeline and writes one file per format.
func runRender(ctx context.Context, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	c, err := openCache(opts.noCache)
	if err != nil {
		return err
	}
	defer c.Close()

	runner := pipeline.NewRunner(c, nil, logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Year:       opts.year,
		Weeks:      opts.weeks,
		Width:      opts.width,
		Height:     opts.height,
		CornerUI:   opts.corner,
		Direction:  directionValue(opts.direction),
		StartAngle: &opts.startAngle,
		Seasons:    opts.seasons,
		FeedURL:    opts.feed,
		Refresh:    opts.refresh,
		Formats:    opts.formats,
		Style:      opts.style,
		Legend:     opts.legend,
		Popups:     opts.popups,
		Outline:    opts.outline,
		Title:      opts.title,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	base := basePath(opts.output, result.Layout.Year)
	for _, format := range opts.formats {
		path := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}

	printStats(len(result.Layout.Markers), result.Stats.EventCount, result.CacheInfo.LayoutHit)
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(opts.formats)))
	return nil
}

// basePath derives the base output path. If output is empty the year is the
// base name; a known format extension on output is stripped so multiple
// formats can share the base.
func basePath(output string, year int) string {
	if output == "" {
		return fmt.Sprintf("yearwheel_%d", year)
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if pipeline.ValidFormats[ext] {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

// writeFile writes artifact data, creating parent directories if needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// openCache opens the file cache, or the null cache when disabled.
func openCache(disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache("")
}
