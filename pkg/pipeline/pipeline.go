// Package pipeline provides the core fetch/layout/render pipeline for
// yearwheel, shared by the CLI and the HTTP server. Centralizing it keeps
// parameter handling, caching, and defaults identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: download and group calendar events by week (optional)
//  2. Layout: place markers and labels on the morphing path
//  3. Render: generate output in the requested formats (SVG, PNG, JSON)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Year:     2026,
//	    CornerUI: 25,
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/komapc/yearwheel/pkg/cache"
	"github.com/komapc/yearwheel/pkg/errors"
	"github.com/komapc/yearwheel/pkg/render/styles"
	"github.com/komapc/yearwheel/pkg/wheel"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWeeks is one marker per week of the year.
	DefaultWeeks = wheel.DefaultMarkerCount

	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 800.0

	// DefaultCornerUI is the default external corner control value: the
	// top of the 0..50 range, a perfect circle.
	DefaultCornerUI = wheel.CornerUIMax

	// DefaultStartAngle puts the year boundary at the top of the wheel.
	DefaultStartAngle = -90.0

	// DefaultSeed drives the ink style's reproducible jitter.
	DefaultSeed = uint64(42)
)

// DefaultStyle is the default visual style.
const DefaultStyle = styles.StyleInk

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	styles.StyleSimple: true,
	styles.StyleInk:    true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the wheel pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Year       int      `json:"year,omitempty"`
	Weeks      int      `json:"weeks,omitempty"`
	Width      float64  `json:"width,omitempty"`
	Height     float64  `json:"height,omitempty"`
	CornerUI   float64  `json:"corner_ui"` // external control range 0..50
	Direction  int      `json:"direction,omitempty"`
	StartAngle *float64 `json:"start_angle,omitempty"` // degrees; nil selects the default
	Seasons    []string `json:"seasons,omitempty"`
	TrueMonths bool     `json:"true_months,omitempty"` // anchor labels to real month starts

	// Fetch options
	FeedURL string `json:"feed_url,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Seed    uint64   `json:"seed,omitempty"`
	Outline bool     `json:"outline,omitempty"`
	Legend  bool     `json:"legend,omitempty"`
	Popups  bool     `json:"popups,omitempty"`
	Title   string   `json:"title,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout contains the computed marker and label positions.
	Layout wheel.Layout

	// LayoutHash is the content hash of the serialized layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EventCount int
	FetchTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: simple, ink)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. Idempotent: calling it repeatedly has the effect of one call.
//
// The corner control is clamped rather than validated, matching the engine's
// normalize-don't-reject contract; only genuinely unanswerable inputs (bad
// year, unknown format or style, non-HTTP feed URL) are errors.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Year == 0 {
		o.Year = time.Now().Year()
	}
	if err := errors.ValidateYear(o.Year); err != nil {
		return err
	}
	if o.FeedURL != "" {
		if err := errors.ValidateFeedURL(o.FeedURL); err != nil {
			return err
		}
	}

	if o.Weeks <= 0 {
		o.Weeks = DefaultWeeks
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// EffectiveSeasons returns the configured season order, or the default when
// none (or a malformed sequence) was supplied.
func (o *Options) EffectiveSeasons() []string {
	if len(o.Seasons) == 4 {
		return o.Seasons
	}
	return wheel.DefaultSeasons[:]
}

// EffectiveStartAngle returns the configured start angle in degrees. A nil
// StartAngle selects the default; an explicit 0 means due east.
func (o *Options) EffectiveStartAngle() float64 {
	if o.StartAngle != nil {
		return *o.StartAngle
	}
	return DefaultStartAngle
}

// EffectiveTitle returns the configured title, defaulting to the year.
func (o *Options) EffectiveTitle() string {
	if o.Title != "" {
		return o.Title
	}
	return fmt.Sprintf("%d", o.Year)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Year:       o.Year,
		Weeks:      o.Weeks,
		Width:      o.Width,
		Height:     o.Height,
		Corner:     o.CornerUI,
		Direction:  o.Direction,
		StartAngle: o.EffectiveStartAngle(),
		Seasons:    o.EffectiveSeasons(),
		TrueMonths: o.TrueMonths,
		FeedURL:    o.FeedURL,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		Style:   o.Style,
		Seed:    o.Seed,
		Outline: o.Outline,
		Legend:  o.Legend,
		Popups:  o.Popups,
		Title:   o.EffectiveTitle(),
	}
}
