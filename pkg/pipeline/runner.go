package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/komapc/yearwheel/pkg/cache"
	"github.com/komapc/yearwheel/pkg/errors"
	"github.com/komapc/yearwheel/pkg/events"
	"github.com/komapc/yearwheel/pkg/httputil"
	"github.com/komapc/yearwheel/pkg/render/sink"
	"github.com/komapc/yearwheel/pkg/render/styles"
	"github.com/komapc/yearwheel/pkg/render/styles/ink"
	"github.com/komapc/yearwheel/pkg/wheel"
)

// =============================================================================
// Runner - Pipeline Execution
// =============================================================================

// Runner executes the wheel pipeline with caching at the layout and artifact
// stages. A Runner is safe for concurrent use: all mutable state lives in the
// per-call engine and result.
type Runner struct {
	cache  cache.Cache
	keyer  cache.Keyer
	client *httputil.Client
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil c disables caching; a nil keyer
// selects the default SHA-256 keyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		cache:  c,
		keyer:  keyer,
		client: httputil.NewClient(nil, c, 0),
		logger: logger,
	}
}

// BuildEngine constructs a layout engine from pipeline options and performs
// the initial layout pass. Exposed so the interactive tuner can drive the
// same engine the batch pipeline uses.
func BuildEngine(opts Options) *wheel.Engine {
	dir := opts.Direction
	if dir == 0 {
		dir = wheel.Clockwise
	}
	engineOpts := []wheel.Option{
		wheel.WithMarkerCount(opts.Weeks),
		wheel.WithDirection(dir),
		wheel.WithStartAngle(opts.EffectiveStartAngle()),
		wheel.WithSeasons(opts.EffectiveSeasons()),
	}
	if opts.TrueMonths {
		engineOpts = append(engineOpts, wheel.WithMonths(events.CalendarMonths{Year: opts.Year}))
	}

	e := wheel.New(engineOpts...)
	e.SetCornerRadius(opts.CornerUI)
	e.Relayout(opts.Width, opts.Height)
	return e
}

// Execute runs the full pipeline: fetch events, compute the layout, render
// the requested formats. Cached layouts skip the fetch stage entirely, since
// events are embedded in the serialized layout.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	result := &Result{Artifacts: make(map[string][]byte, len(opts.Formats))}

	layoutJSON, err := r.layoutStage(ctx, opts, result)
	if err != nil {
		return nil, err
	}
	result.LayoutHash = cache.Hash(layoutJSON)

	logger.Debug("layout ready",
		"markers", len(result.Layout.Markers),
		"cached", result.CacheInfo.LayoutHit,
		"events", result.Stats.EventCount)

	renderStart := time.Now()
	allCached := true
	for _, format := range opts.Formats {
		data, hit, err := r.renderStage(ctx, opts, result.Layout, result.LayoutHash, layoutJSON, format)
		if err != nil {
			return nil, err
		}
		result.Artifacts[format] = data
		allCached = allCached && hit
	}
	result.CacheInfo.RenderHit = allCached
	result.Stats.RenderTime = time.Since(renderStart)

	return result, nil
}

// layoutStage returns the serialized layout, from cache when possible, and
// fills in result.Layout, fetch stats, and the layout cache flag.
func (r *Runner) layoutStage(ctx context.Context, opts Options, result *Result) ([]byte, error) {
	key := r.keyer.LayoutKey(opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
			if l, err := wheel.UnmarshalLayout(data); err == nil {
				result.Layout = l
				result.CacheInfo.LayoutHit = true
				result.Stats.EventCount = countEvents(l)
				return data, nil
			}
			// A corrupt cached layout is recomputed, not reported.
			opts.Logger.Warn("discarding unreadable cached layout", "key", key)
		}
	}

	grouped, err := r.fetchStage(ctx, opts, result)
	if err != nil {
		return nil, err
	}

	layoutStart := time.Now()
	engine := BuildEngine(opts)
	if grouped != nil {
		engine.AssignEvents(grouped)
	}

	l := engine.Export()
	l.Year = opts.Year
	l.Style = opts.Style
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)

	data, err := wheel.MarshalLayout(l)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout")
	}
	// Cache write failures are non-fatal.
	_ = r.cache.Set(ctx, key, data, 0)
	return data, nil
}

// fetchStage downloads and groups feed events by week. Without a feed URL it
// is a no-op returning nil.
func (r *Runner) fetchStage(ctx context.Context, opts Options, result *Result) (map[int][]events.Event, error) {
	if opts.FeedURL == "" {
		return nil, nil
	}

	fetchStart := time.Now()
	feed := &events.ICSFeed{URL: opts.FeedURL, Client: r.client, Refresh: opts.Refresh}
	evs, err := feed.Events(ctx, opts.Year)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFeed, err, "fetch events from %s", opts.FeedURL)
	}
	result.Stats.EventCount = len(evs)
	result.Stats.FetchTime = time.Since(fetchStart)

	opts.Logger.Debug("fetched feed", "url", opts.FeedURL, "events", len(evs))
	return events.GroupByWeek(opts.Year, evs), nil
}

// renderStage renders one format, consulting the artifact cache keyed by
// layout hash plus render options.
func (r *Runner) renderStage(ctx context.Context, opts Options, l wheel.Layout, layoutHash string, layoutJSON []byte, format string) ([]byte, bool, error) {
	// JSON is the layout itself; caching it again would duplicate the
	// layout cache entry.
	if format == FormatJSON {
		return layoutJSON, false, nil
	}

	key := r.keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
	if !opts.Refresh {
		if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
			return data, true, nil
		}
	}

	var data []byte
	var err error
	switch format {
	case FormatSVG:
		data = sink.RenderSVG(l, r.svgOptions(opts)...)
	case FormatPNG:
		data, err = r.renderPNG(l, opts)
	default:
		return nil, false, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
	if err != nil {
		return nil, false, err
	}

	_ = r.cache.Set(ctx, key, data, 0)
	return data, false, nil
}

func (r *Runner) svgOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithStyle(styleFor(opts)),
		sink.WithTitle(opts.EffectiveTitle()),
	}
	if opts.Outline {
		svgOpts = append(svgOpts, sink.WithOutline())
	}
	if opts.Legend {
		svgOpts = append(svgOpts, sink.WithSeasonLegend())
	}
	if opts.Popups {
		svgOpts = append(svgOpts, sink.WithPopups())
	}
	return svgOpts
}

func (r *Runner) renderPNG(l wheel.Layout, opts Options) ([]byte, error) {
	pngOpts := []sink.PNGOption{sink.WithPNGTitle(opts.EffectiveTitle())}
	if opts.Outline {
		pngOpts = append(pngOpts, sink.WithPNGOutline())
	}
	if opts.Legend {
		pngOpts = append(pngOpts, sink.WithPNGLegend())
	}
	data, err := sink.RenderPNG(l, pngOpts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render png")
	}
	return data, nil
}

// styleFor maps the style name to its implementation. Unknown names fall
// back to the simple style; validation rejects them earlier in the pipeline.
func styleFor(opts Options) styles.Style {
	switch opts.Style {
	case styles.StyleInk:
		return ink.New(opts.Seed)
	default:
		return styles.Simple{}
	}
}

func countEvents(l wheel.Layout) int {
	total := 0
	for _, m := range l.Markers {
		total += len(m.Events)
	}
	return total
}
