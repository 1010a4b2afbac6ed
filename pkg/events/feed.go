package events

import (
	"bytes"
	"context"
	"fmt"

	"github.com/komapc/yearwheel/pkg/httputil"
)

// Feed supplies the events for a year. Implementations are expected to be
// cheap to call repeatedly; the pipeline caches at the layout level anyway.
type Feed interface {
	Events(ctx context.Context, year int) ([]Event, error)
}

// ICSFeed fetches an iCalendar URL through a caching HTTP client.
type ICSFeed struct {
	URL     string
	Client  *httputil.Client
	Refresh bool // bypass the response cache
}

// Events downloads and parses the feed, returning the events that fall in
// the given year.
func (f *ICSFeed) Events(ctx context.Context, year int) ([]Event, error) {
	body, _, err := f.Client.Get(ctx, "ics", f.URL, f.Refresh)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", f.URL, err)
	}

	all, err := ParseICS(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", f.URL, err)
	}

	evs := make([]Event, 0, len(all))
	for _, ev := range all {
		if ev.Start.Year() == year {
			evs = append(evs, ev)
		}
	}
	return evs, nil
}

// StaticFeed serves a fixed event list; used in tests and as the empty feed
// when no URL is configured.
type StaticFeed []Event

// Events returns the events that fall in the given year.
func (f StaticFeed) Events(ctx context.Context, year int) ([]Event, error) {
	evs := make([]Event, 0, len(f))
	for _, ev := range f {
		if ev.Start.Year() == year {
			evs = append(evs, ev)
		}
	}
	return evs, nil
}
