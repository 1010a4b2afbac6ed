package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/komapc/yearwheel/pkg/cache"
)

// DefaultTTL is how long fetched feed responses stay fresh.
const DefaultTTL = 6 * time.Hour

// maxResponseSize caps feed downloads at 8 MiB; a calendar feed larger than
// that is almost certainly not a calendar feed.
const maxResponseSize = 8 << 20

// Client fetches URLs with retry and caches responses.
// The zero value is not usable; construct with [NewClient].
type Client struct {
	http  *http.Client
	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
}

// NewClient creates a caching HTTP client. A nil httpClient selects
// http.DefaultClient; a nil c disables caching via [cache.NullCache].
func NewClient(httpClient *http.Client, c cache.Cache, ttl time.Duration) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Client{
		http:  httpClient,
		cache: c,
		keyer: cache.NewDefaultKeyer(),
		ttl:   ttl,
	}
}

// Get fetches url, consulting the cache first. The namespace separates
// key spaces for different consumers (e.g. "ics"). The boolean reports
// whether the response came from cache. Set refresh to bypass the cache
// and overwrite it with the fresh response.
func (c *Client) Get(ctx context.Context, namespace, url string, refresh bool) ([]byte, bool, error) {
	key := c.keyer.HTTPKey(namespace, url)

	if !refresh {
		if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			return data, true, nil
		}
	}

	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		var fetchErr error
		body, fetchErr = c.fetch(ctx, url)
		return fetchErr
	})
	if err != nil {
		return nil, false, err
	}

	// Cache write failures are non-fatal; the fetch already succeeded.
	_ = c.cache.Set(ctx, key, body, c.ttl)
	return body, false, nil
}

// fetch performs a single GET, classifying failures as retryable or not.
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, Retryable(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to read
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, Retryable(fmt.Errorf("GET %s: status %d", url, resp.StatusCode))
	default:
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, Retryable(err)
	}
	return body, nil
}
