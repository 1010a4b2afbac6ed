package errors

import (
	"net/url"
	"strings"
)

// Year bounds accepted by the HTTP API and the CLI. Proleptic wheels are
// fine; four-digit-overflow typos are not.
const (
	MinYear = 1
	MaxYear = 9999
)

// ValidateYear checks that a year is within the accepted range.
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return New(ErrCodeInvalidYear, "year %d out of range [%d, %d]", year, MinYear, MaxYear)
	}
	return nil
}

// ValidateFeedURL validates a calendar feed URL supplied by a user.
// Only http and https schemes are accepted; anything that could reach the
// local filesystem or arbitrary schemes is rejected.
func ValidateFeedURL(raw string) error {
	if raw == "" {
		return New(ErrCodeInvalidFeed, "feed URL cannot be empty")
	}
	if len(raw) > 2048 {
		return New(ErrCodeInvalidFeed, "feed URL too long (max 2048 characters)")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Wrap(ErrCodeInvalidFeed, err, "feed URL is not parseable")
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		// ok
	default:
		return New(ErrCodeInvalidFeed, "feed URL scheme %q not allowed (http/https only)", u.Scheme)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidFeed, "feed URL has no host")
	}
	return nil
}
