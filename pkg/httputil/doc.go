// Package httputil provides the HTTP plumbing for calendar feed fetching.
//
// # Overview
//
//   - [Client]: GET with response caching through pkg/cache
//   - [Retry]: automatic retry with exponential backoff
//
// Transient failures (network errors, 5xx responses, 429 rate limits) are
// retried; anything else fails fast. Responses are cached under keys derived
// by [cache.Keyer] so repeated renders of the same feed do not refetch it.
package httputil
