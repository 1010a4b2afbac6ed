// Package events supplies the calendar data consumed by the wheel: event
// records, grouping of events into week buckets, and the month-name /
// month-start collaborator used for label placement.
//
// The layout engine treats event lists as opaque beyond an existence check;
// everything date-shaped lives here so the geometry stays date-free.
//
// Feed fetching (ICS over HTTP) is in feed.go and uses pkg/httputil for
// retries and response caching.
package events
