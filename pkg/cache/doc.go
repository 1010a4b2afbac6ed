// Package cache provides the caching layer shared by the CLI and the HTTP
// server: feed responses, computed layouts, and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: directory-backed, for CLI usage
//   - [RedisCache]: Redis-backed, for multi-instance server deployments
//   - [NullCache]: no-op, for tests and --no-cache runs
//
// All backends implement [Cache]. Entries are opaque byte slices with a
// per-entry TTL; key construction is centralized in [Keyer] so the CLI and
// server derive identical keys for identical wheel parameters.
package cache
