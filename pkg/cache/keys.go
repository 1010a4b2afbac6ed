package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// LayoutKeyOpts captures every parameter that changes a computed layout.
// Two runs with equal LayoutKeyOpts may share a cached layout.
type LayoutKeyOpts struct {
	Year       int      `json:"year"`
	Weeks      int      `json:"weeks"`
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
	Corner     float64  `json:"corner"`
	Direction  int      `json:"direction"`
	StartAngle float64  `json:"start_angle"`
	Seasons    []string `json:"seasons"`
	TrueMonths bool     `json:"true_months,omitempty"`
	FeedURL    string   `json:"feed_url,omitempty"`
}

// ArtifactKeyOpts captures every parameter that changes a rendered artifact
// beyond the layout it was rendered from.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Style   string `json:"style"`
	Seed    uint64 `json:"seed,omitempty"`
	Outline bool   `json:"outline"`
	Legend  bool   `json:"legend"`
	Popups  bool   `json:"popups"`
	Title   string `json:"title,omitempty"`
}

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// HTTPKey derives a key for a cached HTTP response (e.g. an ICS feed).
	HTTPKey(namespace, url string) string
	// LayoutKey derives a key for a computed wheel layout.
	LayoutKey(opts LayoutKeyOpts) string
	// ArtifactKey derives a key for a rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey generates a key for HTTP response caching.
func (DefaultKeyer) HTTPKey(namespace, url string) string {
	return hashKey("http", namespace, url)
}

// LayoutKey generates a key for layout caching.
func (DefaultKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return hashKey("layout", opts)
}

// ArtifactKey generates a key for artifact caching.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation,
// used by the server to namespace per-user feed caches.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, url string) string {
	return k.prefix + k.inner.HTTPKey(namespace, url)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
