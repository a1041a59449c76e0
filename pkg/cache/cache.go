// Package cache stores breaking results and rendered artifacts.
//
// A [Cache] is a plain byte store with per-entry TTL. Keys come from a
// [Keyer] so that every frontend (CLI, HTTP server) derives the same key from
// the same input. Four backends are provided:
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: a shared Redis instance, for the server
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: caching disabled
//
// [Open] picks a backend from configuration.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind.
const (
	TTLLines    = 7 * 24 * time.Hour
	TTLPages    = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte store with expiring entries.
type Cache interface {
	// Get returns the data stored under key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Keyer derives cache keys from breaking inputs.
type Keyer interface {
	// LinesKey is the key of a line breaking result.
	LinesKey(seqHash string, opts LinesKeyOpts) string
	// PagesKey is the key of a page breaking result.
	PagesKey(seqHash string, opts PagesKeyOpts) string
	// ArtifactKey is the key of a rendered artifact (for example the SVG of
	// a candidate graph) derived from a result.
	ArtifactKey(resultHash string, opts ArtifactKeyOpts) string
}

// LinesKeyOpts are the line breaking options that affect the result.
type LinesKeyOpts struct {
	Width         int     `json:"width"`
	Threshold     float64 `json:"threshold"`
	Force         bool    `json:"force"`
	Allowed       string  `json:"allowed"`
	Alignment     string  `json:"alignment"`
	AlignmentLast string  `json:"alignment_last"`
	Alternatives  bool    `json:"alternatives"`
	Trace         bool    `json:"trace"`
}

// PagesKeyOpts are the page breaking options that affect the result.
// Geometry is any JSON-encodable description of the page specs.
type PagesKeyOpts struct {
	Geometry         any     `json:"geometry"`
	Threshold        float64 `json:"threshold"`
	Force            bool    `json:"force"`
	Allowed          string  `json:"allowed"`
	Separator        int     `json:"separator"`
	SplitDemerits    float64 `json:"split_demerits"`
	DeferredDemerits float64 `json:"deferred_demerits"`
	FavorSinglePart  bool    `json:"favor_single_part"`
	Trace            bool    `json:"trace"`
}

// ArtifactKeyOpts identify one rendering of a result.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) LinesKey(seqHash string, opts LinesKeyOpts) string {
	return hashKey("lines", seqHash, opts)
}

func (DefaultKeyer) PagesKey(seqHash string, opts PagesKeyOpts) string {
	return hashKey("pages", seqHash, opts)
}

func (DefaultKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", resultHash, opts)
}
