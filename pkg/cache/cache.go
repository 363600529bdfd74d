// Package cache stores rendered artifacts so repeated renders of the same
// document are served without drawing again.
//
// Backends:
//   - [NewFileCache]: one JSON file per entry, for the CLI
//   - [NewRedisCache]: shared cache for several server instances
//   - [NewMongoCache]: durable cache with a TTL index
//   - [NewNullCache]: caching disabled
//
// Keys come from a [Keyer] so that backends never see document contents,
// only hashes.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. A zero ttl never expires.
// Get reports a miss with hit == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Keyer derives cache keys.
type Keyer interface {
	// DocumentKey identifies a diagram document by content.
	DocumentKey(doc []byte) string
	// ArtifactKey identifies one output of a rendered document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Family            string  `json:"family"`
	Format            string  `json:"format"`
	Width             float64 `json:"width"`
	Height            float64 `json:"height"`
	Padding           float64 `json:"padding,omitempty"`
	FontSize          float64 `json:"font_size,omitempty"`
	LineHeight        float64 `json:"line_height,omitempty"`
	Scale             float64 `json:"scale,omitempty"`
	Background        string  `json:"background,omitempty"`
	ScreenCoordinates bool    `json:"screen_coordinates,omitempty"`
	EmbedFont         bool    `json:"embed_font,omitempty"`
}

// DefaultKeyer hashes key material with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DocumentKey returns "doc:<sha256>" of doc.
func (DefaultKeyer) DocumentKey(doc []byte) string { return "doc:" + Hash(doc) }

// ArtifactKey returns "artifact:<sha256>" of the document hash and options.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}

var _ Keyer = DefaultKeyer{}
