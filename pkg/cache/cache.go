// Package cache stores small blobs keyed by content hashes.
//
// The CLI uses it to remember which inputs and options produced which output
// files, so an unchanged project can skip decoding and packing entirely.
//
// Two implementations are provided: [FileCache] stores entries below a
// directory (normally $XDG_CACHE_HOME/texturepacker) and [NullCache] never
// stores anything, which is what --no-cache selects.
package cache

import (
	"context"
	"time"
)

// TTLPack is how long a pack manifest stays valid.
const TTLPack = 30 * 24 * time.Hour

// Cache is a byte-oriented key/value store.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// PackKeyOpts holds everything besides the input pixels that changes the
// output of a pack run.
type PackKeyOpts struct {
	Options    any    `json:"options"`
	Encoder    string `json:"encoder"`
	BaseName   string `json:"base_name"`
	Multiple   bool   `json:"multiple"`
	NameFormat string `json:"name_format,omitempty"`
	TextureExt string `json:"texture_ext,omitempty"`
	Format     string `json:"pixel_format,omitempty"`

	// Generator identifies the packer build; a new build repacks.
	Generator string `json:"generator,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// PackKey returns the key for a pack run over inputs with the given digest.
	PackKey(inputsHash string, opts PackKeyOpts) string
}

// DefaultKeyer implements Keyer with SHA-256 keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PackKey hashes the inputs digest together with opts.
func (DefaultKeyer) PackKey(inputsHash string, opts PackKeyOpts) string {
	return hashKey("pack", inputsHash, opts)
}

var _ Keyer = DefaultKeyer{}
