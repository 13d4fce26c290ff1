// Package cache stores rendered log sheets so repeated requests for the same
// workout and options skip the layout and render stages.
//
// Three backends implement [Cache]:
//
//   - [FileCache] keeps entries as files, for the CLI
//   - [RedisCache] shares entries between server instances
//   - [NullCache] disables caching
//
// Keys come from a [Keyer]. The default keyer hashes the workout content
// together with every option that changes the output, so editing a workout
// or switching language never serves a stale artifact.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long a rendered artifact stays cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// ArtifactKeyOpts are the inputs besides the workout that shape an artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Sheet    string `json:"sheet"` // hash of the layout options
	Language string `json:"language,omitempty"`
	Username string `json:"username,omitempty"`
	Product  string `json:"product,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	ArtifactKey(workoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey hashes the workout hash together with opts.
func (DefaultKeyer) ArtifactKey(workoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", workoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
