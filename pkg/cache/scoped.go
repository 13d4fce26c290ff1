package cache

// ScopedKeyer prefixes every key of an inner keyer, giving each tenant of a
// shared Redis its own namespace.
//
//	keyer := cache.NewScopedKeyer(nil, "user:"+sub+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey returns the prefixed inner key.
func (k *ScopedKeyer) ArtifactKey(workoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(workoutHash, opts)
}
