package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments or
// dictionary sets can share one backend without colliding.
//
// It is selected by the [cache] prefix setting through [Config.Keyer]:
//
//	[cache]
//	backend = "redis"
//	prefix = "staging:"
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DocumentKey generates a prefixed document key.
func (k *ScopedKeyer) DocumentKey(identifier string, opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(identifier, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(documentHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(documentHash, opts)
}
