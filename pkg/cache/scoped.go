package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis or MongoDB instance without seeing each other's entries.
//
// Example usage:
//
//	// Keys for the staging server
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// LinesKey generates a prefixed key for line breaking results.
func (k *ScopedKeyer) LinesKey(seqHash string, opts LinesKeyOpts) string {
	return k.prefix + k.inner.LinesKey(seqHash, opts)
}

// PagesKey generates a prefixed key for page breaking results.
func (k *ScopedKeyer) PagesKey(seqHash string, opts PagesKeyOpts) string {
	return k.prefix + k.inner.PagesKey(seqHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(resultHash, opts)
}
