package cache

// ScopedKeyer wraps a Keyer with a prefix so separate contexts get
// separate cache namespaces. Useful when one backing store serves
// multiple users or projects.
//
// Example usage:
//
//	// Project-specific keys
//	projectKeyer := NewScopedKeyer(NewDefaultKeyer(), "project:abc123:")
//
//	// Shared keys
//	sharedKeyer := NewDefaultKeyer()
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

// DatasetKey generates a prefixed key for dataset caching.
func (k *ScopedKeyer) DatasetKey(inputHash string, opts DatasetKeyOpts) string {
	return k.prefix + k.inner.DatasetKey(inputHash, opts)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(datasetHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
