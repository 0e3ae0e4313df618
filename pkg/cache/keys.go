package cache

// Keyer derives cache keys for rendered artifacts.
type Keyer interface {
	ArtifactKey(dot []byte, format string) string
}

// DefaultKeyer produces keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey hashes the DOT source together with the output format.
func (DefaultKeyer) ArtifactKey(dot []byte, format string) string {
	return hashKey("artifact", format, Hash(dot))
}

// ScopedKeyer wraps a Keyer with a prefix, so several curricula or
// deployments can share one Redis instance without colliding.
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

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(dot []byte, format string) string {
	return k.prefix + k.inner.ArtifactKey(dot, format)
}
