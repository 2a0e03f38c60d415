package cache

// ScopedKeyer prefixes every key produced by an inner Keyer. The server
// scopes its entries this way, so a Redis shared between a service
// deployment and ad-hoc CLI runs never serves one surface the other's
// artifacts.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner so all keys carry prefix. A nil inner uses
// the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey returns the inner layout key under the scope prefix.
func (s *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return s.prefix + s.inner.LayoutKey(graphHash, opts)
}

// ArtifactKey returns the inner artifact key under the scope prefix.
func (s *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return s.prefix + s.inner.ArtifactKey(layoutHash, opts)
}

var _ Keyer = (*ScopedKeyer)(nil)
