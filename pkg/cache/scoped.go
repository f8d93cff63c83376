package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each output directory its
// own key namespace:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "dir:/abs/out:")
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

// PackKey generates a prefixed pack key.
func (k *ScopedKeyer) PackKey(inputsHash string, opts PackKeyOpts) string {
	return k.prefix + k.inner.PackKey(inputsHash, opts)
}
