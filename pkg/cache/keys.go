package cache

// Keyer derives cache keys.
type Keyer interface {
	// TablesKey returns the key for an architecture's table families.
	TablesKey(opts TablesKeyOpts) string
}

// TablesKeyOpts identifies a table-family computation. Two architectures
// with the same topology and qubit map share tables regardless of name.
type TablesKeyOpts struct {
	Vertices []int    // sorted vertex identifiers
	Edges    [][2]int // sorted edges
	QubitMap []int    // qubit -> vertex
	Format   int      // serialization version of the payload
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// TablesKey implements Keyer.
func (DefaultKeyer) TablesKey(opts TablesKeyOpts) string {
	return hashKey("tables", opts.Vertices, opts.Edges, opts.QubitMap, opts.Format)
}

// ScopedKeyer wraps a Keyer with a prefix, so several deployments can share
// one Redis or Mongo instance without seeing each other's entries.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "lab-a:")
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

// TablesKey generates a prefixed key for table-family caching.
func (k *ScopedKeyer) TablesKey(opts TablesKeyOpts) string {
	return k.prefix + k.inner.TablesKey(opts)
}
