package distance

import (
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/matzehuels/qroute/pkg/coupling"
)

// Subset is an immutable set of vertices backed by a roaring bitmap.
// The zero value is the empty set.
type Subset struct {
	rb *roaring.Bitmap
}

// NewSubset builds a subset from vertices. Duplicates collapse.
func NewSubset(vs []coupling.Vertex) Subset {
	rb := roaring.New()
	for _, v := range vs {
		rb.Add(uint32(v))
	}
	return Subset{rb: rb}
}

// Contains reports whether v is in the subset.
func (s Subset) Contains(v coupling.Vertex) bool {
	return s.rb != nil && v >= 0 && s.rb.Contains(uint32(v))
}

// Len returns the number of vertices.
func (s Subset) Len() int {
	if s.rb == nil {
		return 0
	}
	return int(s.rb.GetCardinality())
}

// Vertices returns the members in ascending order.
func (s Subset) Vertices() []coupling.Vertex {
	if s.rb == nil {
		return nil
	}
	out := make([]coupling.Vertex, 0, s.rb.GetCardinality())
	it := s.rb.Iterator()
	for it.HasNext() {
		out = append(out, coupling.Vertex(it.Next()))
	}
	return out
}

// Intersect returns the vertices present in both subsets.
func (s Subset) Intersect(other Subset) Subset {
	if s.rb == nil || other.rb == nil {
		return Subset{}
	}
	return Subset{rb: roaring.And(s.rb, other.rb)}
}

// Key returns the canonical form of the subset: members ascending, comma
// separated. Equal sets have equal keys regardless of construction order.
func (s Subset) Key() string {
	var b strings.Builder
	for i, v := range s.Vertices() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(v)))
	}
	return b.String()
}
