package distance

import (
	"sync"

	"github.com/matzehuels/qroute/pkg/coupling"
	"github.com/matzehuels/qroute/pkg/placement"
)

// Memo caches tables for explicit (policy, usable, recursion) combinations.
// Entries live as long as the Memo; there is no eviction.
type Memo struct {
	g *coupling.Graph
	p *placement.Placement

	// observe, when set, is told whether each Get was served from the memo.
	observe func(hit bool)

	mu     sync.Mutex
	tables map[string]*Table
}

// NewMemo returns an empty memo bound to a placement. observe may be nil.
func NewMemo(p *placement.Placement, observe func(hit bool)) *Memo {
	return &Memo{g: p.Graph(), p: p, observe: observe, tables: make(map[string]*Table)}
}

// Key is the canonical memo key. The recursion set only matters under Full
// and only inside usable, so it is normalized accordingly.
func Key(policy Policy, usable, rec Subset) string {
	if policy == Upper {
		rec = Subset{}
	} else {
		rec = rec.Intersect(usable)
	}
	return policy.String() + "|" + usable.Key() + "|" + rec.Key()
}

// Get returns the table for the combination, computing it on first use.
// The second result reports whether the table was already cached.
func (m *Memo) Get(policy Policy, usable, rec Subset) (*Table, bool) {
	key := Key(policy, usable, rec)

	m.mu.Lock()
	t, hit := m.tables[key]
	if !hit {
		t = FloydWarshall(m.g, m.p, usable, rec, policy)
		m.tables[key] = t
	}
	m.mu.Unlock()

	if m.observe != nil {
		m.observe(hit)
	}
	return t, hit
}

// Len returns the number of cached tables.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tables)
}
