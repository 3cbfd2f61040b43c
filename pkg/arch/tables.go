package arch

import (
	"context"
	"time"

	"github.com/matzehuels/qroute/pkg/cache"
	"github.com/matzehuels/qroute/pkg/distance"
	"github.com/matzehuels/qroute/pkg/observability"
)

// Precompute computes the distance-table families if they are not ready
// yet. With a table cache configured, the families are loaded from it when
// present and stored after computing otherwise.
//
// ctx bounds only the cache I/O. A cancelled or failing cache is treated as
// a miss, so Precompute itself only fails on a broken computation.
func (a *Architecture) Precompute(ctx context.Context) error {
	a.once.Do(func() {
		a.families, a.tablesErr = a.loadTables(ctx)
	})
	return a.tablesErr
}

// tables returns the families, computing them on first use.
func (a *Architecture) tables() (*distance.Families, error) {
	if err := a.Precompute(context.Background()); err != nil {
		return nil, err
	}
	return a.families, nil
}

func (a *Architecture) loadTables(ctx context.Context) (*distance.Families, error) {
	hooks := observability.Routing()
	start := time.Now()
	hooks.OnPrecomputeStart(ctx, a.name, a.QubitCount())

	key := a.tablesKey()
	if f := a.cachedTables(ctx, key); f != nil {
		hooks.OnPrecomputeComplete(ctx, a.name, observability.SourceCache, 2*f.Len(), time.Since(start), nil)
		a.logger.Debug("distance tables loaded from cache", "tables", 2*f.Len(), "duration", time.Since(start))
		return f, nil
	}

	f, err := distance.Precompute(context.WithoutCancel(ctx), a.g, a.p, a.cfg.workers)
	if err != nil {
		hooks.OnPrecomputeComplete(ctx, a.name, observability.SourceComputed, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnPrecomputeComplete(ctx, a.name, observability.SourceComputed, 2*f.Len(), time.Since(start), nil)
	a.logger.Debug("distance tables computed",
		"tables", 2*f.Len(),
		"workers", max(a.cfg.workers, 1),
		"duration", time.Since(start))

	a.storeTables(ctx, key, f)
	return f, nil
}

func (a *Architecture) tablesKey() string {
	vs := a.g.Vertices()
	opts := cache.TablesKeyOpts{
		Vertices: make([]int, len(vs)),
		Edges:    make([][2]int, 0, a.g.EdgeCount()),
		QubitMap: make([]int, a.p.Len()),
		Format:   distance.FamiliesVersion,
	}
	for i, v := range vs {
		opts.Vertices[i] = int(v)
	}
	for _, e := range a.g.Edges() {
		opts.Edges = append(opts.Edges, [2]int{int(e.A), int(e.B)})
	}
	for q, v := range a.p.Map() {
		opts.QubitMap[q] = int(v)
	}
	return a.cfg.keyer.TablesKey(opts)
}

// cachedTables returns the cached families for key, or nil on any miss.
// Backend and decode failures are logged and count as misses.
func (a *Architecture) cachedTables(ctx context.Context, key string) *distance.Families {
	if a.cfg.tableCache == nil {
		return nil
	}
	data, hit, err := a.cfg.tableCache.Get(ctx, key)
	if err != nil {
		a.logger.Warn("table cache read failed", "key", key, "err", err)
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, observability.KeyTypeTables)
		return nil
	}
	f, err := distance.DecodeFamilies(data, a.g, a.p)
	if err != nil {
		a.logger.Warn("discarding cached tables", "key", key, "err", err)
		observability.Cache().OnCacheMiss(ctx, observability.KeyTypeTables)
		return nil
	}
	observability.Cache().OnCacheHit(ctx, observability.KeyTypeTables)
	return f
}

func (a *Architecture) storeTables(ctx context.Context, key string, f *distance.Families) {
	if a.cfg.tableCache == nil {
		return
	}
	data, err := distance.EncodeFamilies(f, a.p)
	if err != nil {
		a.logger.Warn("encode tables failed", "err", err)
		return
	}
	if err := a.cfg.tableCache.Set(ctx, key, data, a.cfg.tableTTL); err != nil {
		a.logger.Warn("table cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, observability.KeyTypeTables, len(data))
}

func (a *Architecture) observeMemo(hit bool) {
	ctx := context.Background()
	if hit {
		observability.Cache().OnCacheHit(ctx, observability.KeyTypeMemo)
		return
	}
	observability.Cache().OnCacheMiss(ctx, observability.KeyTypeMemo)
}
