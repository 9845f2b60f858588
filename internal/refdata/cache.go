// Package refdata caches the editor's lookup entities (attribute axes and
// terms, price lists, warehouses, stock types). The bundle is small, changes
// rarely, and is read on every product editor load, so it is kept as an
// immutable snapshot swapped atomically on reload.
package refdata

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/almatienda/catalog-service/internal/database"
	"github.com/almatienda/catalog-service/internal/variants"
)

// Loader loads a fresh reference bundle. The production loader is
// database.LoadReferenceData; tests substitute their own.
type Loader func(ctx context.Context) (*database.ReferenceData, error)

// Snapshot is an immutable view of the reference bundle plus the derived
// indexes the handlers need. It is built off-lock and swapped atomically.
type Snapshot struct {
	Ref      *database.ReferenceData
	loadedAt time.Time

	termNames  map[int64]string
	groupNames map[int64]string
	termsByGrp map[int64][]database.Term
}

// TermName resolves a term id to its display name.
func (s *Snapshot) TermName(id int64) string { return s.termNames[id] }

// GroupName resolves a term group id to its display name.
func (s *Snapshot) GroupName(id int64) string { return s.groupNames[id] }

// TermsForGroup lists the terms of one axis.
func (s *Snapshot) TermsForGroup(groupID int64) []database.Term { return s.termsByGrp[groupID] }

// TermGroups converts the bundle's axes into the engine's shape.
func (s *Snapshot) TermGroups() []variants.TermGroup {
	groups := make([]variants.TermGroup, len(s.Ref.TermGroups))
	for i, g := range s.Ref.TermGroups {
		groups[i] = variants.TermGroup{ID: g.ID, Name: g.Name, Active: g.IsActive}
	}
	return groups
}

// Terms converts the bundle's terms into the engine's shape.
func (s *Snapshot) Terms() []variants.Term {
	terms := make([]variants.Term, len(s.Ref.Terms))
	for i, t := range s.Ref.Terms {
		terms[i] = variants.Term{ID: t.ID, Name: t.Name, TermGroupID: t.TermGroupID, Active: t.IsActive}
	}
	return terms
}

// PriceLists converts the bundle's price tiers for the variation engine.
func (s *Snapshot) PriceLists() []variants.PriceList {
	lists := make([]variants.PriceList, len(s.Ref.PriceLists))
	for i, l := range s.Ref.PriceLists {
		lists[i] = variants.PriceList{ID: l.ID, Name: l.Name}
	}
	return lists
}

// Warehouses converts the bundle's warehouses for the variation engine.
func (s *Snapshot) Warehouses() []variants.Warehouse {
	warehouses := make([]variants.Warehouse, len(s.Ref.Warehouses))
	for i, w := range s.Ref.Warehouses {
		warehouses[i] = variants.Warehouse{ID: w.ID, Name: w.Name, BranchID: w.BranchID}
	}
	return warehouses
}

// StockTypes converts the bundle's inventory buckets for the variation engine.
func (s *Snapshot) StockTypes() []variants.StockType {
	types := make([]variants.StockType, len(s.Ref.StockTypes))
	for i, st := range s.Ref.StockTypes {
		types[i] = variants.StockType{ID: st.ID, Name: st.Name}
	}
	return types
}

// Cache serves reference snapshots with TTL-based reload. Concurrent reloads
// collapse into one database round per expiry.
type Cache struct {
	loader Loader
	ttl    time.Duration

	snapshot atomic.Value // *Snapshot

	// loadSem admits one loader at a time; losers wait and reuse the
	// winner's snapshot instead of stacking identical queries.
	loadSem *semaphore.Weighted
	logger  zerolog.Logger
}

// New creates a cache around the given loader.
func New(loader Loader, ttl time.Duration) *Cache {
	return &Cache{
		loader:  loader,
		ttl:     ttl,
		loadSem: semaphore.NewWeighted(1),
		logger:  log.With().Str("component", "refdata_cache").Logger(),
	}
}

// Get returns the current snapshot, reloading it when missing or expired.
// A stale snapshot is still returned if the reload fails, so a database blip
// degrades freshness rather than availability.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	if snap := c.current(); snap != nil && time.Since(snap.loadedAt) < c.ttl {
		return snap, nil
	}

	if err := c.loadSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.loadSem.Release(1)

	// Re-check after acquiring: another caller may have just reloaded.
	if snap := c.current(); snap != nil && time.Since(snap.loadedAt) < c.ttl {
		return snap, nil
	}

	ref, err := c.loader(ctx)
	if err != nil {
		if snap := c.current(); snap != nil {
			reloads.WithLabelValues("stale").Inc()
			c.logger.Warn().Err(err).Msg("Reference reload failed, serving stale snapshot")
			return snap, nil
		}
		reloads.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}

	snap := buildSnapshot(ref)
	if prev := c.current(); prev != nil {
		snapshotAge.Observe(time.Since(prev.loadedAt).Seconds())
	}
	c.snapshot.Store(snap)
	reloads.WithLabelValues("ok").Inc()
	c.logger.Info().
		Int("term_groups", len(ref.TermGroups)).
		Int("terms", len(ref.Terms)).
		Int("price_lists", len(ref.PriceLists)).
		Int("warehouses", len(ref.Warehouses)).
		Msg("Loaded reference data snapshot")
	return snap, nil
}

// Invalidate drops the snapshot so the next Get reloads. Called by the
// reference write handlers after a mutation.
func (c *Cache) Invalidate() {
	c.snapshot.Store((*Snapshot)(nil))
}

func (c *Cache) current() *Snapshot {
	val := c.snapshot.Load()
	if val == nil {
		return nil
	}
	snap, _ := val.(*Snapshot)
	return snap
}

func buildSnapshot(ref *database.ReferenceData) *Snapshot {
	snap := &Snapshot{
		Ref:        ref,
		loadedAt:   time.Now(),
		termNames:  make(map[int64]string, len(ref.Terms)),
		groupNames: make(map[int64]string, len(ref.TermGroups)),
		termsByGrp: make(map[int64][]database.Term, len(ref.TermGroups)),
	}
	for _, g := range ref.TermGroups {
		snap.groupNames[g.ID] = g.Name
	}
	for _, t := range ref.Terms {
		snap.termNames[t.ID] = t.Name
		snap.termsByGrp[t.TermGroupID] = append(snap.termsByGrp[t.TermGroupID], t)
	}
	return snap
}
