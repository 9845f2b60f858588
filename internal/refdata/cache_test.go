package refdata

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almatienda/catalog-service/internal/database"
)

func testBundle() *database.ReferenceData {
	return &database.ReferenceData{
		TermGroups: []database.TermGroup{
			{ID: 1, Name: "Color", IsActive: true},
			{ID: 2, Name: "Talla", IsActive: true},
		},
		Terms: []database.Term{
			{ID: 10, Name: "Rojo", TermGroupID: 1, IsActive: true},
			{ID: 11, Name: "Azul", TermGroupID: 1, IsActive: true},
			{ID: 20, Name: "S", TermGroupID: 2, IsActive: true},
		},
		PriceLists: []database.PriceList{{ID: 1, Name: "General", IsActive: true}},
		Warehouses: []database.Warehouse{{ID: 1, Name: "Central", BranchID: 1, IsActive: true}},
		StockTypes: []database.StockType{{ID: 1, Name: "Nuevo"}},
	}
}

func TestGetLoadsOnceWithinTTL(t *testing.T) {
	calls := 0
	cache := New(func(ctx context.Context) (*database.ReferenceData, error) {
		calls++
		return testBundle(), nil
	}, time.Minute)

	for i := 0; i < 5; i++ {
		snap, err := cache.Get(context.Background())
		require.NoError(t, err)
		require.NotNil(t, snap)
	}
	assert.Equal(t, 1, calls)
}

func TestSnapshotIndexes(t *testing.T) {
	cache := New(func(ctx context.Context) (*database.ReferenceData, error) {
		return testBundle(), nil
	}, time.Minute)

	snap, err := cache.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Rojo", snap.TermName(10))
	assert.Equal(t, "Color", snap.GroupName(1))
	assert.Len(t, snap.TermsForGroup(1), 2)
	assert.Empty(t, snap.TermsForGroup(99))

	groups := snap.TermGroups()
	require.Len(t, groups, 2)
	assert.Equal(t, "Color", groups[0].Name)
	assert.True(t, groups[0].Active)

	terms := snap.Terms()
	require.Len(t, terms, 3)
	assert.Equal(t, int64(1), terms[0].TermGroupID)

	require.Len(t, snap.PriceLists(), 1)
	require.Len(t, snap.Warehouses(), 1)
	assert.Equal(t, int64(1), snap.Warehouses()[0].BranchID)
}

func TestInvalidateForcesReload(t *testing.T) {
	calls := 0
	cache := New(func(ctx context.Context) (*database.ReferenceData, error) {
		calls++
		return testBundle(), nil
	}, time.Minute)

	_, err := cache.Get(context.Background())
	require.NoError(t, err)

	cache.Invalidate()

	_, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetServesStaleOnLoaderFailure(t *testing.T) {
	calls := 0
	cache := New(func(ctx context.Context) (*database.ReferenceData, error) {
		calls++
		if calls == 1 {
			return testBundle(), nil
		}
		return nil, errors.New("connection refused")
	}, time.Nanosecond) // every Get is an expiry

	first, err := cache.Get(context.Background())
	require.NoError(t, err)

	second, err := cache.Get(context.Background())
	require.NoError(t, err, "stale snapshot keeps serving")
	assert.Same(t, first, second)
}

func TestGetFailsWithoutAnySnapshot(t *testing.T) {
	cache := New(func(ctx context.Context) (*database.ReferenceData, error) {
		return nil, errors.New("connection refused")
	}, time.Minute)

	_, err := cache.Get(context.Background())
	assert.Error(t, err)
}

func TestConcurrentGetsCollapseToOneLoad(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	cache := New(func(ctx context.Context) (*database.ReferenceData, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		time.Sleep(10 * time.Millisecond)
		return testBundle(), nil
	}, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Get(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}
