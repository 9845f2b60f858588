package variants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionWithOneVariation(t *testing.T) (*Synchronizer, string) {
	t.Helper()
	s := newCreateSession(t)
	s.Toggle(1, 10)
	vars := s.Variations()
	require.Len(t, vars, 1)
	return s, vars[0].ID
}

// TestUpdatePriceCoercion verifies the never-throw parsing contract for the
// price field: empty and non-numeric input resolve to 0.
func TestUpdatePriceCoercion(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
	}{
		{"empty", "", 0},
		{"whitespace", "   ", 0},
		{"non-numeric", "abc", 0},
		{"partial number", "12,50", 0},
		{"integer", "15", 15},
		{"decimal", "19.99", 19.99},
		{"negative", "-3", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, id := sessionWithOneVariation(t)
			s.UpdatePrice(id, 1, FieldPrice, tt.raw)
			assert.Equal(t, tt.expected, s.Variations()[0].Prices[0].Price)
		})
	}
}

// TestUpdateSalePriceCoercion verifies that empty and non-numeric sale price
// input resolve to nil, which is distinct from 0.
func TestUpdateSalePriceCoercion(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected *float64
	}{
		{"empty", "", nil},
		{"non-numeric", "n/a", nil},
		{"zero stays zero until submission", "0", ptr(0.0)},
		{"decimal", "15.5", ptr(15.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, id := sessionWithOneVariation(t)
			s.UpdatePrice(id, 1, FieldSalePrice, tt.raw)
			got := s.Variations()[0].Prices[0].SalePrice
			if tt.expected == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.expected, *got)
			}
		})
	}
}

// TestUpdatePriceUnknownIDsNoop verifies that unknown variation ids never
// panic; a cell for an unknown price list is created on demand.
func TestUpdatePriceUnknownIDsNoop(t *testing.T) {
	s, id := sessionWithOneVariation(t)

	assert.NotPanics(t, func() {
		s.UpdatePrice("tmp_does_not_exist", 1, FieldPrice, "10")
	})

	s.UpdatePrice(id, 99, FieldPrice, "7")
	prices := s.Variations()[0].Prices
	require.Len(t, prices, len(testPriceLists)+1)
	assert.Equal(t, int64(99), prices[len(prices)-1].PriceListID)
	assert.Equal(t, 7.0, prices[len(prices)-1].Price)
}

// TestUpdateStockSparseCreation verifies that stock cells appear only on
// first write and record their stock type.
func TestUpdateStockSparseCreation(t *testing.T) {
	s, id := sessionWithOneVariation(t)
	require.Empty(t, s.Variations()[0].Stock)

	typeID := int64(1)
	s.UpdateStock(id, 1, "12", &typeID)

	stock := s.Variations()[0].Stock
	require.Len(t, stock, 1)
	assert.Equal(t, int64(1), stock[0].WarehouseID)
	require.NotNil(t, stock[0].Stock)
	assert.Equal(t, 12.0, *stock[0].Stock)
	require.NotNil(t, stock[0].StockTypeID)
	assert.Equal(t, typeID, *stock[0].StockTypeID)
	assert.True(t, stock[0].HadInitialValue)
}

// TestUpdateStockClearPreservesHadInitialValue verifies the sticky rule:
// once a cell held a real value, clearing it keeps HadInitialValue true so
// the clear still reaches submission.
func TestUpdateStockClearPreservesHadInitialValue(t *testing.T) {
	s, id := sessionWithOneVariation(t)

	s.UpdateStock(id, 1, "5", nil)
	s.UpdateStock(id, 1, "", nil)

	stock := s.Variations()[0].Stock
	require.Len(t, stock, 1)
	assert.Nil(t, stock[0].Stock, "cleared value is unset, not zero")
	assert.True(t, stock[0].HadInitialValue)
}

// TestUpdateStockClearWithoutValueStaysUntouched: clearing a cell that never
// held a value keeps HadInitialValue false, so it is never transmitted.
func TestUpdateStockClearWithoutValueStaysUntouched(t *testing.T) {
	s, id := sessionWithOneVariation(t)

	s.UpdateStock(id, 1, "", nil)

	stock := s.Variations()[0].Stock
	require.Len(t, stock, 1)
	assert.Nil(t, stock[0].Stock)
	assert.False(t, stock[0].HadInitialValue)
}

// TestStockDualModeLookup verifies the typed/untyped matching: an exact
// stock-type match wins, and an absent type on either side falls back to the
// legacy untyped cell instead of creating a duplicate pool.
func TestStockDualModeLookup(t *testing.T) {
	t.Run("typed entries stay separate", func(t *testing.T) {
		s, id := sessionWithOneVariation(t)
		typeA, typeB := int64(1), int64(2)

		s.UpdateStock(id, 1, "5", &typeA)
		s.UpdateStock(id, 1, "9", &typeB)

		stock := s.Variations()[0].Stock
		require.Len(t, stock, 2)

		v := s.Variations()[0]
		assert.Equal(t, 5.0, *StockForType(v, 1, &typeA))
		assert.Equal(t, 9.0, *StockForType(v, 1, &typeB))
	})

	t.Run("untyped caller matches legacy cell", func(t *testing.T) {
		s, id := sessionWithOneVariation(t)

		s.UpdateStock(id, 1, "5", nil) // legacy untyped cell
		s.UpdateStock(id, 1, "8", nil) // must update the same cell

		stock := s.Variations()[0].Stock
		require.Len(t, stock, 1)
		assert.Equal(t, 8.0, *stock[0].Stock)
	})

	t.Run("typed caller falls back to untyped cell", func(t *testing.T) {
		s, id := sessionWithOneVariation(t)
		typeA := int64(1)

		s.UpdateStock(id, 1, "5", nil)
		s.UpdateStock(id, 1, "7", &typeA)

		stock := s.Variations()[0].Stock
		require.Len(t, stock, 1, "fallback matched the untyped cell")
		assert.Equal(t, 7.0, *stock[0].Stock)
	})

	t.Run("different warehouses never match", func(t *testing.T) {
		s, id := sessionWithOneVariation(t)

		s.UpdateStock(id, 1, "5", nil)
		s.UpdateStock(id, 2, "6", nil)

		require.Len(t, s.Variations()[0].Stock, 2)
	})
}

// TestStockForTypeUnsetIsNil verifies the read accessor returns nil for
// unknown cells; a nil renders blank, not zero.
func TestStockForTypeUnsetIsNil(t *testing.T) {
	s, _ := sessionWithOneVariation(t)
	v := s.Variations()[0]

	assert.Nil(t, StockForType(v, 42, nil))

	typeID := int64(3)
	assert.Nil(t, StockForType(v, 42, &typeID))
}

func ptr(f float64) *float64 { return &f }
