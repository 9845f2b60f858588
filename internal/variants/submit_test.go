package variants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNormalizeDeduplicates verifies that variations with set-equal attribute
// lists in different order collapse to one entry, keeping the first
// occurrence and the relative order of survivors.
func TestNormalizeDeduplicates(t *testing.T) {
	vars := []*Variation{
		{ID: "tmp_a", Attributes: []Attribute{{1, 10}, {2, 20}}},
		{ID: "tmp_b", Attributes: []Attribute{{2, 20}, {1, 10}}}, // same set, different order
		{ID: "tmp_c", Attributes: []Attribute{{1, 11}, {2, 20}}},
	}

	out := NormalizeVariations(vars, true)
	require.Len(t, out, 2)
	assert.Equal(t, "tmp_a", out[0].ID, "first occurrence wins")
	assert.Equal(t, "tmp_c", out[1].ID, "survivor order preserved")
}

// TestNormalizeSlicesVariable verifies that a variable product drops
// variations with empty attribute lists.
func TestNormalizeSlicesVariable(t *testing.T) {
	vars := []*Variation{
		{ID: "tmp_a"},
		{ID: "tmp_b", Attributes: []Attribute{{1, 10}}},
	}

	out := NormalizeVariations(vars, true)
	require.Len(t, out, 1)
	assert.Equal(t, "tmp_b", out[0].ID)
}

// TestNormalizeTruncatesNonVariable verifies that a non-variable product
// submits at most one variation, regardless of how many were in memory.
func TestNormalizeTruncatesNonVariable(t *testing.T) {
	vars := []*Variation{
		{ID: "tmp_a"},
		{ID: "tmp_b", Attributes: []Attribute{{1, 10}}},
		{ID: "tmp_c"},
	}

	out := NormalizeVariations(vars, false)
	require.Len(t, out, 1)
	assert.Equal(t, "tmp_a", out[0].ID)

	assert.Empty(t, NormalizeVariations(nil, false))
}

// TestSalePriceNormalization verifies the sale price wire rule: absent and
// zero both normalize to null ("no sale", not "free"); real values pass
// through.
func TestSalePriceNormalization(t *testing.T) {
	tests := []struct {
		name     string
		sale     *float64
		expected *float64
	}{
		{"absent", nil, nil},
		{"zero", ptr(0), nil},
		{"value", ptr(15.5), ptr(15.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Variation{
				ID:         "tmp_a",
				Attributes: []Attribute{{1, 10}},
				Prices:     []Price{{PriceListID: 1, Price: 10, SalePrice: tt.sale}},
			}
			out := NormalizeVariations([]*Variation{v}, true)
			require.Len(t, out, 1)
			require.Len(t, out[0].Prices, 1)
			if tt.expected == nil {
				assert.Nil(t, out[0].Prices[0].SalePrice)
			} else {
				require.NotNil(t, out[0].Prices[0].SalePrice)
				assert.Equal(t, *tt.expected, *out[0].Prices[0].SalePrice)
			}
		})
	}
}

// TestSalePriceRawInputNormalization covers the full raw-input path through
// the matrix editor into submission: "", "0" and garbage all end as null;
// "15.5" ends as 15.5.
func TestSalePriceRawInputNormalization(t *testing.T) {
	tests := []struct {
		raw      string
		expected *float64
	}{
		{"", nil},
		{"0", nil},
		{"garbage", nil},
		{"15.5", ptr(15.5)},
	}

	for _, tt := range tests {
		t.Run("raw="+tt.raw, func(t *testing.T) {
			s, id := sessionWithOneVariation(t)
			s.UpdatePrice(id, 1, FieldSalePrice, tt.raw)

			out := NormalizeVariations(s.Variations(), true)
			require.Len(t, out, 1)
			got := out[0].Prices[0].SalePrice
			if tt.expected == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.expected, *got)
			}
		})
	}
}

// TestSparseStockRule verifies the transmission contract: untouched cells
// never transmit; a cell that once held a value transmits even when cleared
// (as stock 0), and explicit zeros transmit as 0.
func TestSparseStockRule(t *testing.T) {
	typeID := int64(1)
	v := &Variation{
		ID:         "tmp_a",
		Attributes: []Attribute{{1, 10}},
		Prices:     []Price{{PriceListID: 1}},
		Stock: []Stock{
			{WarehouseID: 1, Stock: nil, HadInitialValue: false},          // never touched
			{WarehouseID: 2, Stock: ptr(0), HadInitialValue: true},        // explicit zero
			{WarehouseID: 3, Stock: nil, HadInitialValue: true},           // cleared after value
			{WarehouseID: 4, Stock: ptr(7), StockTypeID: &typeID, HadInitialValue: true},
		},
	}

	out := NormalizeVariations([]*Variation{v}, true)
	require.Len(t, out, 1)
	stock := out[0].Stock
	require.Len(t, stock, 3)

	assert.Equal(t, int64(2), stock[0].WarehouseID)
	assert.Zero(t, stock[0].Stock)

	assert.Equal(t, int64(3), stock[1].WarehouseID)
	assert.Zero(t, stock[1].Stock, "deliberate clear transmits as zero, not dropped")

	assert.Equal(t, int64(4), stock[2].WarehouseID)
	assert.Equal(t, 7.0, stock[2].Stock)
	require.NotNil(t, stock[2].StockTypeID)
	assert.Equal(t, typeID, *stock[2].StockTypeID)
}

// TestBuildImageRefs verifies order sorting and the persisted-URL vs
// new-path asymmetry.
func TestBuildImageRefs(t *testing.T) {
	images := []ProductImage{
		{ID: "img_2", Preview: "https://cdn.example.com/img_2.jpg", Order: 1, Persisted: true},
		{ID: "tmp_new", Path: "products/7/nuevo.jpg", Order: 0},
	}

	refs := BuildImageRefs(images)
	require.Len(t, refs, 2)

	assert.Equal(t, "tmp_new", refs[0].ID)
	assert.Equal(t, "products/7/nuevo.jpg", refs[0].Path, "new image references its storage path")
	assert.Equal(t, 0, refs[0].Order)

	assert.Equal(t, "img_2", refs[1].ID)
	assert.Equal(t, "https://cdn.example.com/img_2.jpg", refs[1].Path, "persisted image references its public URL")
	assert.Equal(t, 1, refs[1].Order)
}

// TestPrepareCreateAndUpdate verifies the two request shapes share all
// fields, with identity and reset flags only on update.
func TestPrepareCreateAndUpdate(t *testing.T) {
	form := ProductForm{
		Name:             "Camiseta",
		ShortDescription: "Camiseta de algodón",
		Description:      "Camiseta de algodón 100%",
		Variable:         true,
		Active:           true,
		Web:              true,
		Categories:       []int64{3, 5},
		Channels:         []int64{1},
		Images: []ProductImage{
			{ID: "img_1", Preview: "https://cdn.example.com/1.jpg", Order: 0, Persisted: true},
		},
		Variations: []*Variation{
			{ID: "tmp_a", Attributes: []Attribute{{1, 10}}, Prices: []Price{{PriceListID: 1, Price: 12}}},
		},
	}

	create := PrepareCreate(form)
	assert.Equal(t, "Camiseta", create.ProductName)
	assert.True(t, create.IsVariable)
	assert.Equal(t, []int64{3, 5}, create.SelectedCategories)
	require.Len(t, create.Variations, 1)
	require.Len(t, create.ProductImages, 1)

	update := PrepareUpdate(form, 77, false, true)
	assert.Equal(t, create, update.CreateProductRequest)
	assert.Equal(t, int64(77), update.ProductID)
	assert.False(t, update.OriginalIsVariable)
	assert.True(t, update.ResetVariations)
}

// TestPreparerIsRepeatable verifies that preparing a request does not mutate
// the form state: a failed submission can simply be prepared again.
func TestPreparerIsRepeatable(t *testing.T) {
	form := ProductForm{
		Name:     "Gorra",
		Variable: true,
		Variations: []*Variation{
			{ID: "tmp_a", Attributes: []Attribute{{1, 10}}, Prices: []Price{{PriceListID: 1, Price: 9.5}}},
			{ID: "tmp_b", Attributes: []Attribute{{1, 10}}}, // duplicate signature
		},
	}

	first := PrepareCreate(form)
	second := PrepareCreate(form)
	assert.Equal(t, first, second)
	assert.Len(t, form.Variations, 2, "form state untouched")
}
