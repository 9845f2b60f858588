package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/almatienda/catalog-service/internal/database"
)

func testRef() *database.ReferenceData {
	return &database.ReferenceData{
		TermGroups: []database.TermGroup{{ID: 1, Name: "Color"}},
		Terms:      []database.Term{{ID: 10, Name: "Rojo", TermGroupID: 1}},
		PriceLists: []database.PriceList{
			{ID: 1, Name: "General"},
			{ID: 2, Name: "Mayorista"},
		},
		Warehouses: []database.Warehouse{{ID: 1, Name: "Central", BranchID: 1}},
	}
}

func testProducts() []database.ProductDetail {
	sku := "CAMISETA-ROJO"
	sale := 9.5
	return []database.ProductDetail{
		{
			Product: database.Product{ID: 7, Name: "Camiseta", IsVariable: true, IsActive: true},
			Variations: []database.VariationDetail{
				{
					Variation:  database.Variation{ID: 100, ProductID: 7, SKU: &sku},
					Attributes: []database.VariationAttribute{{VariationID: 100, TermGroupID: 1, TermID: 10}},
					Prices: []database.VariationPrice{
						{VariationID: 100, PriceListID: 1, Price: 12.5, SalePrice: &sale},
					},
					Stock: []database.VariationStock{
						{VariationID: 100, WarehouseID: 1, Stock: 4},
					},
				},
			},
		},
	}
}

func TestWriteCatalogSheets(t *testing.T) {
	content, err := WriteCatalog(testProducts(), testRef())
	require.NoError(t, err)
	require.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Productos", "Variaciones"}, f.GetSheetList())
}

func TestWriteCatalogVariationRow(t *testing.T) {
	content, err := WriteCatalog(testProducts(), testRef())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Variaciones")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"Producto", "SKU", "Atributos",
		"Precio General", "Oferta General",
		"Precio Mayorista", "Oferta Mayorista",
		"Stock Central",
	}, rows[0])

	row := rows[1]
	require.Len(t, row, 8)
	assert.Equal(t, "Camiseta", row[0])
	assert.Equal(t, "CAMISETA-ROJO", row[1])
	assert.Equal(t, "Color: Rojo", row[2])
	assert.Equal(t, "12.5", row[3])
	assert.Equal(t, "9.50", row[4])
	assert.Empty(t, row[5], "no price on the second list stays blank")
	assert.Equal(t, "4", row[7])
}

func TestWriteCatalogEmpty(t *testing.T) {
	content, err := WriteCatalog(nil, testRef())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Productos")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "headers only")
}
