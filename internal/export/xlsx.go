// Package export renders the catalog into an XLSX workbook for back-office
// download: one sheet of products, one sheet of variations with a price
// column per price list and a stock column per warehouse.
package export

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/almatienda/catalog-service/internal/database"
)

const (
	productsSheet   = "Productos"
	variationsSheet = "Variaciones"
)

// WriteCatalog builds the export workbook and returns its bytes.
func WriteCatalog(products []database.ProductDetail, ref *database.ReferenceData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", productsSheet)
	if _, err := f.NewSheet(variationsSheet); err != nil {
		return nil, fmt.Errorf("failed to create variations sheet: %w", err)
	}

	if err := writeProductsSheet(f, products); err != nil {
		return nil, err
	}
	if err := writeVariationsSheet(f, products, ref); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	log.Debug().Int("products", len(products)).Msg("Catalog workbook written")
	return buf.Bytes(), nil
}

func writeProductsSheet(f *excelize.File, products []database.ProductDetail) error {
	headers := []interface{}{"ID", "Nombre", "Variable", "Activo", "Web", "Costo", "Variaciones", "Imágenes"}
	if err := f.SetSheetRow(productsSheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write product headers: %w", err)
	}

	for i, p := range products {
		cost := ""
		if p.Product.Cost != nil {
			cost = fmt.Sprintf("%.2f", *p.Product.Cost)
		}
		row := []interface{}{
			p.Product.ID,
			p.Product.Name,
			boolCell(p.Product.IsVariable),
			boolCell(p.Product.IsActive),
			boolCell(p.Product.IsWeb),
			cost,
			len(p.Variations),
			len(p.Images),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(productsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write product row: %w", err)
		}
	}
	return nil
}

func writeVariationsSheet(f *excelize.File, products []database.ProductDetail, ref *database.ReferenceData) error {
	termNames := make(map[int64]string, len(ref.Terms))
	for _, t := range ref.Terms {
		termNames[t.ID] = t.Name
	}
	groupNames := make(map[int64]string, len(ref.TermGroups))
	for _, g := range ref.TermGroups {
		groupNames[g.ID] = g.Name
	}
	warehouseNames := make(map[int64]string, len(ref.Warehouses))
	for _, w := range ref.Warehouses {
		warehouseNames[w.ID] = w.Name
	}

	headers := []interface{}{"Producto", "SKU", "Atributos"}
	for _, pl := range ref.PriceLists {
		headers = append(headers, "Precio "+pl.Name, "Oferta "+pl.Name)
	}
	for _, w := range ref.Warehouses {
		headers = append(headers, "Stock "+w.Name)
	}
	if err := f.SetSheetRow(variationsSheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write variation headers: %w", err)
	}

	rowIdx := 2
	for _, p := range products {
		for _, v := range p.Variations {
			row := []interface{}{p.Product.Name, skuCell(v), attributesCell(v, groupNames, termNames)}

			prices := make(map[int64]database.VariationPrice, len(v.Prices))
			for _, price := range v.Prices {
				prices[price.PriceListID] = price
			}
			for _, pl := range ref.PriceLists {
				price, ok := prices[pl.ID]
				if !ok {
					row = append(row, "", "")
					continue
				}
				sale := ""
				if price.SalePrice != nil {
					sale = fmt.Sprintf("%.2f", *price.SalePrice)
				}
				row = append(row, price.Price, sale)
			}

			// Stock cells sum across stock types per warehouse; absent rows
			// stay blank rather than zero.
			stockByWarehouse := make(map[int64]float64, len(v.Stock))
			hasStock := make(map[int64]bool, len(v.Stock))
			for _, s := range v.Stock {
				stockByWarehouse[s.WarehouseID] += s.Stock
				hasStock[s.WarehouseID] = true
			}
			for _, w := range ref.Warehouses {
				if !hasStock[w.ID] {
					row = append(row, "")
					continue
				}
				row = append(row, stockByWarehouse[w.ID])
			}

			cell := fmt.Sprintf("A%d", rowIdx)
			if err := f.SetSheetRow(variationsSheet, cell, &row); err != nil {
				return fmt.Errorf("failed to write variation row: %w", err)
			}
			rowIdx++
		}
	}
	return nil
}

func skuCell(v database.VariationDetail) string {
	if v.Variation.SKU == nil {
		return ""
	}
	return *v.Variation.SKU
}

func attributesCell(v database.VariationDetail, groupNames, termNames map[int64]string) string {
	if len(v.Attributes) == 0 {
		return ""
	}
	parts := make([]string, len(v.Attributes))
	for i, a := range v.Attributes {
		parts[i] = groupNames[a.TermGroupID] + ": " + termNames[a.TermID]
	}
	return strings.Join(parts, ", ")
}

func boolCell(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
