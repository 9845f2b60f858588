package variants

import (
	"strconv"
	"strings"
)

// PriceField selects which price cell an update targets.
type PriceField int

const (
	FieldPrice PriceField = iota
	FieldSalePrice
)

// UpdatePrice writes a raw form value into a variation's price cell.
//
// An empty or non-numeric value resolves to 0 for the price and to nil for
// the sale price ("no sale price", distinct from 0). This never fails: the
// raw value comes from a free-text field that may be mid-edit.
func (s *Synchronizer) UpdatePrice(variationID string, priceListID int64, field PriceField, raw string) {
	v := s.findVariation(variationID)
	if v == nil {
		return
	}
	for i := range v.Prices {
		if v.Prices[i].PriceListID != priceListID {
			continue
		}
		switch field {
		case FieldPrice:
			v.Prices[i].Price = parseAmount(raw)
		case FieldSalePrice:
			v.Prices[i].SalePrice = parseOptionalAmount(raw)
		}
		return
	}
	// No cell for this price list yet (reference data arrived after the
	// variation was built); create it.
	p := Price{PriceListID: priceListID}
	switch field {
	case FieldPrice:
		p.Price = parseAmount(raw)
	case FieldSalePrice:
		p.SalePrice = parseOptionalAmount(raw)
	}
	v.Prices = append(v.Prices, p)
}

// UpdateStock writes a raw form value into the stock cell for
// (warehouseID, stockTypeID). Stock entries are sparse: the cell is created
// on first write.
//
// The lookup matches an exact (warehouse, stock type) pair, and falls back to
// treating an absent stock type on either side as a wildcard so that legacy
// untyped stock keeps resolving to the same cell. Changing this would
// silently split previously merged inventory pools.
//
// Clearing the value stores "unset", not zero. HadInitialValue stays true
// once the cell has ever held a real value, so a deliberate clear is still
// transmitted at submission instead of being dropped as "never touched".
func (s *Synchronizer) UpdateStock(variationID string, warehouseID int64, raw string, stockTypeID *int64) {
	v := s.findVariation(variationID)
	if v == nil {
		return
	}

	entry := findStock(v, warehouseID, stockTypeID)
	if entry == nil {
		v.Stock = append(v.Stock, Stock{WarehouseID: warehouseID, StockTypeID: stockTypeID})
		entry = &v.Stock[len(v.Stock)-1]
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		entry.Stock = nil
		return
	}
	value := parseAmount(trimmed)
	entry.Stock = &value
	entry.HadInitialValue = true
}

// StockForType reads the stock value for (warehouseID, stockTypeID) with the
// same dual-mode lookup as UpdateStock. Nil means unset and renders blank,
// never zero.
func StockForType(v *Variation, warehouseID int64, stockTypeID *int64) *float64 {
	entry := findStock(v, warehouseID, stockTypeID)
	if entry == nil {
		return nil
	}
	return entry.Stock
}

// findStock locates the stock cell for (warehouseID, stockTypeID). An exact
// stock-type match wins; otherwise an entry whose stock type is absent (or a
// caller that did not specify one) matches as the legacy untyped cell.
func findStock(v *Variation, warehouseID int64, stockTypeID *int64) *Stock {
	var fallback *Stock
	for i := range v.Stock {
		entry := &v.Stock[i]
		if entry.WarehouseID != warehouseID {
			continue
		}
		switch {
		case entry.StockTypeID == nil && stockTypeID == nil:
			return entry
		case entry.StockTypeID != nil && stockTypeID != nil && *entry.StockTypeID == *stockTypeID:
			return entry
		case entry.StockTypeID == nil || stockTypeID == nil:
			if fallback == nil {
				fallback = entry
			}
		}
	}
	return fallback
}

// findVariation resolves a variation by its opaque id. Unknown ids are a
// no-op upstream.
func (s *Synchronizer) findVariation(id string) *Variation {
	for _, v := range s.variations {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// parseAmount parses a free-text numeric field, defaulting to 0 on empty or
// unparseable input.
func parseAmount(raw string) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return value
}

// parseOptionalAmount parses a free-text numeric field where absence is
// meaningful: empty or unparseable input yields nil rather than 0.
func parseOptionalAmount(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &value
}
