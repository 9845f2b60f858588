package variants

import "github.com/almatienda/catalog-service/internal/pkg/ident"

// Combine returns the Cartesian product of the selected terms: one attribute
// list per combination, one term per input group, group order preserved.
//
// Zero groups yield no combinations. The output order is fully determined by
// the input order: for each term of the first group, every combination of the
// remaining groups is emitted before moving to the next term.
func Combine(groups []GroupTerms) [][]Attribute {
	if len(groups) == 0 {
		return nil
	}

	head := groups[0]
	rest := Combine(groups[1:])

	var out [][]Attribute
	for _, termID := range head.TermIDs {
		attr := Attribute{TermGroupID: head.GroupID, TermID: termID}
		if len(rest) == 0 {
			out = append(out, []Attribute{attr})
			continue
		}
		for _, tail := range rest {
			combo := make([]Attribute, 0, len(tail)+1)
			combo = append(combo, attr)
			combo = append(combo, tail...)
			out = append(out, combo)
		}
	}
	return out
}

// NewDraftVariation builds an in-memory variation for a freshly generated
// combination, seeded with one zero price per known price list and no stock
// entries. Stock cells are sparse and only appear once a value is entered.
func NewDraftVariation(attrs []Attribute, priceLists []PriceList) *Variation {
	prices := make([]Price, len(priceLists))
	for i, pl := range priceLists {
		prices[i] = Price{PriceListID: pl.ID}
	}
	return &Variation{
		ID:         ident.New(ident.PrefixDraft),
		Attributes: attrs,
		Prices:     prices,
	}
}

// NewImplicitVariation builds the single synthetic variation of a non-variable
// product: empty attributes, one default price per price list and one unset
// stock cell per warehouse. The unset stock cells never reach submission
// unless a value is entered.
func NewImplicitVariation(priceLists []PriceList, warehouses []Warehouse) *Variation {
	v := NewDraftVariation(nil, priceLists)
	v.Stock = make([]Stock, len(warehouses))
	for i, w := range warehouses {
		v.Stock[i] = Stock{WarehouseID: w.ID}
	}
	return v
}
