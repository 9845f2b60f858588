// Package variants implements the variant combination engine for configurable
// products: term selection, deterministic Cartesian combination generation,
// reconciliation of generated combinations against persisted variations, the
// per-price-list / per-warehouse value matrix, and preparation of the final
// create/update payload.
//
// Everything in this package is pure and synchronous. Numeric inputs originate
// from free-text form fields that may be transiently invalid while the user is
// typing, so parse failures coerce to safe defaults (0, nil, empty) instead of
// returning errors.
package variants

import (
	"sort"
	"strconv"
	"strings"
)

// TermGroup is a product attribute axis such as "Color" or "Talla".
// Loaded read-only at form initialization and never mutated here.
type TermGroup struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Term is a concrete value within a TermGroup, e.g. "Rojo".
type Term struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	TermGroupID int64  `json:"term_group_id"`
	Active      bool   `json:"active"`
}

// PriceList is a named price tier against which every variation carries an
// independent price.
type PriceList struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Warehouse is a stock location.
type Warehouse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	BranchID int64  `json:"branch_id"`
}

// StockType is a named inventory bucket (e.g. "Producción" vs "Reservado")
// under which warehouse stock is tracked separately. A nil StockTypeID on a
// stock entry marks legacy untyped stock.
type StockType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Attribute is one (term group, term) pair of a variation's combination.
type Attribute struct {
	TermGroupID int64 `json:"term_group_id"`
	TermID      int64 `json:"term_id"`
}

// Price is the editable per-price-list price pair of a variation.
// SalePrice nil means "no sale price", which is distinct from 0 until
// submission normalization collapses both to null.
type Price struct {
	PriceListID int64    `json:"price_list_id"`
	Price       float64  `json:"price"`
	SalePrice   *float64 `json:"sale_price"`
}

// Stock is a sparse per-warehouse stock cell. An entry exists only where a
// value was loaded or entered. Stock nil means "unset" and renders blank, not
// zero. HadInitialValue distinguishes "explicitly cleared" from "never
// touched": once a warehouse has ever held a real value for a variation the
// entry is always transmitted, even if later cleared, so that a deliberate
// "clear to nothing" reaches the backend instead of reading as "no opinion".
type Stock struct {
	WarehouseID     int64    `json:"warehouse_id"`
	Stock           *float64 `json:"stock"`
	StockTypeID     *int64   `json:"stock_type_id"`
	HadInitialValue bool     `json:"-"`
}

// Variation is one SKU-level entity, either generated in memory or loaded from
// persisted data. IDs are opaque strings; persisted variations carry the
// "var_" prefix, freshly generated combinations the "tmp_" prefix. An empty
// attribute list signals the single implicit variation of a non-variable
// product.
type Variation struct {
	ID             string      `json:"id"`
	Attributes     []Attribute `json:"attributes"`
	Prices         []Price     `json:"prices"`
	Stock          []Stock     `json:"stock"`
	SelectedImages []string    `json:"selectedImages"`
}

// ProductImage is a catalog image in the product's gallery. Order is a dense
// 0-based rank; reordering re-ranks the whole list. For persisted images Preview
// holds the previously issued display URL; for new uploads Path holds the
// storage key. The asymmetry matters at submission time (see BuildImageRefs).
type ProductImage struct {
	ID        string `json:"id"`
	Path      string `json:"path"`
	Preview   string `json:"preview"`
	Order     int    `json:"order"`
	Persisted bool   `json:"-"`
}

// Signature returns the normalized attribute signature of a combination:
// "group:term" pairs sorted lexicographically and joined with "|". Two
// variations whose attribute sets are set-equal produce the same signature
// regardless of listing order. The signature is the uniqueness contract for
// the active variation set.
func Signature(attrs []Attribute) string {
	pairs := make([]string, len(attrs))
	for i, a := range attrs {
		pairs[i] = strconv.FormatInt(a.TermGroupID, 10) + ":" + strconv.FormatInt(a.TermID, 10)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "|")
}

// HasValues reports whether the variation carries non-trivial entered data:
// any price above zero or any stock entry above zero. Used by the synchronizer
// to decide whether regeneration would destroy user input.
func (v *Variation) HasValues() bool {
	for _, p := range v.Prices {
		if p.Price > 0 {
			return true
		}
		if p.SalePrice != nil && *p.SalePrice > 0 {
			return true
		}
	}
	for _, s := range v.Stock {
		if s.Stock != nil && *s.Stock > 0 {
			return true
		}
	}
	return false
}
