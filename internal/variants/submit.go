package variants

import "sort"

// NormalizedPrice is the wire shape of a variation price after submission
// normalization. SalePrice is explicitly null when absent or zero: a sale
// price of exactly 0 means "no sale", not "free".
type NormalizedPrice struct {
	PriceListID int64    `json:"price_list_id"`
	Price       float64  `json:"price"`
	SalePrice   *float64 `json:"sale_price"`
}

// NormalizedStock is a transmitted stock cell. Only explicitly valued
// (warehouse, stock type) pairs are transmitted.
type NormalizedStock struct {
	WarehouseID int64   `json:"warehouse_id"`
	Stock       float64 `json:"stock"`
	StockTypeID *int64  `json:"stock_type_id"`
}

// NormalizedVariation is the wire shape the product write endpoint consumes.
type NormalizedVariation struct {
	ID         string            `json:"id"`
	Attributes []Attribute       `json:"attributes"`
	Prices     []NormalizedPrice `json:"prices"`
	Stock      []NormalizedStock `json:"stock"`
}

// ImageRef is one image reference in a write request. For new uploads Path is
// the storage key; for already-persisted images it is the previously issued
// display URL. The backend distinguishes the two on receipt, so the asymmetry
// must survive submission.
type ImageRef struct {
	ID    string `json:"id"`
	Path  string `json:"path"`
	Order int    `json:"order"`
}

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	ProductName        string                `json:"productName"`
	ShortDescription   string                `json:"shortDescription"`
	Description        string                `json:"description"`
	IsVariable         bool                  `json:"isVariable"`
	IsActive           bool                  `json:"isActive"`
	IsWeb              bool                  `json:"isWeb"`
	SelectedCategories []int64               `json:"selectedCategories"`
	SelectedChannels   []int64               `json:"selectedChannels"`
	ProductImages      []ImageRef            `json:"productImages"`
	Variations         []NormalizedVariation `json:"variations"`
}

// UpdateProductRequest extends the create payload with identity, the original
// variability flag for type-change validation, and the resetVariations flag
// taken from the synchronizer's dirty state.
type UpdateProductRequest struct {
	CreateProductRequest
	ProductID          int64 `json:"productId"`
	OriginalIsVariable bool  `json:"originalIsVariable"`
	ResetVariations    bool  `json:"resetVariations"`
}

// ProductForm is the in-memory edit state the preparer flattens into a
// request. It is a snapshot; the preparer never mutates it, so a failed
// submission can simply be retried.
type ProductForm struct {
	Name             string
	ShortDescription string
	Description      string
	Variable         bool
	Active           bool
	Web              bool
	Categories       []int64
	Channels         []int64
	Images           []ProductImage
	Variations       []*Variation
}

// NormalizeVariations applies the submission normalizations in order:
//
//  1. Slice: a variable product keeps only variations with a non-empty
//     attribute list; a non-variable product keeps at most the first
//     variation (one implicit SKU).
//  2. Dedupe: variations collapse on their attribute signature, keeping the
//     first occurrence and preserving relative order among survivors.
//  3. Normalize fields: prices default to 0, sale prices collapse to nil on
//     absent/zero, unvalued stock cells are dropped.
func NormalizeVariations(vars []*Variation, variable bool) []NormalizedVariation {
	var kept []*Variation
	if variable {
		for _, v := range vars {
			if len(v.Attributes) > 0 {
				kept = append(kept, v)
			}
		}
	} else if len(vars) > 0 {
		kept = vars[:1]
	}

	seen := make(map[string]bool, len(kept))
	out := make([]NormalizedVariation, 0, len(kept))
	for _, v := range kept {
		sig := Signature(v.Attributes)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		out = append(out, normalizeVariation(v))
	}
	return out
}

func normalizeVariation(v *Variation) NormalizedVariation {
	prices := make([]NormalizedPrice, len(v.Prices))
	for i, p := range v.Prices {
		prices[i] = NormalizedPrice{
			PriceListID: p.PriceListID,
			Price:       p.Price,
			SalePrice:   normalizeSalePrice(p.SalePrice),
		}
	}

	stock := make([]NormalizedStock, 0, len(v.Stock))
	for _, s := range v.Stock {
		if s.Stock == nil && !s.HadInitialValue {
			continue
		}
		value := 0.0
		if s.Stock != nil {
			value = *s.Stock
		}
		stock = append(stock, NormalizedStock{
			WarehouseID: s.WarehouseID,
			Stock:       value,
			StockTypeID: s.StockTypeID,
		})
	}

	return NormalizedVariation{
		ID:         v.ID,
		Attributes: v.Attributes,
		Prices:     prices,
		Stock:      stock,
	}
}

// normalizeSalePrice collapses absent and zero to nil.
func normalizeSalePrice(p *float64) *float64 {
	if p == nil || *p == 0 {
		return nil
	}
	v := *p
	return &v
}

// BuildImageRefs sorts images by their order rank and produces write-request
// references, preserving the persisted-URL / new-path asymmetry.
func BuildImageRefs(images []ProductImage) []ImageRef {
	sorted := make([]ProductImage, len(images))
	copy(sorted, images)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	refs := make([]ImageRef, len(sorted))
	for i, img := range sorted {
		path := img.Path
		if img.Persisted {
			path = img.Preview
		}
		refs[i] = ImageRef{ID: img.ID, Path: path, Order: img.Order}
	}
	return refs
}

// PrepareCreate flattens the form into a create request.
func PrepareCreate(form ProductForm) CreateProductRequest {
	return CreateProductRequest{
		ProductName:        form.Name,
		ShortDescription:   form.ShortDescription,
		Description:        form.Description,
		IsVariable:         form.Variable,
		IsActive:           form.Active,
		IsWeb:              form.Web,
		SelectedCategories: form.Categories,
		SelectedChannels:   form.Channels,
		ProductImages:      BuildImageRefs(form.Images),
		Variations:         NormalizeVariations(form.Variations, form.Variable),
	}
}

// PrepareUpdate flattens the form into an update request. resetVariations
// should be the synchronizer's dirty flag: it tells the backend to discard
// and recreate the persisted variation set.
func PrepareUpdate(form ProductForm, productID int64, originalVariable, resetVariations bool) UpdateProductRequest {
	return UpdateProductRequest{
		CreateProductRequest: PrepareCreate(form),
		ProductID:            productID,
		OriginalIsVariable:   originalVariable,
		ResetVariations:      resetVariations,
	}
}
