package database

import (
	"time"
)

// Product is a catalog product. Variable products own a set of variations;
// non-variable products keep a single implicit variation with no attributes.
type Product struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	ShortDescription *string   `json:"short_description"`
	Description      *string   `json:"description"`
	IsVariable       bool      `json:"is_variable"`
	IsActive         bool      `json:"is_active"`
	IsWeb            bool      `json:"is_web"`
	Cost             *float64  `json:"cost"` // last entered unit cost
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Category is a node in the category tree. ParentID nil marks a root.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ParentID  *int64    `json:"parent_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// TermGroup is an attribute axis (Color, Talla, ...).
type TermGroup struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// Term is a value within a term group.
type Term struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	TermGroupID int64  `json:"term_group_id"`
	IsActive    bool   `json:"is_active"`
}

// PriceList is a named price tier (General, Mayorista, ...).
type PriceList struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// Warehouse is a stock location, attached to a branch.
type Warehouse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	BranchID int64  `json:"branch_id"`
	IsActive bool   `json:"is_active"`
}

// StockType is an inventory bucket under which warehouse stock is tracked
// separately. Stock rows with a NULL stock_type_id are legacy untyped stock.
type StockType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Branch is a physical location of the organization.
type Branch struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Address  *string `json:"address"`
	IsActive bool    `json:"is_active"`
}

// Channel is a sales channel a product can be published to (web shop,
// point of sale, marketplace).
type Channel struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// PaymentMethod is an accepted payment option.
type PaymentMethod struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// Role groups permissions for back-office users.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User is a back-office user.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	RoleID    int64     `json:"role_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductImage is a gallery image of a product. StoragePath is the storage
// key the file was uploaded under; PublicURL is the issued display URL.
// SortOrder is a dense 0-based rank.
type ProductImage struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	StoragePath string    `json:"storage_path"`
	PublicURL   string    `json:"public_url"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

// Variation is a persisted SKU of a product.
type Variation struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	SKU       *string   `json:"sku"`
	CreatedAt time.Time `json:"created_at"`
}

// VariationAttribute is one (term group, term) pair of a variation.
type VariationAttribute struct {
	VariationID int64 `json:"variation_id"`
	TermGroupID int64 `json:"term_group_id"`
	TermID      int64 `json:"term_id"`
}

// VariationPrice is the price of a variation on one price list. SalePrice
// NULL means no sale; a zero sale price is never stored.
type VariationPrice struct {
	VariationID int64    `json:"variation_id"`
	PriceListID int64    `json:"price_list_id"`
	Price       float64  `json:"price"`
	SalePrice   *float64 `json:"sale_price"`
}

// VariationStock is a sparse stock cell: a row exists only where a value was
// explicitly entered. StockTypeID NULL marks legacy untyped stock.
type VariationStock struct {
	VariationID int64   `json:"variation_id"`
	WarehouseID int64   `json:"warehouse_id"`
	Stock       float64 `json:"stock"`
	StockTypeID *int64  `json:"stock_type_id"`
}
