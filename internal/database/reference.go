package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ReferenceData is the bundle of lookup entities the product editor needs:
// attribute axes with their terms, price tiers, stock locations and stock
// buckets. Loaded in one round of queries and cached by the refdata package.
type ReferenceData struct {
	TermGroups []TermGroup `json:"term_groups"`
	Terms      []Term      `json:"terms"`
	PriceLists []PriceList `json:"price_lists"`
	Warehouses []Warehouse `json:"warehouses"`
	StockTypes []StockType `json:"stock_types"`
}

// LoadReferenceData loads all active editor lookup entities.
func LoadReferenceData(ctx context.Context) (*ReferenceData, error) {
	var (
		ref ReferenceData
		err error
	)

	if ref.TermGroups, err = ListTermGroups(ctx, true); err != nil {
		return nil, err
	}
	if ref.Terms, err = ListTerms(ctx, 0); err != nil {
		return nil, err
	}
	if ref.PriceLists, err = ListPriceLists(ctx); err != nil {
		return nil, err
	}
	if ref.Warehouses, err = ListWarehouses(ctx); err != nil {
		return nil, err
	}
	if ref.StockTypes, err = ListStockTypes(ctx); err != nil {
		return nil, err
	}
	return &ref, nil
}

// ListTermGroups lists attribute axes, optionally only active ones.
func ListTermGroups(ctx context.Context, activeOnly bool) ([]TermGroup, error) {
	rows, err := Pool().Query(ctx, `
		SELECT id, name, is_active
		FROM term_groups
		WHERE NOT $1 OR is_active
		ORDER BY name
	`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("error querying term groups: %w", err)
	}
	defer rows.Close()

	groups := make([]TermGroup, 0)
	for rows.Next() {
		var g TermGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning term group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// ListTerms lists active terms, optionally restricted to one group
// (groupID 0 means all groups).
func ListTerms(ctx context.Context, groupID int64) ([]Term, error) {
	rows, err := Pool().Query(ctx, `
		SELECT id, name, term_group_id, is_active
		FROM terms
		WHERE is_active AND ($1 = 0 OR term_group_id = $1)
		ORDER BY term_group_id, name
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("error querying terms: %w", err)
	}
	defer rows.Close()

	terms := make([]Term, 0)
	for rows.Next() {
		var t Term
		if err := rows.Scan(&t.ID, &t.Name, &t.TermGroupID, &t.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning term: %w", err)
		}
		terms = append(terms, t)
	}
	return terms, nil
}

// CreateTermGroup inserts an attribute axis and returns it.
func CreateTermGroup(ctx context.Context, name string) (*TermGroup, error) {
	var g TermGroup
	err := Pool().QueryRow(ctx, `
		INSERT INTO term_groups (name, is_active) VALUES ($1, TRUE)
		RETURNING id, name, is_active
	`, name).Scan(&g.ID, &g.Name, &g.IsActive)
	if err != nil {
		return nil, fmt.Errorf("failed to insert term group: %w", err)
	}
	return &g, nil
}

// CreateTerm inserts a term under a group and returns it.
func CreateTerm(ctx context.Context, groupID int64, name string) (*Term, error) {
	var t Term
	err := Pool().QueryRow(ctx, `
		INSERT INTO terms (name, term_group_id, is_active) VALUES ($1, $2, TRUE)
		RETURNING id, name, term_group_id, is_active
	`, name, groupID).Scan(&t.ID, &t.Name, &t.TermGroupID, &t.IsActive)
	if err != nil {
		return nil, fmt.Errorf("failed to insert term: %w", err)
	}
	return &t, nil
}

// SetTermGroupActive flips an axis's active flag. Deactivated axes stay on
// persisted variations but disappear from the editor's selection list.
func SetTermGroupActive(ctx context.Context, groupID int64, active bool) error {
	tag, err := Pool().Exec(ctx, `UPDATE term_groups SET is_active = $1 WHERE id = $2`, active, groupID)
	if err != nil {
		return fmt.Errorf("failed to update term group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("term group not found: %d", groupID)
	}
	return nil
}

// ListPriceLists lists active price tiers.
func ListPriceLists(ctx context.Context) ([]PriceList, error) {
	rows, err := Pool().Query(ctx, `
		SELECT id, name, is_active FROM price_lists WHERE is_active ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying price lists: %w", err)
	}
	defer rows.Close()

	lists := make([]PriceList, 0)
	for rows.Next() {
		var l PriceList
		if err := rows.Scan(&l.ID, &l.Name, &l.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning price list: %w", err)
		}
		lists = append(lists, l)
	}
	return lists, nil
}

// ListWarehouses lists active warehouses with their branch.
func ListWarehouses(ctx context.Context) ([]Warehouse, error) {
	rows, err := Pool().Query(ctx, `
		SELECT id, name, branch_id, is_active FROM warehouses WHERE is_active ORDER BY branch_id, name
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying warehouses: %w", err)
	}
	defer rows.Close()

	warehouses := make([]Warehouse, 0)
	for rows.Next() {
		var w Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.BranchID, &w.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning warehouse: %w", err)
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, nil
}

// ListStockTypes lists inventory buckets.
func ListStockTypes(ctx context.Context) ([]StockType, error) {
	rows, err := Pool().Query(ctx, `SELECT id, name FROM stock_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying stock types: %w", err)
	}
	defer rows.Close()

	types := make([]StockType, 0)
	for rows.Next() {
		var st StockType
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, fmt.Errorf("error scanning stock type: %w", err)
		}
		types = append(types, st)
	}
	return types, nil
}

// ListCategories lists the category tree flat, parents before children.
func ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := Pool().Query(ctx, `
		SELECT id, name, parent_id, is_active, created_at
		FROM categories
		ORDER BY parent_id NULLS FIRST, name
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying categories: %w", err)
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, nil
}

// CreateCategory inserts a category, optionally under a parent.
func CreateCategory(ctx context.Context, name string, parentID *int64) (*Category, error) {
	if parentID != nil {
		var exists bool
		err := Pool().QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, *parentID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("error checking parent category: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("parent category not found: %d", *parentID)
		}
	}

	var c Category
	err := Pool().QueryRow(ctx, `
		INSERT INTO categories (name, parent_id, is_active, created_at)
		VALUES ($1, $2, TRUE, NOW())
		RETURNING id, name, parent_id, is_active, created_at
	`, name, parentID).Scan(&c.ID, &c.Name, &c.ParentID, &c.IsActive, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	return &c, nil
}

// ListChannels lists sales channels.
func ListChannels(ctx context.Context) ([]Channel, error) {
	rows, err := Pool().Query(ctx, `SELECT id, name, is_active FROM channels WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying channels: %w", err)
	}
	defer rows.Close()

	channels := make([]Channel, 0)
	for rows.Next() {
		var c Channel
		if err := rows.Scan(&c.ID, &c.Name, &c.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning channel: %w", err)
		}
		channels = append(channels, c)
	}
	return channels, nil
}

// ListBranches lists branches.
func ListBranches(ctx context.Context) ([]Branch, error) {
	rows, err := Pool().Query(ctx, `
		SELECT id, name, address, is_active FROM branches ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying branches: %w", err)
	}
	defer rows.Close()

	branches := make([]Branch, 0)
	for rows.Next() {
		var b Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning branch: %w", err)
		}
		branches = append(branches, b)
	}
	return branches, nil
}

// ListPaymentMethods lists payment methods.
func ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	rows, err := Pool().Query(ctx, `SELECT id, name, is_active FROM payment_methods ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying payment methods: %w", err)
	}
	defer rows.Close()

	methods := make([]PaymentMethod, 0)
	for rows.Next() {
		var m PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning payment method: %w", err)
		}
		methods = append(methods, m)
	}
	return methods, nil
}

// UserWithRole is a back-office user joined with its role name.
type UserWithRole struct {
	User
	RoleName string `json:"role_name"`
}

// ListUsers lists back-office users with their role.
func ListUsers(ctx context.Context) ([]UserWithRole, error) {
	rows, err := Pool().Query(ctx, `
		SELECT u.id, u.email, u.full_name, u.role_id, u.is_active, u.created_at, r.name
		FROM users u
		JOIN roles r ON r.id = u.role_id
		ORDER BY u.full_name
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := make([]UserWithRole, 0)
	for rows.Next() {
		var u UserWithRole
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.RoleID, &u.IsActive, &u.CreatedAt, &u.RoleName); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, nil
}

// ListRoles lists roles.
func ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := Pool().Query(ctx, `SELECT id, name FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying roles: %w", err)
	}
	defer rows.Close()

	roles := make([]Role, 0)
	for rows.Next() {
		var r Role
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("error scanning role: %w", err)
		}
		roles = append(roles, r)
	}
	return roles, nil
}

// GetUserByEmail loads one user by email for authentication checks.
func GetUserByEmail(ctx context.Context, email string) (*UserWithRole, error) {
	var u UserWithRole
	err := Pool().QueryRow(ctx, `
		SELECT u.id, u.email, u.full_name, u.role_id, u.is_active, u.created_at, r.name
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.email = $1
	`, email).Scan(&u.ID, &u.Email, &u.FullName, &u.RoleID, &u.IsActive, &u.CreatedAt, &u.RoleName)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("user not found: %s", email)
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return &u, nil
}
