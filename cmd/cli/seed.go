package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/almatienda/catalog-service/internal/database"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed reference data into an empty catalog",
	Long: `Seed the reference tables a working back office needs: attribute axes with
their terms, price lists, branches with warehouses, stock types, sales
channels, a category tree, payment methods and user roles.

Seeding is idempotent: rows that already exist (matched by name) are left
untouched, so it is safe to run against a partially populated database.`,
	Example: `  catalog-service seed`,
	Args:    cobra.NoArgs,
	RunE:    runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type seedTermGroup struct {
	name  string
	terms []string
}

var seedData = struct {
	termGroups     []seedTermGroup
	priceLists     []string
	branches       []string
	warehouses     []string // all attached to the first branch
	stockTypes     []string
	channels       []string
	categories     map[string][]string // root -> children
	paymentMethods []string
	roles          []string
}{
	termGroups: []seedTermGroup{
		{name: "Color", terms: []string{"Rojo", "Azul", "Negro", "Blanco"}},
		{name: "Talla", terms: []string{"XS", "S", "M", "L", "XL"}},
	},
	priceLists: []string{"General", "Mayorista"},
	branches:   []string{"Casa Central"},
	warehouses: []string{"Depósito Central", "Salón"},
	stockTypes: []string{"Disponible", "Reservado"},
	channels:   []string{"Tienda", "Web"},
	categories: map[string][]string{
		"Ropa":       {"Camisetas", "Pantalones"},
		"Accesorios": nil,
	},
	paymentMethods: []string{"Efectivo", "Tarjeta", "Transferencia"},
	roles:          []string{"admin", "editor", "viewer"},
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	pool := database.Pool()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := 0

	for _, group := range seedData.termGroups {
		groupID, created, err := ensureRow(ctx, tx,
			`SELECT id FROM term_groups WHERE name = $1`,
			`INSERT INTO term_groups (name, is_active) VALUES ($1, true) RETURNING id`,
			group.name)
		if err != nil {
			return err
		}
		if created {
			inserted++
		}
		for _, term := range group.terms {
			_, created, err := ensureChildRow(ctx, tx,
				`SELECT id FROM terms WHERE term_group_id = $1 AND name = $2`,
				`INSERT INTO terms (term_group_id, name, is_active) VALUES ($1, $2, true) RETURNING id`,
				groupID, term)
			if err != nil {
				return err
			}
			if created {
				inserted++
			}
		}
	}

	for _, name := range seedData.priceLists {
		_, created, err := ensureRow(ctx, tx,
			`SELECT id FROM price_lists WHERE name = $1`,
			`INSERT INTO price_lists (name, is_active) VALUES ($1, true) RETURNING id`,
			name)
		if err != nil {
			return err
		}
		if created {
			inserted++
		}
	}

	var branchID int64
	for i, name := range seedData.branches {
		id, created, err := ensureRow(ctx, tx,
			`SELECT id FROM branches WHERE name = $1`,
			`INSERT INTO branches (name, is_active) VALUES ($1, true) RETURNING id`,
			name)
		if err != nil {
			return err
		}
		if created {
			inserted++
		}
		if i == 0 {
			branchID = id
		}
	}

	for _, name := range seedData.warehouses {
		_, created, err := ensureChildRow(ctx, tx,
			`SELECT id FROM warehouses WHERE branch_id = $1 AND name = $2`,
			`INSERT INTO warehouses (branch_id, name, is_active) VALUES ($1, $2, true) RETURNING id`,
			branchID, name)
		if err != nil {
			return err
		}
		if created {
			inserted++
		}
	}

	for _, name := range seedData.stockTypes {
		_, created, err := ensureRow(ctx, tx,
			`SELECT id FROM stock_types WHERE name = $1`,
			`INSERT INTO stock_types (name) VALUES ($1) RETURNING id`,
			name)
		if err != nil {
			return err
		}
		if created {
			inserted++
		}
	}

	for _, name := range seedData.channels {
		_, created, err := ensureRow(ctx, tx,
			`SELECT id FROM channels WHERE name = $1`,
			`INSERT INTO channels (name, is_active) VALUES ($1, true) RETURNING id`,
			name)
		if err != nil {
			return err
		}
		if created {
			inserted++
		}
	}

	for root, children := range seedData.categories {
		rootID, created, err := ensureRow(ctx, tx,
			`SELECT id FROM categories WHERE name = $1 AND parent_id IS NULL`,
			`INSERT INTO categories (name, is_active, created_at) VALUES ($1, true, NOW()) RETURNING id`,
			root)
		if err != nil {
			return err
		}
		if created {
			inserted++
		}
		for _, child := range children {
			_, created, err := ensureChildRow(ctx, tx,
				`SELECT id FROM categories WHERE parent_id = $1 AND name = $2`,
				`INSERT INTO categories (parent_id, name, is_active, created_at) VALUES ($1, $2, true, NOW()) RETURNING id`,
				rootID, child)
			if err != nil {
				return err
			}
			if created {
				inserted++
			}
		}
	}

	for _, name := range seedData.paymentMethods {
		_, created, err := ensureRow(ctx, tx,
			`SELECT id FROM payment_methods WHERE name = $1`,
			`INSERT INTO payment_methods (name, is_active) VALUES ($1, true) RETURNING id`,
			name)
		if err != nil {
			return err
		}
		if created {
			inserted++
		}
	}

	for _, name := range seedData.roles {
		_, created, err := ensureRow(ctx, tx,
			`SELECT id FROM roles WHERE name = $1`,
			`INSERT INTO roles (name) VALUES ($1) RETURNING id`,
			name)
		if err != nil {
			return err
		}
		if created {
			inserted++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info().Int("inserted", inserted).Msg("Reference data seeded")
	return nil
}

// ensureRow finds a row by name or inserts it, returning its id and whether
// it was created.
func ensureRow(ctx context.Context, tx pgx.Tx, selectSQL, insertSQL string, name string) (int64, bool, error) {
	var id int64
	err := tx.QueryRow(ctx, selectSQL, name).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if err != pgx.ErrNoRows {
		return 0, false, fmt.Errorf("failed to look up %q: %w", name, err)
	}

	if err := tx.QueryRow(ctx, insertSQL, name).Scan(&id); err != nil {
		return 0, false, fmt.Errorf("failed to insert %q: %w", name, err)
	}
	return id, true, nil
}

// ensureChildRow is ensureRow for rows scoped under a parent id.
func ensureChildRow(ctx context.Context, tx pgx.Tx, selectSQL, insertSQL string, parentID int64, name string) (int64, bool, error) {
	var id int64
	err := tx.QueryRow(ctx, selectSQL, parentID, name).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if err != pgx.ErrNoRows {
		return 0, false, fmt.Errorf("failed to look up %q: %w", name, err)
	}

	if err := tx.QueryRow(ctx, insertSQL, parentID, name).Scan(&id); err != nil {
		return 0, false, fmt.Errorf("failed to insert %q: %w", name, err)
	}
	return id, true, nil
}
