package e2e

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/almatienda/catalog-service/internal/database"
	"github.com/almatienda/catalog-service/internal/pkg/ident"
	"github.com/almatienda/catalog-service/internal/storage"
	"github.com/almatienda/catalog-service/internal/variants"
)

// TestE2EProductLifecycle exercises the product write paths end-to-end
// against a real Postgres: create, read back, in-place update, destructive
// regeneration, and delete.
func TestE2EProductLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	ctx := context.Background()

	postgresContainer, err := setupTestDatabase(ctx)
	require.NoError(t, err)
	defer postgresContainer.Terminate(ctx)

	connStr, err := postgresContainer.ConnectionString(ctx)
	require.NoError(t, err)

	require.NoError(t, database.Connect(ctx, connStr, 10, 2, 0, 0))
	defer database.Close()

	setupTestSchema(ctx, t)
	ref := seedReferenceRows(ctx, t)

	var productID int64
	var firstVariationID int64

	t.Run("Create", func(t *testing.T) {
		write := database.ProductWrite{
			Request: variants.CreateProductRequest{
				ProductName:        "Camiseta",
				ShortDescription:   "Camiseta de algodón",
				IsVariable:         true,
				IsActive:           true,
				SelectedCategories: []int64{ref.categoryID},
				SelectedChannels:   []int64{ref.channelID},
				Variations: []variants.NormalizedVariation{
					{
						ID:         "tmp_a",
						Attributes: []variants.Attribute{{TermGroupID: ref.colorGroupID, TermID: ref.rojoTermID}},
						Prices:     []variants.NormalizedPrice{{PriceListID: ref.priceListID, Price: 12.5}},
						Stock:      []variants.NormalizedStock{{WarehouseID: ref.warehouseID, Stock: 4, StockTypeID: &ref.stockTypeID}},
					},
					{
						ID:         "tmp_b",
						Attributes: []variants.Attribute{{TermGroupID: ref.colorGroupID, TermID: ref.azulTermID}},
					},
				},
			},
			SKUs: map[string]string{"tmp_a": "CAMISETA-ROJO", "tmp_b": "CAMISETA-AZUL"},
			Images: []database.ImageWrite{
				{ID: "tmp_img", StoragePath: "products/2026/08/tmp_img.jpg", PublicURL: "/media/products/2026/08/tmp_img.jpg", SortOrder: 0},
			},
		}

		productID, err = database.CreateProduct(ctx, write)
		require.NoError(t, err)
		assert.Positive(t, productID)
	})

	t.Run("ReadBack", func(t *testing.T) {
		detail, err := database.GetProduct(ctx, productID)
		require.NoError(t, err)

		assert.Equal(t, "Camiseta", detail.Product.Name)
		assert.True(t, detail.Product.IsVariable)
		assert.Equal(t, []int64{ref.categoryID}, detail.Categories)
		assert.Equal(t, []int64{ref.channelID}, detail.Channels)
		require.Len(t, detail.Images, 1)
		assert.Equal(t, "products/2026/08/tmp_img.jpg", detail.Images[0].StoragePath)

		require.Len(t, detail.Variations, 2)
		first := detail.Variations[0]
		firstVariationID = first.Variation.ID
		require.NotNil(t, first.Variation.SKU)
		assert.Equal(t, "CAMISETA-ROJO", *first.Variation.SKU)
		require.Len(t, first.Prices, 1)
		assert.Equal(t, 12.5, first.Prices[0].Price)
		assert.Nil(t, first.Prices[0].SalePrice, "no sale price stored")
		require.Len(t, first.Stock, 1)
		assert.Equal(t, 4.0, first.Stock[0].Stock)

		// The second variation has no price or stock rows: sparse cells
		// are never zero-filled.
		assert.Empty(t, detail.Variations[1].Prices)
		assert.Empty(t, detail.Variations[1].Stock)
	})

	t.Run("InPlaceUpdate", func(t *testing.T) {
		sale := 9.5
		write := database.ProductWrite{
			Request: variants.CreateProductRequest{
				ProductName:        "Camiseta",
				IsVariable:         true,
				IsActive:           true,
				SelectedCategories: []int64{ref.categoryID},
				Variations: []variants.NormalizedVariation{
					{
						// Persisted id: updated in place, sibling dropped.
						ID:     ident.FromKey(ident.PrefixVariation, firstVariationID),
						Prices: []variants.NormalizedPrice{{PriceListID: ref.priceListID, Price: 15, SalePrice: &sale}},
					},
				},
			},
		}

		require.NoError(t, database.UpdateProduct(ctx, productID, write, false))

		detail, err := database.GetProduct(ctx, productID)
		require.NoError(t, err)
		require.Len(t, detail.Variations, 1, "variation missing from the request is removed")
		v := detail.Variations[0]
		assert.Equal(t, firstVariationID, v.Variation.ID)
		require.NotNil(t, v.Variation.SKU)
		assert.Equal(t, "CAMISETA-ROJO", *v.Variation.SKU, "in-place update keeps the SKU")
		require.Len(t, v.Prices, 1)
		assert.Equal(t, 15.0, v.Prices[0].Price)
		require.NotNil(t, v.Prices[0].SalePrice)
		assert.Equal(t, 9.5, *v.Prices[0].SalePrice)
		assert.Empty(t, detail.Channels, "links are rewritten from the request")
	})

	t.Run("Regenerate", func(t *testing.T) {
		write := database.ProductWrite{
			Request: variants.CreateProductRequest{
				ProductName: "Camiseta",
				IsVariable:  true,
				IsActive:    true,
				Variations: []variants.NormalizedVariation{
					{
						ID:         "tmp_new",
						Attributes: []variants.Attribute{{TermGroupID: ref.colorGroupID, TermID: ref.azulTermID}},
					},
				},
			},
			SKUs: map[string]string{"tmp_new": "CAMISETA-AZUL"},
		}

		require.NoError(t, database.UpdateProduct(ctx, productID, write, true))

		detail, err := database.GetProduct(ctx, productID)
		require.NoError(t, err)
		require.Len(t, detail.Variations, 1)
		assert.NotEqual(t, firstVariationID, detail.Variations[0].Variation.ID, "reset discards persisted rows")
		assert.Empty(t, detail.Variations[0].Prices, "regenerated variation starts without prices")
	})

	t.Run("ListAndCost", func(t *testing.T) {
		items, total, err := database.ListProducts(ctx, "cami", nil, 20, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].VariationCount)

		require.NoError(t, database.UpdateProductCost(ctx, productID, 7.25))
		detail, err := database.GetProduct(ctx, productID)
		require.NoError(t, err)
		require.NotNil(t, detail.Product.Cost)
		assert.Equal(t, 7.25, *detail.Product.Cost)
	})

	t.Run("Delete", func(t *testing.T) {
		paths, err := database.DeleteProduct(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, []string{"products/2026/08/tmp_img.jpg"}, paths)

		_, err = database.GetProduct(ctx, productID)
		assert.Error(t, err)
	})
}

// TestE2EReferenceData exercises the reference loaders against seeded rows.
func TestE2EReferenceData(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	ctx := context.Background()

	postgresContainer, err := setupTestDatabase(ctx)
	require.NoError(t, err)
	defer postgresContainer.Terminate(ctx)

	connStr, err := postgresContainer.ConnectionString(ctx)
	require.NoError(t, err)

	require.NoError(t, database.Connect(ctx, connStr, 10, 2, 0, 0))
	defer database.Close()

	setupTestSchema(ctx, t)
	seedReferenceRows(ctx, t)

	ref, err := database.LoadReferenceData(ctx)
	require.NoError(t, err)

	require.Len(t, ref.TermGroups, 1)
	assert.Equal(t, "Color", ref.TermGroups[0].Name)
	assert.Len(t, ref.Terms, 2)
	assert.Len(t, ref.PriceLists, 1)
	assert.Len(t, ref.Warehouses, 1)
	assert.Len(t, ref.StockTypes, 1)

	t.Run("InactiveGroupHidden", func(t *testing.T) {
		group, err := database.CreateTermGroup(ctx, "Material")
		require.NoError(t, err)
		require.NoError(t, database.SetTermGroupActive(ctx, group.ID, false))

		reloaded, err := database.LoadReferenceData(ctx)
		require.NoError(t, err)
		assert.Len(t, reloaded.TermGroups, 1, "inactive axes stay out of the editor")
	})
}

// TestE2EStorage exercises the local storage backend with a real filesystem.
func TestE2EStorage(t *testing.T) {
	ctx := context.Background()

	store, err := storage.NewLocalStorage(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	key := "products/2026/08/test.jpg"
	content := []byte("not really a jpeg")

	require.NoError(t, store.Put(ctx, key, content, nil))

	retrieved, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, content, retrieved)

	keys, err := store.List(ctx, "products/")
	require.NoError(t, err)
	assert.Contains(t, keys, key)

	info, err := store.GetInfo(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), info.Size)

	require.NoError(t, store.Delete(ctx, key))
	exists, _ := store.Exists(ctx, key)
	assert.False(t, exists)
}

// Helper functions

func setupTestDatabase(ctx context.Context) (*postgres.PostgresContainer, error) {
	return postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			// Use multiple wait strategies for better reliability
			wait.ForAll(
				wait.ForListeningPort("5432/tcp").
					WithStartupTimeout(60*time.Second),
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(1).
					WithStartupTimeout(60*time.Second),
			),
		),
	)
}

func setupTestSchema(ctx context.Context, t *testing.T) {
	pool := database.Pool()

	schema := `
		CREATE TABLE IF NOT EXISTS term_groups (
			id bigserial PRIMARY KEY,
			name text NOT NULL,
			is_active boolean NOT NULL DEFAULT true
		);

		CREATE TABLE IF NOT EXISTS terms (
			id bigserial PRIMARY KEY,
			term_group_id bigint NOT NULL REFERENCES term_groups(id),
			name text NOT NULL,
			is_active boolean NOT NULL DEFAULT true
		);

		CREATE TABLE IF NOT EXISTS price_lists (
			id bigserial PRIMARY KEY,
			name text NOT NULL,
			is_active boolean NOT NULL DEFAULT true
		);

		CREATE TABLE IF NOT EXISTS branches (
			id bigserial PRIMARY KEY,
			name text NOT NULL,
			address text,
			is_active boolean NOT NULL DEFAULT true
		);

		CREATE TABLE IF NOT EXISTS warehouses (
			id bigserial PRIMARY KEY,
			branch_id bigint NOT NULL REFERENCES branches(id),
			name text NOT NULL,
			is_active boolean NOT NULL DEFAULT true
		);

		CREATE TABLE IF NOT EXISTS stock_types (
			id bigserial PRIMARY KEY,
			name text NOT NULL
		);

		CREATE TABLE IF NOT EXISTS channels (
			id bigserial PRIMARY KEY,
			name text NOT NULL,
			is_active boolean NOT NULL DEFAULT true
		);

		CREATE TABLE IF NOT EXISTS categories (
			id bigserial PRIMARY KEY,
			name text NOT NULL,
			parent_id bigint REFERENCES categories(id),
			is_active boolean NOT NULL DEFAULT true,
			created_at timestamptz NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS payment_methods (
			id bigserial PRIMARY KEY,
			name text NOT NULL,
			is_active boolean NOT NULL DEFAULT true
		);

		CREATE TABLE IF NOT EXISTS roles (
			id bigserial PRIMARY KEY,
			name text NOT NULL
		);

		CREATE TABLE IF NOT EXISTS users (
			id bigserial PRIMARY KEY,
			email text NOT NULL UNIQUE,
			full_name text NOT NULL,
			role_id bigint NOT NULL REFERENCES roles(id),
			is_active boolean NOT NULL DEFAULT true,
			created_at timestamptz NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS products (
			id bigserial PRIMARY KEY,
			name text NOT NULL,
			short_description text,
			description text,
			is_variable boolean NOT NULL DEFAULT false,
			is_active boolean NOT NULL DEFAULT true,
			is_web boolean NOT NULL DEFAULT false,
			cost double precision,
			created_at timestamptz NOT NULL,
			updated_at timestamptz NOT NULL
		);

		CREATE TABLE IF NOT EXISTS product_categories (
			product_id bigint NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			category_id bigint NOT NULL REFERENCES categories(id),
			PRIMARY KEY (product_id, category_id)
		);

		CREATE TABLE IF NOT EXISTS product_channels (
			product_id bigint NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			channel_id bigint NOT NULL REFERENCES channels(id),
			PRIMARY KEY (product_id, channel_id)
		);

		CREATE TABLE IF NOT EXISTS product_images (
			id bigserial PRIMARY KEY,
			product_id bigint NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			storage_path text NOT NULL,
			public_url text NOT NULL,
			sort_order int NOT NULL,
			created_at timestamptz NOT NULL
		);

		CREATE TABLE IF NOT EXISTS variations (
			id bigserial PRIMARY KEY,
			product_id bigint NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			sku text,
			created_at timestamptz NOT NULL
		);

		CREATE TABLE IF NOT EXISTS variation_attributes (
			variation_id bigint NOT NULL REFERENCES variations(id) ON DELETE CASCADE,
			term_group_id bigint NOT NULL REFERENCES term_groups(id),
			term_id bigint NOT NULL REFERENCES terms(id),
			PRIMARY KEY (variation_id, term_group_id)
		);

		CREATE TABLE IF NOT EXISTS variation_prices (
			variation_id bigint NOT NULL REFERENCES variations(id) ON DELETE CASCADE,
			price_list_id bigint NOT NULL REFERENCES price_lists(id),
			price double precision NOT NULL,
			sale_price double precision,
			PRIMARY KEY (variation_id, price_list_id)
		);

		CREATE TABLE IF NOT EXISTS variation_stock (
			variation_id bigint NOT NULL REFERENCES variations(id) ON DELETE CASCADE,
			warehouse_id bigint NOT NULL REFERENCES warehouses(id),
			stock_type_id bigint REFERENCES stock_types(id),
			stock double precision NOT NULL,
			UNIQUE NULLS NOT DISTINCT (variation_id, warehouse_id, stock_type_id)
		);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}
}

type referenceIDs struct {
	colorGroupID int64
	rojoTermID   int64
	azulTermID   int64
	priceListID  int64
	warehouseID  int64
	stockTypeID  int64
	channelID    int64
	categoryID   int64
}

func seedReferenceRows(ctx context.Context, t *testing.T) referenceIDs {
	pool := database.Pool()

	var ref referenceIDs
	var branchID int64

	queries := []struct {
		dest *int64
		sql  string
	}{
		{&ref.colorGroupID, `INSERT INTO term_groups (name) VALUES ('Color') RETURNING id`},
		{&ref.priceListID, `INSERT INTO price_lists (name) VALUES ('General') RETURNING id`},
		{&branchID, `INSERT INTO branches (name) VALUES ('Casa Central') RETURNING id`},
		{&ref.stockTypeID, `INSERT INTO stock_types (name) VALUES ('Disponible') RETURNING id`},
		{&ref.channelID, `INSERT INTO channels (name) VALUES ('Web') RETURNING id`},
		{&ref.categoryID, `INSERT INTO categories (name) VALUES ('Ropa') RETURNING id`},
	}
	for _, q := range queries {
		require.NoError(t, pool.QueryRow(ctx, q.sql).Scan(q.dest))
	}

	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO terms (term_group_id, name) VALUES ($1, 'Rojo') RETURNING id`,
		ref.colorGroupID).Scan(&ref.rojoTermID))
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO terms (term_group_id, name) VALUES ($1, 'Azul') RETURNING id`,
		ref.colorGroupID).Scan(&ref.azulTermID))
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO warehouses (branch_id, name) VALUES ($1, 'Depósito Central') RETURNING id`,
		branchID).Scan(&ref.warehouseID))

	return ref
}

// TestMain setup for e2e tests
func TestMain(m *testing.M) {
	// Check if testcontainers is available
	if os.Getenv("TESTCONTAINERS_ENABLED") == "false" {
		// Run without container tests
		os.Exit(m.Run())
	}

	os.Exit(m.Run())
}
