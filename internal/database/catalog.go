package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/almatienda/catalog-service/internal/pkg/ident"
	"github.com/almatienda/catalog-service/internal/variants"
)

// ImageWrite is one gallery image ready for persistence. The handler resolves
// it from the request's image references: new uploads carry the storage key
// they were uploaded under plus the issued public URL, already-persisted
// images keep their stored values and only move in rank.
type ImageWrite struct {
	ID          string // "img_<key>" for persisted rows, anything else is new
	StoragePath string
	PublicURL   string
	SortOrder   int
}

// ProductWrite bundles a normalized write request with the pieces the handler
// resolves before persistence: a generated SKU per variation id and the
// resolved storage location per image.
type ProductWrite struct {
	Request variants.CreateProductRequest
	SKUs    map[string]string
	Images  []ImageWrite
}

// VariationDetail is a persisted variation with its child rows.
type VariationDetail struct {
	Variation  Variation            `json:"variation"`
	Attributes []VariationAttribute `json:"attributes"`
	Prices     []VariationPrice     `json:"prices"`
	Stock      []VariationStock     `json:"stock"`
}

// ProductDetail is the full read model of one product.
type ProductDetail struct {
	Product    Product           `json:"product"`
	Categories []int64           `json:"categories"`
	Channels   []int64           `json:"channels"`
	Images     []ProductImage    `json:"images"`
	Variations []VariationDetail `json:"variations"`
}

// CreateProduct inserts a product with its categories, channels, images and
// variations in a single transaction. Returns the new product id.
func CreateProduct(ctx context.Context, w ProductWrite) (int64, error) {
	pool := Pool()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	req := w.Request
	now := time.Now()

	var productID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO products (name, short_description, description, is_variable, is_active, is_web, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, $7)
		RETURNING id
	`, req.ProductName, req.ShortDescription, req.Description,
		req.IsVariable, req.IsActive, req.IsWeb, now).Scan(&productID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}

	if err := replaceProductLinks(ctx, tx, productID, req.SelectedCategories, req.SelectedChannels); err != nil {
		return 0, err
	}
	if err := insertImages(ctx, tx, productID, w.Images, now); err != nil {
		return 0, err
	}
	if err := insertVariations(ctx, tx, productID, req.Variations, w.SKUs, now); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return productID, nil
}

// UpdateProduct rewrites a product in a single transaction. When reset is
// true the persisted variation set is discarded and recreated from the
// request; otherwise persisted variations are updated in place, new ones
// inserted, and ones missing from the request removed.
func UpdateProduct(ctx context.Context, productID int64, w ProductWrite, reset bool) error {
	pool := Pool()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	req := w.Request
	now := time.Now()

	tag, err := tx.Exec(ctx, `
		UPDATE products
		SET name = $1,
		    short_description = NULLIF($2, ''),
		    description = NULLIF($3, ''),
		    is_variable = $4,
		    is_active = $5,
		    is_web = $6,
		    updated_at = $7
		WHERE id = $8
	`, req.ProductName, req.ShortDescription, req.Description,
		req.IsVariable, req.IsActive, req.IsWeb, now, productID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product not found: %d", productID)
	}

	if err := replaceProductLinks(ctx, tx, productID, req.SelectedCategories, req.SelectedChannels); err != nil {
		return err
	}
	if err := syncImages(ctx, tx, productID, w.Images, now); err != nil {
		return err
	}

	if reset {
		if _, err := tx.Exec(ctx, `DELETE FROM variations WHERE product_id = $1`, productID); err != nil {
			return fmt.Errorf("failed to clear variations: %w", err)
		}
		if err := insertVariations(ctx, tx, productID, req.Variations, w.SKUs, now); err != nil {
			return err
		}
	} else if err := syncVariations(ctx, tx, productID, req.Variations, w.SKUs, now); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// replaceProductLinks rewrites the category and channel memberships.
func replaceProductLinks(ctx context.Context, tx pgx.Tx, productID int64, categories, channels []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM product_categories WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("failed to clear product categories: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM product_channels WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("failed to clear product channels: %w", err)
	}

	batch := &pgx.Batch{}
	for _, categoryID := range categories {
		batch.Queue(`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2)`, productID, categoryID)
	}
	for _, channelID := range channels {
		batch.Queue(`INSERT INTO product_channels (product_id, channel_id) VALUES ($1, $2)`, productID, channelID)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert product link: %w", err)
		}
	}
	return nil
}

func insertImages(ctx context.Context, tx pgx.Tx, productID int64, images []ImageWrite, now time.Time) error {
	for _, img := range images {
		_, err := tx.Exec(ctx, `
			INSERT INTO product_images (product_id, storage_path, public_url, sort_order, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, productID, img.StoragePath, img.PublicURL, img.SortOrder, now)
		if err != nil {
			return fmt.Errorf("failed to insert product image: %w", err)
		}
	}
	return nil
}

// syncImages keeps persisted images referenced by the request (updating their
// rank), inserts new ones, and deletes persisted images the request dropped.
func syncImages(ctx context.Context, tx pgx.Tx, productID int64, images []ImageWrite, now time.Time) error {
	kept := make([]int64, 0, len(images))
	for _, img := range images {
		if key, ok := ident.Key(img.ID); ok && ident.HasPrefix(img.ID, ident.PrefixImage) {
			_, err := tx.Exec(ctx, `
				UPDATE product_images SET sort_order = $1 WHERE id = $2 AND product_id = $3
			`, img.SortOrder, key, productID)
			if err != nil {
				return fmt.Errorf("failed to update image rank: %w", err)
			}
			kept = append(kept, key)
			continue
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO product_images (product_id, storage_path, public_url, sort_order, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, productID, img.StoragePath, img.PublicURL, img.SortOrder, now)
		if err != nil {
			return fmt.Errorf("failed to insert product image: %w", err)
		}
	}

	_, err := tx.Exec(ctx, `
		DELETE FROM product_images
		WHERE product_id = $1 AND NOT (id = ANY($2))
	`, productID, kept)
	if err != nil {
		return fmt.Errorf("failed to delete removed images: %w", err)
	}
	return nil
}

func insertVariations(ctx context.Context, tx pgx.Tx, productID int64, vars []variants.NormalizedVariation, skus map[string]string, now time.Time) error {
	for _, v := range vars {
		if err := insertVariation(ctx, tx, productID, v, skus[v.ID], now); err != nil {
			return err
		}
	}
	return nil
}

func insertVariation(ctx context.Context, tx pgx.Tx, productID int64, v variants.NormalizedVariation, sku string, now time.Time) error {
	var variationID int64
	err := tx.QueryRow(ctx, `
		INSERT INTO variations (product_id, sku, created_at)
		VALUES ($1, NULLIF($2, ''), $3)
		RETURNING id
	`, productID, sku, now).Scan(&variationID)
	if err != nil {
		return fmt.Errorf("failed to insert variation: %w", err)
	}
	return insertVariationChildren(ctx, tx, variationID, v, true)
}

// insertVariationChildren writes the attribute, price and stock rows of one
// variation. Attributes are immutable after creation, so the in-place update
// path skips them.
func insertVariationChildren(ctx context.Context, tx pgx.Tx, variationID int64, v variants.NormalizedVariation, withAttributes bool) error {
	batch := &pgx.Batch{}
	if withAttributes {
		for _, a := range v.Attributes {
			batch.Queue(`
				INSERT INTO variation_attributes (variation_id, term_group_id, term_id)
				VALUES ($1, $2, $3)
			`, variationID, a.TermGroupID, a.TermID)
		}
	}
	for _, p := range v.Prices {
		batch.Queue(`
			INSERT INTO variation_prices (variation_id, price_list_id, price, sale_price)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (variation_id, price_list_id) DO UPDATE SET
				price = EXCLUDED.price,
				sale_price = EXCLUDED.sale_price
		`, variationID, p.PriceListID, p.Price, p.SalePrice)
	}
	for _, s := range v.Stock {
		batch.Queue(`
			INSERT INTO variation_stock (variation_id, warehouse_id, stock_type_id, stock)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (variation_id, warehouse_id, stock_type_id) DO UPDATE SET
				stock = EXCLUDED.stock
		`, variationID, s.WarehouseID, s.StockTypeID, s.Stock)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to write variation row: %w", err)
		}
	}
	return nil
}

// syncVariations is the non-destructive update path: persisted variations in
// the request are updated in place, draft ids become new rows, and persisted
// variations absent from the request are removed.
func syncVariations(ctx context.Context, tx pgx.Tx, productID int64, vars []variants.NormalizedVariation, skus map[string]string, now time.Time) error {
	kept := make([]int64, 0, len(vars))
	for _, v := range vars {
		key, ok := ident.Key(v.ID)
		if !ok || !ident.HasPrefix(v.ID, ident.PrefixVariation) {
			if err := insertVariation(ctx, tx, productID, v, skus[v.ID], now); err != nil {
				return err
			}
			continue
		}

		tag, err := tx.Exec(ctx, `
			UPDATE variations SET sku = COALESCE(NULLIF($1, ''), sku)
			WHERE id = $2 AND product_id = $3
		`, skus[v.ID], key, productID)
		if err != nil {
			return fmt.Errorf("failed to update variation: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("variation %s does not belong to product %d", v.ID, productID)
		}
		if err := insertVariationChildren(ctx, tx, key, v, false); err != nil {
			return err
		}
		kept = append(kept, key)
	}

	_, err := tx.Exec(ctx, `
		DELETE FROM variations
		WHERE product_id = $1 AND NOT (id = ANY($2))
	`, productID, kept)
	if err != nil {
		return fmt.Errorf("failed to delete removed variations: %w", err)
	}
	return nil
}

// GetProduct loads the full read model of one product.
func GetProduct(ctx context.Context, productID int64) (*ProductDetail, error) {
	pool := Pool()

	var detail ProductDetail
	p := &detail.Product
	err := pool.QueryRow(ctx, `
		SELECT id, name, short_description, description, is_variable, is_active, is_web, cost, created_at, updated_at
		FROM products
		WHERE id = $1
	`, productID).Scan(
		&p.ID, &p.Name, &p.ShortDescription, &p.Description,
		&p.IsVariable, &p.IsActive, &p.IsWeb, &p.Cost,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("product not found: %d", productID)
		}
		return nil, fmt.Errorf("error querying product: %w", err)
	}

	detail.Categories, err = scanIDs(ctx, `SELECT category_id FROM product_categories WHERE product_id = $1 ORDER BY category_id`, productID)
	if err != nil {
		return nil, err
	}
	detail.Channels, err = scanIDs(ctx, `SELECT channel_id FROM product_channels WHERE product_id = $1 ORDER BY channel_id`, productID)
	if err != nil {
		return nil, err
	}

	detail.Images, err = GetProductImages(ctx, productID)
	if err != nil {
		return nil, err
	}
	detail.Variations, err = getVariations(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetProductImages lists a product's gallery in rank order.
func GetProductImages(ctx context.Context, productID int64) ([]ProductImage, error) {
	pool := Pool()

	rows, err := pool.Query(ctx, `
		SELECT id, product_id, storage_path, public_url, sort_order, created_at
		FROM product_images
		WHERE product_id = $1
		ORDER BY sort_order
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("error querying product images: %w", err)
	}
	defer rows.Close()

	images := make([]ProductImage, 0)
	for rows.Next() {
		var img ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.StoragePath, &img.PublicURL, &img.SortOrder, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning product image: %w", err)
		}
		images = append(images, img)
	}
	return images, nil
}

func getVariations(ctx context.Context, productID int64) ([]VariationDetail, error) {
	pool := Pool()

	rows, err := pool.Query(ctx, `
		SELECT id, product_id, sku, created_at
		FROM variations
		WHERE product_id = $1
		ORDER BY id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("error querying variations: %w", err)
	}
	defer rows.Close()

	details := make([]VariationDetail, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var v Variation
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning variation: %w", err)
		}
		index[v.ID] = len(details)
		details = append(details, VariationDetail{
			Variation:  v,
			Attributes: []VariationAttribute{},
			Prices:     []VariationPrice{},
			Stock:      []VariationStock{},
		})
	}
	rows.Close()
	if len(details) == 0 {
		return details, nil
	}

	attrRows, err := pool.Query(ctx, `
		SELECT va.variation_id, va.term_group_id, va.term_id
		FROM variation_attributes va
		JOIN variations v ON v.id = va.variation_id
		WHERE v.product_id = $1
		ORDER BY va.variation_id, va.term_group_id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("error querying variation attributes: %w", err)
	}
	defer attrRows.Close()
	for attrRows.Next() {
		var a VariationAttribute
		if err := attrRows.Scan(&a.VariationID, &a.TermGroupID, &a.TermID); err != nil {
			return nil, fmt.Errorf("error scanning variation attribute: %w", err)
		}
		if i, ok := index[a.VariationID]; ok {
			details[i].Attributes = append(details[i].Attributes, a)
		}
	}

	priceRows, err := pool.Query(ctx, `
		SELECT vp.variation_id, vp.price_list_id, vp.price, vp.sale_price
		FROM variation_prices vp
		JOIN variations v ON v.id = vp.variation_id
		WHERE v.product_id = $1
		ORDER BY vp.variation_id, vp.price_list_id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("error querying variation prices: %w", err)
	}
	defer priceRows.Close()
	for priceRows.Next() {
		var p VariationPrice
		if err := priceRows.Scan(&p.VariationID, &p.PriceListID, &p.Price, &p.SalePrice); err != nil {
			return nil, fmt.Errorf("error scanning variation price: %w", err)
		}
		if i, ok := index[p.VariationID]; ok {
			details[i].Prices = append(details[i].Prices, p)
		}
	}

	stockRows, err := pool.Query(ctx, `
		SELECT vs.variation_id, vs.warehouse_id, vs.stock, vs.stock_type_id
		FROM variation_stock vs
		JOIN variations v ON v.id = vs.variation_id
		WHERE v.product_id = $1
		ORDER BY vs.variation_id, vs.warehouse_id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("error querying variation stock: %w", err)
	}
	defer stockRows.Close()
	for stockRows.Next() {
		var s VariationStock
		if err := stockRows.Scan(&s.VariationID, &s.WarehouseID, &s.Stock, &s.StockTypeID); err != nil {
			return nil, fmt.Errorf("error scanning variation stock: %w", err)
		}
		if i, ok := index[s.VariationID]; ok {
			details[i].Stock = append(details[i].Stock, s)
		}
	}

	return details, nil
}

// ProductListItem is one row of the product listing.
type ProductListItem struct {
	Product
	VariationCount int `json:"variation_count"`
	ImageCount     int `json:"image_count"`
}

// ListProducts lists products filtered by an optional name search and active
// flag, newest first, with pagination. Returns the page and the total count.
func ListProducts(ctx context.Context, search string, active *bool, limit, offset int) ([]ProductListItem, int, error) {
	pool := Pool()

	var total int
	err := pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		  AND ($2::boolean IS NULL OR is_active = $2)
	`, search, active).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting products: %w", err)
	}

	rows, err := pool.Query(ctx, `
		SELECT p.id, p.name, p.short_description, p.description, p.is_variable,
		       p.is_active, p.is_web, p.cost, p.created_at, p.updated_at,
		       (SELECT COUNT(*) FROM variations v WHERE v.product_id = p.id),
		       (SELECT COUNT(*) FROM product_images pi WHERE pi.product_id = p.id)
		FROM products p
		WHERE ($1 = '' OR p.name ILIKE '%' || $1 || '%')
		  AND ($2::boolean IS NULL OR p.is_active = $2)
		ORDER BY p.updated_at DESC
		LIMIT $3 OFFSET $4
	`, search, active, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying products: %w", err)
	}
	defer rows.Close()

	items := make([]ProductListItem, 0)
	for rows.Next() {
		var item ProductListItem
		err := rows.Scan(
			&item.ID, &item.Name, &item.ShortDescription, &item.Description,
			&item.IsVariable, &item.IsActive, &item.IsWeb, &item.Cost,
			&item.CreatedAt, &item.UpdatedAt,
			&item.VariationCount, &item.ImageCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning product: %w", err)
		}
		items = append(items, item)
	}
	return items, total, nil
}

// ListProductDetails loads every product in full, for the catalog export.
func ListProductDetails(ctx context.Context) ([]ProductDetail, error) {
	ids, err := scanIDs(ctx, `SELECT id FROM products ORDER BY name, id`)
	if err != nil {
		return nil, err
	}

	details := make([]ProductDetail, 0, len(ids))
	for _, id := range ids {
		detail, err := GetProduct(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("error loading product %d: %w", id, err)
		}
		details = append(details, *detail)
	}
	return details, nil
}

// UpdateProductCost records the last entered unit cost of a product.
func UpdateProductCost(ctx context.Context, productID int64, cost float64) error {
	pool := Pool()

	tag, err := pool.Exec(ctx, `
		UPDATE products SET cost = $1, updated_at = NOW() WHERE id = $2
	`, cost, productID)
	if err != nil {
		return fmt.Errorf("failed to update product cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product not found: %d", productID)
	}
	return nil
}

// DeleteProduct removes a product; child rows cascade. Returns the storage
// paths of its images so the caller can clean up the object store.
func DeleteProduct(ctx context.Context, productID int64) ([]string, error) {
	pool := Pool()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `SELECT storage_path FROM product_images WHERE product_id = $1`, productID)
	if err != nil {
		return nil, fmt.Errorf("error querying image paths: %w", err)
	}
	paths := make([]string, 0)
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error scanning image path: %w", err)
		}
		paths = append(paths, path)
	}
	rows.Close()

	tag, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("product not found: %d", productID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return paths, nil
}

func scanIDs(ctx context.Context, query string, args ...any) ([]int64, error) {
	pool := Pool()

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
