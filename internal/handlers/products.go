package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/almatienda/catalog-service/internal/database"
	"github.com/almatienda/catalog-service/internal/pkg/ident"
	"github.com/almatienda/catalog-service/internal/refdata"
	"github.com/almatienda/catalog-service/internal/sku"
	"github.com/almatienda/catalog-service/internal/storage"
	"github.com/almatienda/catalog-service/internal/variants"
)

// ListProductsRequest represents query parameters for the product listing
type ListProductsRequest struct {
	Search string `form:"search"`
	Active *bool  `form:"active"`
	Limit  int    `form:"limit" binding:"min=0,max=200"`
	Offset int    `form:"offset" binding:"min=0"`
}

// ListProductsResponse represents the product listing response
type ListProductsResponse struct {
	Products []database.ProductListItem `json:"products"`
	Total    int                        `json:"total"`
}

// ListProducts returns a paginated product listing
// @Summary List products
// @Description Returns a paginated product listing with optional name search and active filter
// @Tags products
// @Produce json
// @Param search query string false "Filter by name substring"
// @Param active query bool false "Filter by active flag"
// @Param limit query int false "Number of items to return" default(20) minimum(1) maximum(200)
// @Param offset query int false "Number of items to skip" default(0) minimum(0)
// @Success 200 {object} ListProductsResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /internal/products [get]
func ListProducts(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Set defaults
	if req.Limit == 0 {
		req.Limit = 20
	}

	products, total, err := database.ListProducts(c.Request.Context(), req.Search, req.Active, req.Limit, req.Offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, ListProductsResponse{Products: products, Total: total})
}

// GetProduct returns the full detail of one product
// @Summary Get product
// @Description Returns one product with its categories, channels, images and variations
// @Tags products
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} database.ProductDetail
// @Failure 404 {object} map[string]string "Not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /internal/products/{productId} [get]
func GetProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	detail, err := database.GetProduct(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// CreateProductResponse carries the id of a newly created product
type CreateProductResponse struct {
	ProductID int64 `json:"productId"`
}

// CreateProduct persists a new product with its variations
// @Summary Create product
// @Description Creates a product with categories, channels, images and the normalized variation set
// @Tags products
// @Accept json
// @Produce json
// @Param request body variants.CreateProductRequest true "Product payload"
// @Success 201 {object} CreateProductResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /internal/products [post]
func CreateProduct(c *gin.Context) {
	var req variants.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ProductName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productName is required"})
		return
	}

	write, err := buildProductWrite(c, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve reference data"})
		return
	}

	productID, err := database.CreateProduct(c.Request.Context(), *write)
	if err != nil {
		log.Error().Err(err).Str("product", req.ProductName).Msg("Failed to create product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, CreateProductResponse{ProductID: productID})
}

// UpdateProduct rewrites an existing product
// @Summary Update product
// @Description Updates a product. With resetVariations the persisted variation set is discarded and recreated; otherwise variations are updated in place.
// @Tags products
// @Accept json
// @Produce json
// @Param productId path int true "Product ID"
// @Param request body variants.UpdateProductRequest true "Product payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /internal/products/{productId} [put]
func UpdateProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req variants.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ProductName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productName is required"})
		return
	}

	// Switching a product between variable and non-variable invalidates the
	// whole persisted variation set, so it must arrive as a reset.
	if req.OriginalIsVariable != req.IsVariable && !req.ResetVariations {
		c.JSON(http.StatusBadRequest, gin.H{"error": "changing product type requires resetVariations"})
		return
	}

	write, err := buildProductWrite(c, req.CreateProductRequest)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve reference data"})
		return
	}

	if err := database.UpdateProduct(c.Request.Context(), productID, *write, req.ResetVariations); err != nil {
		log.Error().Err(err).Int64("product_id", productID).Msg("Failed to update product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// DeleteProduct removes a product and its stored images
// @Summary Delete product
// @Tags products
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Not found"
// @Router /internal/products/{productId} [delete]
func DeleteProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	paths, err := database.DeleteProduct(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	// Best effort: the orphaned-image sweeper picks up anything missed here.
	for _, path := range paths {
		if err := imageStore.Delete(c.Request.Context(), path); err != nil {
			log.Warn().Err(err).Str("key", path).Msg("Failed to delete stored image")
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// UpdateProductCostRequest carries a cost update
type UpdateProductCostRequest struct {
	Cost float64 `json:"cost" binding:"min=0"`
}

// UpdateProductCost records the last entered unit cost for a product
// @Summary Update product cost
// @Tags products
// @Accept json
// @Produce json
// @Param productId path int true "Product ID"
// @Param request body UpdateProductCostRequest true "Cost payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad request"
// @Router /internal/products/{productId}/cost [put]
func UpdateProductCost(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req UpdateProductCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.UpdateProductCost(c.Request.Context(), productID, req.Cost); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// buildProductWrite resolves the request into a persistence-ready write:
// SKUs derived from the product and term names, and image references resolved
// into storage locations.
func buildProductWrite(c *gin.Context, req variants.CreateProductRequest) (*database.ProductWrite, error) {
	snap, err := refCache.Get(c.Request.Context())
	if err != nil {
		return nil, err
	}

	return &database.ProductWrite{
		Request: req,
		SKUs:    generateSKUs(req, snap),
		Images:  resolveImages(req.ProductImages),
	}, nil
}

// generateSKUs derives one SKU per variation from the product name plus the
// variation's term names in attribute order, uniquified within the product.
func generateSKUs(req variants.CreateProductRequest, snap *refdata.Snapshot) map[string]string {
	taken := make(map[string]bool, len(req.Variations))
	skus := make(map[string]string, len(req.Variations))
	for _, v := range req.Variations {
		// Persisted variations keep their SKU; only drafts get a new one.
		if ident.HasPrefix(v.ID, ident.PrefixVariation) {
			continue
		}
		termNames := make([]string, len(v.Attributes))
		for i, a := range v.Attributes {
			termNames[i] = snap.TermName(a.TermID)
		}
		skus[v.ID] = sku.MakeUnique(sku.Generate(req.ProductName, termNames), taken)
	}
	return skus
}

// resolveImages turns request image references into storage-backed writes.
// New uploads carry their storage key in Path and get a public URL issued;
// persisted references only move in rank, so their stored values stand.
func resolveImages(refs []variants.ImageRef) []database.ImageWrite {
	writes := make([]database.ImageWrite, len(refs))
	for i, ref := range refs {
		w := database.ImageWrite{ID: ref.ID, SortOrder: ref.Order}
		if !ident.HasPrefix(ref.ID, ident.PrefixImage) {
			w.StoragePath = ref.Path
			w.PublicURL = storage.PublicURL(publicBaseURL, ref.Path)
		}
		writes[i] = w
	}
	return writes
}
