package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/almatienda/catalog-service/internal/database"
)

// AttributesResponse bundles the attribute axes with their terms
type AttributesResponse struct {
	TermGroups []database.TermGroup `json:"termGroups"`
	Terms      []database.Term      `json:"terms"`
}

// ListAttributes returns the attribute axes and terms for the product editor
// @Summary List attributes
// @Description Returns active term groups and terms for the variant selection panel
// @Tags reference
// @Produce json
// @Success 200 {object} AttributesResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /internal/attributes [get]
func ListAttributes(c *gin.Context) {
	snap, err := refCache.Get(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load reference data")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load attributes"})
		return
	}

	c.JSON(http.StatusOK, AttributesResponse{
		TermGroups: snap.Ref.TermGroups,
		Terms:      snap.Ref.Terms,
	})
}

// CreateTermGroupRequest carries a new attribute axis
type CreateTermGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateTermGroup creates an attribute axis
// @Summary Create term group
// @Tags reference
// @Accept json
// @Produce json
// @Param request body CreateTermGroupRequest true "Term group payload"
// @Success 201 {object} database.TermGroup
// @Failure 400 {object} map[string]string "Bad request"
// @Router /internal/attributes/groups [post]
func CreateTermGroup(c *gin.Context) {
	var req CreateTermGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := database.CreateTermGroup(c.Request.Context(), req.Name)
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Failed to create term group")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create term group"})
		return
	}

	refCache.Invalidate()
	c.JSON(http.StatusCreated, group)
}

// CreateTermRequest carries a new term
type CreateTermRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateTerm creates a term under an axis
// @Summary Create term
// @Tags reference
// @Accept json
// @Produce json
// @Param groupId path int true "Term group ID"
// @Param request body CreateTermRequest true "Term payload"
// @Success 201 {object} database.Term
// @Failure 400 {object} map[string]string "Bad request"
// @Router /internal/attributes/groups/{groupId}/terms [post]
func CreateTerm(c *gin.Context) {
	groupID, err := strconv.ParseInt(c.Param("groupId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}

	var req CreateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	term, err := database.CreateTerm(c.Request.Context(), groupID, req.Name)
	if err != nil {
		log.Error().Err(err).Int64("group_id", groupID).Msg("Failed to create term")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create term"})
		return
	}

	refCache.Invalidate()
	c.JSON(http.StatusCreated, term)
}

// SetTermGroupActiveRequest carries an active-flag change
type SetTermGroupActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetTermGroupActive activates or deactivates an attribute axis
// @Summary Set term group active flag
// @Tags reference
// @Accept json
// @Produce json
// @Param groupId path int true "Term group ID"
// @Param request body SetTermGroupActiveRequest true "Active flag"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad request"
// @Router /internal/attributes/groups/{groupId}/active [put]
func SetTermGroupActive(c *gin.Context) {
	groupID, err := strconv.ParseInt(c.Param("groupId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}

	var req SetTermGroupActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.SetTermGroupActive(c.Request.Context(), groupID, *req.Active); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Term group not found"})
		return
	}

	refCache.Invalidate()
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// ListPriceLists returns the price tiers
// @Summary List price lists
// @Tags reference
// @Produce json
// @Success 200 {array} database.PriceList
// @Router /internal/price-lists [get]
func ListPriceLists(c *gin.Context) {
	lists, err := database.ListPriceLists(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list price lists"})
		return
	}
	c.JSON(http.StatusOK, lists)
}

// ListWarehouses returns the stock locations
// @Summary List warehouses
// @Tags reference
// @Produce json
// @Success 200 {array} database.Warehouse
// @Router /internal/warehouses [get]
func ListWarehouses(c *gin.Context) {
	warehouses, err := database.ListWarehouses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list warehouses"})
		return
	}
	c.JSON(http.StatusOK, warehouses)
}

// ListStockTypes returns the inventory buckets
// @Summary List stock types
// @Tags reference
// @Produce json
// @Success 200 {array} database.StockType
// @Router /internal/stock-types [get]
func ListStockTypes(c *gin.Context) {
	types, err := database.ListStockTypes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stock types"})
		return
	}
	c.JSON(http.StatusOK, types)
}

// ListCategories returns the category tree, parents before children
// @Summary List categories
// @Tags reference
// @Produce json
// @Success 200 {array} database.Category
// @Router /internal/categories [get]
func ListCategories(c *gin.Context) {
	categories, err := database.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategoryRequest carries a new category
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID *int64 `json:"parentId"`
}

// CreateCategory creates a category node
// @Summary Create category
// @Tags reference
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category payload"
// @Success 201 {object} database.Category
// @Failure 400 {object} map[string]string "Bad request"
// @Router /internal/categories [post]
func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := database.CreateCategory(c.Request.Context(), req.Name, req.ParentID)
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Failed to create category")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// ListChannels returns the sales channels
// @Summary List channels
// @Tags reference
// @Produce json
// @Success 200 {array} database.Channel
// @Router /internal/channels [get]
func ListChannels(c *gin.Context) {
	channels, err := database.ListChannels(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list channels"})
		return
	}
	c.JSON(http.StatusOK, channels)
}
