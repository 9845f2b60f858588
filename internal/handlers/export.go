package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/almatienda/catalog-service/internal/database"
	"github.com/almatienda/catalog-service/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportCatalog downloads the full catalog as an XLSX workbook
// @Summary Export catalog
// @Description Builds an XLSX workbook with one sheet of products and one of variations
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /internal/export [get]
func ExportCatalog(c *gin.Context) {
	snap, err := refCache.Get(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load reference data")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reference data"})
		return
	}

	products, err := database.ListProductDetails(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load products for export")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}

	content, err := export.WriteCatalog(products, snap.Ref)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build export workbook")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
		return
	}

	filename := fmt.Sprintf("catalogo-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, content)
}
