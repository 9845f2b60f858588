package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/almatienda/catalog-service/internal/pkg/ident"
	"github.com/almatienda/catalog-service/internal/storage"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadImageResponse represents a stored upload. The path is the storage
// key the product save must echo back; the preview URL is for display only.
type UploadImageResponse struct {
	ID      string `json:"id"`
	Path    string `json:"path"`
	Preview string `json:"preview"`
}

// UploadImage stores a product image upload and issues its storage key.
// The image is not attached to any product yet; the product save carries the
// returned path. Unreferenced uploads are collected by the orphan sweeper.
// @Summary Upload product image
// @Tags images
// @Accept mpfd
// @Produce json
// @Param file formData file true "Image file (jpeg, png or webp)"
// @Success 201 {object} UploadImageResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 413 {object} map[string]string "File too large"
// @Router /internal/images [post]
func UploadImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	maxBytes := int64(maxUploadMB) * 1024 * 1024
	if header.Size > maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}
	if int64(len(content)) > maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	contentType := http.DetectContentType(content)
	if !allowedImageTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type " + contentType})
		return
	}

	now := time.Now()
	id := ident.New(ident.PrefixDraft)
	key := storage.BuildImageKey(id, header.Filename, now)

	err = imageStore.Put(c.Request.Context(), key, content, &storage.Metadata{
		ContentType:  contentType,
		OriginalName: header.Filename,
		UploadedAt:   now,
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to store image upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	c.JSON(http.StatusCreated, UploadImageResponse{
		ID:      id,
		Path:    key,
		Preview: storage.PublicURL(publicBaseURL, key),
	})
}

// ServeImage streams a stored image by its storage key
// @Summary Serve product image
// @Tags images
// @Produce octet-stream
// @Param key path string true "Storage key"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string "Not found"
// @Router /media/{key} [get]
func ServeImage(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" || strings.Contains(key, "..") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key"})
		return
	}

	content, err := imageStore.Get(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	c.Data(http.StatusOK, http.DetectContentType(content), content)
}
