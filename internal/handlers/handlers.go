// Package handlers exposes the back-office HTTP API: product CRUD with
// variation persistence, reference entities (attribute axes, terms, price
// lists, warehouses, stock types, categories, channels), organization
// entities, and product image uploads.
package handlers

import (
	"github.com/almatienda/catalog-service/internal/refdata"
	"github.com/almatienda/catalog-service/internal/storage"
)

var (
	refCache      *refdata.Cache
	imageStore    storage.Storage
	publicBaseURL string
	maxUploadMB   int
)

// Configure wires the handler package's collaborators. Called once from the
// server before routes are registered.
func Configure(cache *refdata.Cache, store storage.Storage, baseURL string, uploadLimitMB int) {
	refCache = cache
	imageStore = store
	publicBaseURL = baseURL
	maxUploadMB = uploadLimitMB
}
