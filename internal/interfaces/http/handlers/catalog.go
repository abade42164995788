// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-terminal/internal/config"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
	"github.com/your-org/pos-terminal/internal/infrastructure/backend"
)

// CatalogHandler handles product catalog endpoints
type CatalogHandler struct {
	cache  *catalog.Cache
	client *backend.Client
	config *config.Config
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cache *catalog.Cache, client *backend.Client, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{
		cache:  cache,
		client: client,
		config: cfg,
	}
}

// ListProducts handles GET /catalog
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	if term, ok := c.GetQuery("search"); ok {
		h.cache.Search(term)
	}

	page := 1
	if pageParam := c.Query("page"); pageParam != "" {
		parsed, err := strconv.Atoi(pageParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid page number",
			})
			return
		}
		page = parsed
	}

	result := h.cache.Page(page)

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    result,
		"search":  h.cache.SearchTerm(),
	})
}

// CreateProduct handles POST /catalog
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req backend.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	draft := catalog.Product{Name: req.Name, Price: req.Price, Stock: req.Stock}
	if err := draft.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	created, err := h.client.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondBackendError(c, err)
		return
	}

	// Optimistic local insertion, no full refetch needed
	h.cache.Append(created)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    created,
	})
}

// UpdateStockRequest represents a stock correction request
type UpdateStockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

// UpdateStock handles PUT /catalog/:id/stock
func (h *CatalogHandler) UpdateStock(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	if *req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Stock cannot be negative",
		})
		return
	}

	updated, err := h.client.UpdateProductStock(c.Request.Context(), id, *req.Stock)
	if err != nil {
		respondBackendError(c, err)
		return
	}

	// The cached snapshot is stale now; a failed refresh keeps it usable
	if err := h.cache.Refresh(c.Request.Context()); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "Stock updated, catalog refresh pending",
			"data":    updated,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock updated successfully",
		"data":    updated,
	})
}

// RefreshCatalog handles POST /catalog/refresh
func (h *CatalogHandler) RefreshCatalog(c *gin.Context) {
	if err := h.cache.Refresh(c.Request.Context()); err != nil {
		respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Catalog refreshed successfully",
		"data": gin.H{
			"count": len(h.cache.Products()),
		},
	})
}
