// internal/interfaces/http/handlers/orders.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-terminal/internal/domain/orders"
)

// OrdersHandler handles past order endpoints
type OrdersHandler struct {
	cache *orders.Cache
}

// NewOrdersHandler creates a new orders handler
func NewOrdersHandler(cache *orders.Cache) *OrdersHandler {
	return &OrdersHandler{
		cache: cache,
	}
}

// ListOrders handles GET /orders. An optional date=YYYY-MM-DD parameter
// filters by local calendar day; a day with no orders yields an empty
// list, not an error.
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	var day time.Time
	if dateParam := c.Query("date"); dateParam != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateParam, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date, expected YYYY-MM-DD",
			})
			return
		}
		day = parsed
	}

	filtered := h.cache.FilterByDate(day)

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data": gin.H{
			"orders": filtered,
			"count":  len(filtered),
		},
	})
}

// RefreshOrders handles POST /orders/refresh
func (h *OrdersHandler) RefreshOrders(c *gin.Context) {
	if err := h.cache.Refresh(c.Request.Context()); err != nil {
		respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders refreshed successfully",
		"data": gin.H{
			"count": len(h.cache.Orders()),
		},
	})
}
