// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/your-org/pos-terminal/internal/domain/cart"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
	"github.com/your-org/pos-terminal/internal/domain/pricing"
)

// CartHandler handles cart endpoints for the register
type CartHandler struct {
	cartStore cart.Store
	catalog   *catalog.Cache
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartStore cart.Store, catalogCache *catalog.Cache) *CartHandler {
	return &CartHandler{
		cartStore: cartStore,
		catalog:   catalogCache,
	}
}

// AddItemRequest represents add to cart request
type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

// OverridePriceRequest represents a manual price negotiation request
type OverridePriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

// GetCart handles GET /cart. Optional cash_paid, discount_kind and
// discount_value query parameters feed the totals calculation so the
// register can show live change while the cashier types.
func (h *CartHandler) GetCart(c *gin.Context) {
	discount, cashPaid, err := paymentInputsFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	h.respondCart(c, http.StatusOK, "Cart retrieved successfully", discount, cashPaid)
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, ok := h.catalog.Get(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found in catalog",
		})
		return
	}

	if err := h.cartStore.AddProduct(product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	h.respondCart(c, http.StatusOK, "Item added to cart successfully", pricing.NoDiscount(), decimal.Zero)
}

// IncrementItem handles POST /cart/items/:index/increment
func (h *CartHandler) IncrementItem(c *gin.Context) {
	h.lineOperation(c, h.cartStore.IncrementLine, "Item quantity incremented")
}

// DecrementItem handles POST /cart/items/:index/decrement. A line at
// quantity 1 is removed entirely.
func (h *CartHandler) DecrementItem(c *gin.Context) {
	h.lineOperation(c, h.cartStore.DecrementLine, "Item quantity decremented")
}

// RemoveItem handles DELETE /cart/items/:index
func (h *CartHandler) RemoveItem(c *gin.Context) {
	h.lineOperation(c, h.cartStore.RemoveLine, "Item removed from cart")
}

// OverridePrice handles PUT /cart/items/:index/price. Non-positive prices
// leave the line unchanged; manual price negotiation only goes down to a
// positive amount.
func (h *CartHandler) OverridePrice(c *gin.Context) {
	index, ok := h.lineIndex(c)
	if !ok {
		return
	}

	var req OverridePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.cartStore.OverridePrice(index, req.Price); err != nil {
		h.respondLineError(c, err)
		return
	}

	h.respondCart(c, http.StatusOK, "Price updated", pricing.NoDiscount(), decimal.Zero)
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cartStore.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	h.respondCart(c, http.StatusOK, "Cart cleared", pricing.NoDiscount(), decimal.Zero)
}

// Private helpers

func (h *CartHandler) lineOperation(c *gin.Context, op func(int) error, message string) {
	index, ok := h.lineIndex(c)
	if !ok {
		return
	}

	if err := op(index); err != nil {
		h.respondLineError(c, err)
		return
	}

	h.respondCart(c, http.StatusOK, message, pricing.NoDiscount(), decimal.Zero)
}

func (h *CartHandler) lineIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid line index",
		})
		return 0, false
	}
	return index, true
}

func (h *CartHandler) respondLineError(c *gin.Context, err error) {
	if errors.Is(err, cart.ErrIndexOutOfRange) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Cart line not found",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": err.Error(),
	})
}

func (h *CartHandler) respondCart(c *gin.Context, status int, message string, discount pricing.Discount, cashPaid decimal.Decimal) {
	lines, err := h.cartStore.Lines()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	totals := pricing.Calculate(cart.PricingLines(lines), discount, cashPaid)

	c.JSON(status, gin.H{
		"message": message,
		"data": gin.H{
			"lines":  lines,
			"totals": totals,
		},
	})
}

func paymentInputsFromQuery(c *gin.Context) (pricing.Discount, decimal.Decimal, error) {
	cashPaid := decimal.Zero
	if raw := c.Query("cash_paid"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return pricing.NoDiscount(), decimal.Zero, errors.New("invalid cash_paid value")
		}
		cashPaid = parsed
	}

	req := DiscountRequest{Kind: c.Query("discount_kind")}
	if raw := c.Query("discount_value"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return pricing.NoDiscount(), decimal.Zero, errors.New("invalid discount_value")
		}
		req.Value = parsed
	}

	discount, err := req.ToDiscount()
	if err != nil {
		return pricing.NoDiscount(), decimal.Zero, err
	}
	return discount, cashPaid, nil
}
