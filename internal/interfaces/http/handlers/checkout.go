// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/your-org/pos-terminal/internal/domain/checkout"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	orchestrator *checkout.Orchestrator
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(orchestrator *checkout.Orchestrator) *CheckoutHandler {
	return &CheckoutHandler{
		orchestrator: orchestrator,
	}
}

// CheckoutRequest represents a checkout attempt from the register
type CheckoutRequest struct {
	CustomerName string          `json:"customer_name"`
	CashPaid     decimal.Decimal `json:"cash_paid"`
	Discount     DiscountRequest `json:"discount"`
}

// Checkout handles POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	discount, err := req.Discount.ToDiscount()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	result, err := h.orchestrator.Checkout(c.Request.Context(), checkout.Request{
		CustomerName: req.CustomerName,
		CashPaid:     req.CashPaid,
		Discount:     discount,
	})
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Checkout completed successfully",
		"data":    result,
	})
}

// Status handles GET /checkout/status
func (h *CheckoutHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"state": h.orchestrator.State(),
		},
	})
}

func (h *CheckoutHandler) respondCheckoutError(c *gin.Context, err error) {
	if checkout.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	if errors.Is(err, checkout.ErrCheckoutInProgress) {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	respondBackendError(c, err)
}
