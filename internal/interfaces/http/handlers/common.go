// internal/interfaces/http/handlers/common.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/your-org/pos-terminal/internal/domain/pricing"
	"github.com/your-org/pos-terminal/internal/infrastructure/backend"
)

// DiscountRequest represents the cart-level discount in API payloads
type DiscountRequest struct {
	Kind  string          `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

// ToDiscount converts the payload to a domain discount. An empty kind
// means no discount.
func (r DiscountRequest) ToDiscount() (pricing.Discount, error) {
	switch r.Kind {
	case "", string(pricing.DiscountNone):
		return pricing.NoDiscount(), nil
	case string(pricing.DiscountPercent):
		d := pricing.PercentDiscount(r.Value)
		return d, d.Validate()
	case string(pricing.DiscountAmount):
		d := pricing.AmountDiscount(r.Value)
		return d, d.Validate()
	default:
		d := pricing.Discount{Kind: pricing.DiscountKind(r.Kind), Value: r.Value}
		return d, d.Validate()
	}
}

// respondBackendError maps backend boundary failures to HTTP responses.
// Both fetch and submit failures are recoverable; the register UI offers
// a retry and no local state is lost.
func respondBackendError(c *gin.Context, err error) {
	if backend.IsFetchError(err) || backend.IsSubmitError(err) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     err.Error(),
			"retryable": true,
		})
		return
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"error": "Backend request timed out",
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": err.Error(),
	})
}
