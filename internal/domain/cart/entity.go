// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-terminal/internal/domain/pricing"
)

// Line represents one row in the cart, uniquely keyed by product ID.
// Name and price are snapshotted from the catalog at add-time; the price
// may be overridden locally for manual price negotiation.
type Line struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"added_at"`
}

// LineTotal returns price * quantity for the line
func (l Line) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// PricingLines converts cart lines to calculator input
func PricingLines(lines []Line) []pricing.Line {
	out := make([]pricing.Line, len(lines))
	for i, l := range lines {
		out[i] = pricing.Line{Price: l.Price, Quantity: l.Quantity}
	}
	return out
}
