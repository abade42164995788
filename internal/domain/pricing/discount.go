// internal/domain/pricing/discount.go
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DiscountKind identifies how a discount value is interpreted
type DiscountKind string

const (
	DiscountNone    DiscountKind = "none"
	DiscountPercent DiscountKind = "percent"
	DiscountAmount  DiscountKind = "amount"
)

// Discount is a single cart-level price modifier. It is either a percentage
// of the subtotal (0-100) or a fixed amount, never both.
type Discount struct {
	Kind  DiscountKind    `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

// NoDiscount returns the zero discount
func NoDiscount() Discount {
	return Discount{Kind: DiscountNone}
}

// PercentDiscount creates a percentage discount
func PercentDiscount(pct decimal.Decimal) Discount {
	return Discount{Kind: DiscountPercent, Value: pct}
}

// AmountDiscount creates a fixed amount discount
func AmountDiscount(amount decimal.Decimal) Discount {
	return Discount{Kind: DiscountAmount, Value: amount}
}

// Validate checks the discount value against its kind
func (d Discount) Validate() error {
	switch d.Kind {
	case DiscountNone:
		return nil
	case DiscountPercent:
		if d.Value.IsNegative() || d.Value.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("percentage discount must be between 0 and 100, got %s", d.Value)
		}
		return nil
	case DiscountAmount:
		if d.Value.IsNegative() {
			return fmt.Errorf("amount discount cannot be negative, got %s", d.Value)
		}
		return nil
	default:
		return fmt.Errorf("unknown discount kind %q", d.Kind)
	}
}
