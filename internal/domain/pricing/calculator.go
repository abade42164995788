// internal/domain/pricing/calculator.go
package pricing

import (
	"github.com/shopspring/decimal"
)

// Line is the minimal view of a cart line the calculator needs
type Line struct {
	Price    decimal.Decimal
	Quantity int
}

// Totals represents the calculated amounts for a cart snapshot
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
	CashPaid       decimal.Decimal `json:"cash_paid"`
	Change         decimal.Decimal `json:"change"`
}

// Subtotal returns the sum of price * quantity over all lines.
// An empty cart yields zero.
func Subtotal(lines []Line) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return subtotal
}

// DiscountFor returns the discount amount for a subtotal. The result is
// never negative and is not clamped to the subtotal; clamping happens in
// Total.
func DiscountFor(subtotal decimal.Decimal, d Discount) decimal.Decimal {
	switch d.Kind {
	case DiscountPercent:
		return subtotal.Mul(d.Value).Div(decimal.NewFromInt(100))
	case DiscountAmount:
		return d.Value
	default:
		return decimal.Zero
	}
}

// Total returns max(0, subtotal - discountAmount). A discount larger than
// the subtotal floors the total at zero rather than producing an error.
func Total(subtotal, discountAmount decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(discountAmount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Change returns cashPaid - total. A negative result signals insufficient
// payment and is surfaced to the caller, not hidden.
func Change(total, cashPaid decimal.Decimal) decimal.Decimal {
	return cashPaid.Sub(total)
}

// Calculate derives the full totals breakdown for a cart snapshot,
// discount and cash tendered.
func Calculate(lines []Line, d Discount, cashPaid decimal.Decimal) Totals {
	subtotal := Subtotal(lines)
	discountAmount := DiscountFor(subtotal, d)
	total := Total(subtotal, discountAmount)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          total,
		CashPaid:       cashPaid,
		Change:         Change(total, cashPaid),
	}
}
