// internal/domain/orders/entity.go
package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a frozen copy of a cart line at the moment of checkout. It is
// decoupled from any later catalog or cart change.
type Item struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// SaleOrder represents a confirmed sale. The backend assigns the ID; a
// zero ID marks a client-side draft awaiting confirmation. Orders are
// immutable once created.
type SaleOrder struct {
	ID           int64           `json:"id"`
	CustomerName string          `json:"customer_name"`
	Items        []Item          `json:"items"`
	Total        decimal.Decimal `json:"total"`
	CashPaid     decimal.Decimal `json:"cash_paid"`
	Change       decimal.Decimal `json:"change"`
	Date         time.Time       `json:"date"`
}

// ItemCount returns the number of distinct lines in the order
func (o SaleOrder) ItemCount() int {
	return len(o.Items)
}

// PlacedOn reports whether the order was created on the given calendar
// day in local time.
func (o SaleOrder) PlacedOn(day time.Time) bool {
	y1, m1, d1 := o.Date.Local().Date()
	y2, m2, d2 := day.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
