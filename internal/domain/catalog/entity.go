// internal/domain/catalog/entity.go
package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable product as known to the backend. The cache
// holds a read-mostly snapshot; products change only through the backend.
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
	UpdatedAt time.Time       `json:"updated_at,omitempty"`
}

// Validate checks the product invariants
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product name is required")
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("product price must be positive, got %s", p.Price)
	}
	if p.Stock < 0 {
		return fmt.Errorf("product stock cannot be negative, got %d", p.Stock)
	}
	return nil
}

// IsInStock reports whether the product has remaining stock
func (p Product) IsInStock() bool {
	return p.Stock > 0
}

// MatchesSearch reports whether the product name contains the term,
// case-insensitively. An empty term matches everything.
func (p Product) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(term))
}
