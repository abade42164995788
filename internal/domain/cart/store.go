// internal/domain/cart/store.go
package cart

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
	"github.com/your-org/pos-terminal/internal/domain/pricing"
)

// ErrIndexOutOfRange is returned for line operations with an invalid index
var ErrIndexOutOfRange = fmt.Errorf("cart line index out of range")

// Store is the cart owned by one register. Lines keep insertion order and
// are keyed by product ID; adding an already-present product increments its
// quantity instead of duplicating the line, and quantity is always at
// least 1 for every resident line.
type Store interface {
	Lines() ([]Line, error)
	AddProduct(p catalog.Product) error
	IncrementLine(index int) error
	DecrementLine(index int) error
	RemoveLine(index int) error
	OverridePrice(index int, price decimal.Decimal) error
	Clear() error
}

// MemoryStore is the default in-process cart store
type MemoryStore struct {
	mu    sync.Mutex
	lines []Line
}

// NewMemoryStore creates an empty in-memory cart store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Lines returns a copy of the cart lines in insertion order
func (s *MemoryStore) Lines() ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLines(s.lines), nil
}

// AddProduct increments the quantity of an existing line for the product,
// or appends a new line snapshotting the product's current name and price.
func (s *MemoryStore) AddProduct(p catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = addProduct(s.lines, p)
	return nil
}

// IncrementLine increases the quantity of the line at the given position
func (s *MemoryStore) IncrementLine(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.lines) {
		return ErrIndexOutOfRange
	}
	s.lines[index].Quantity++
	return nil
}

// DecrementLine decreases the quantity of the line at the given position.
// A line already at quantity 1 is removed instead of reaching quantity 0;
// a zero-quantity line is never observable.
func (s *MemoryStore) DecrementLine(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.lines) {
		return ErrIndexOutOfRange
	}

	if s.lines[index].Quantity > 1 {
		s.lines[index].Quantity--
		return nil
	}
	s.lines = removeLine(s.lines, index)
	return nil
}

// RemoveLine removes the line at the given position
func (s *MemoryStore) RemoveLine(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.lines) {
		return ErrIndexOutOfRange
	}
	s.lines = removeLine(s.lines, index)
	return nil
}

// OverridePrice sets a negotiated price on the line at the given position.
// Non-positive prices are rejected silently and leave the line unchanged.
func (s *MemoryStore) OverridePrice(index int, price decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.lines) {
		return ErrIndexOutOfRange
	}
	s.lines[index] = overridePrice(s.lines[index], price)
	return nil
}

// Clear empties the cart; used after a successful checkout
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	return nil
}

// Subtotal returns the sum of line totals for the current cart
func (s *MemoryStore) Subtotal() (decimal.Decimal, error) {
	lines, err := s.Lines()
	if err != nil {
		return decimal.Zero, err
	}
	return pricing.Subtotal(PricingLines(lines)), nil
}

// Shared mutation helpers, used by both store implementations so the cart
// invariants live in one place.

func addProduct(lines []Line, p catalog.Product) []Line {
	for i := range lines {
		if lines[i].ProductID == p.ID {
			lines[i].Quantity++
			return lines
		}
	}
	return append(lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
		AddedAt:   nowUTC(),
	})
}

func overridePrice(line Line, price decimal.Decimal) Line {
	if !price.IsPositive() {
		return line
	}
	line.Price = price
	return line
}

func removeLine(lines []Line, index int) []Line {
	return append(lines[:index], lines[index+1:]...)
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

func copyLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
