// internal/domain/orders/cache.go
package orders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Fetcher retrieves the confirmed order list from the backend
type Fetcher interface {
	FetchOrders(ctx context.Context) ([]SaleOrder, error)
}

// Subscriber receives the latest order snapshot after every replacement
// or append
type Subscriber func(orders []SaleOrder)

// Cache is the in-memory reflection of the remote order list. Like the
// catalog cache it keeps stale data when a refresh fails, so the register
// can still show past orders until a retry succeeds.
type Cache struct {
	mu          sync.Mutex
	fetcher     Fetcher
	logger      *logrus.Logger
	orders      []SaleOrder
	subscribers []Subscriber
}

// NewCache creates a new order cache
func NewCache(fetcher Fetcher, logger *logrus.Logger) *Cache {
	return &Cache{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Refresh fetches the confirmed order list and replaces the snapshot on
// success. On failure the prior snapshot is preserved and the fetch error
// is returned for the caller to surface.
func (c *Cache) Refresh(ctx context.Context) error {
	fetched, err := c.fetcher.FetchOrders(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("Order refresh failed, keeping stale orders")
		return fmt.Errorf("failed to refresh orders: %w", err)
	}

	c.mu.Lock()
	c.orders = fetched
	c.mu.Unlock()

	c.logger.WithField("count", len(fetched)).Info("Orders refreshed")
	c.notify()
	return nil
}

// FilterByDate returns orders created on the given calendar day in local
// time. A zero time means no filter and returns all orders. A day with no
// matching orders yields an empty sequence, not an error.
func (c *Cache) FilterByDate(day time.Time) []SaleOrder {
	c.mu.Lock()
	defer c.mu.Unlock()

	if day.IsZero() {
		return copyOrders(c.orders)
	}

	filtered := make([]SaleOrder, 0, len(c.orders))
	for _, o := range c.orders {
		if o.PlacedOn(day) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// Append inserts a backend-confirmed order at the end of the snapshot so
// a successful checkout does not force a full refetch.
func (c *Cache) Append(o SaleOrder) {
	c.mu.Lock()
	c.orders = append(copyOrders(c.orders), o)
	c.mu.Unlock()

	c.notify()
}

// Orders returns a copy of the full snapshot
func (c *Cache) Orders() []SaleOrder {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyOrders(c.orders)
}

// Subscribe registers a subscriber for snapshot replacements
func (c *Cache) Subscribe(s Subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, s)
}

func (c *Cache) notify() {
	c.mu.Lock()
	snapshot := copyOrders(c.orders)
	subscribers := make([]Subscriber, len(c.subscribers))
	copy(subscribers, c.subscribers)
	c.mu.Unlock()

	for _, s := range subscribers {
		s(snapshot)
	}
}

func copyOrders(orders []SaleOrder) []SaleOrder {
	out := make([]SaleOrder, len(orders))
	copy(out, orders)
	return out
}
