// internal/domain/catalog/cache.go
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Fetcher retrieves the authoritative product list from the backend
type Fetcher interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

// Subscriber receives the latest product snapshot after every replacement
// or append. Only the latest snapshot is delivered, never a change history.
type Subscriber func(products []Product)

// PageResult represents one page of the filtered product view
type PageResult struct {
	Products   []Product `json:"products"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
	TotalCount int       `json:"total_count"`
}

// Cache is the in-memory reflection of the remote product list. It holds
// the full snapshot plus a derived filtered view and pagination cursor.
// Refresh failures preserve the previous snapshot so the register keeps
// working on stale data until a retry succeeds.
type Cache struct {
	mu          sync.Mutex
	fetcher     Fetcher
	logger      *logrus.Logger
	pageSize    int
	products    []Product
	filtered    []Product
	searchTerm  string
	page        int
	subscribers []Subscriber
	sfg         singleflight.Group // Collapses concurrent refreshes
}

// NewCache creates a new catalog cache
func NewCache(fetcher Fetcher, pageSize int, logger *logrus.Logger) *Cache {
	return &Cache{
		fetcher:  fetcher,
		logger:   logger,
		pageSize: pageSize,
		page:     1,
	}
}

// Refresh fetches the authoritative product list and replaces the snapshot.
// On success the filtered view is reset to the unfiltered snapshot and the
// page cursor returns to 1. On failure the prior snapshot is preserved and
// the fetch error is returned for the caller to surface.
func (c *Cache) Refresh(ctx context.Context) error {
	_, err, _ := c.sfg.Do("refresh", func() (interface{}, error) {
		products, err := c.fetcher.FetchProducts(ctx)
		if err != nil {
			c.logger.WithError(err).Warn("Product refresh failed, keeping stale catalog")
			return nil, fmt.Errorf("failed to refresh products: %w", err)
		}

		c.mu.Lock()
		c.products = products
		c.searchTerm = ""
		c.filtered = products
		c.page = 1
		c.mu.Unlock()

		c.logger.WithField("count", len(products)).Info("Catalog refreshed")
		c.notify()
		return nil, nil
	})
	return err
}

// Search filters the snapshot by case-insensitive substring match on the
// product name. An empty term restores the identity view. Any new search
// resets the page cursor to the first page.
func (c *Cache) Search(term string) []Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.searchTerm = term
	c.page = 1

	if term == "" {
		c.filtered = c.products
		return copyProducts(c.filtered)
	}

	filtered := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if p.MatchesSearch(term) {
			filtered = append(filtered, p)
		}
	}
	c.filtered = filtered

	return copyProducts(filtered)
}

// Page moves the cursor to the requested page of the filtered view and
// returns it. Page numbers are clamped to [1, totalPages]; totalPages is
// at least 1 even when the view is empty.
func (c *Cache) Page(number int) PageResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	totalPages := (len(c.filtered) + c.pageSize - 1) / c.pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}
	c.page = number

	start := (number - 1) * c.pageSize
	end := start + c.pageSize
	if start > len(c.filtered) {
		start = len(c.filtered)
	}
	if end > len(c.filtered) {
		end = len(c.filtered)
	}

	return PageResult{
		Products:   copyProducts(c.filtered[start:end]),
		Page:       number,
		PageSize:   c.pageSize,
		TotalPages: totalPages,
		TotalCount: len(c.filtered),
	}
}

// Append inserts a backend-confirmed product at the end of the snapshot so
// the register does not need a full refetch after a creation.
func (c *Cache) Append(p Product) {
	c.mu.Lock()
	c.products = append(copyProducts(c.products), p)
	if p.MatchesSearch(c.searchTerm) {
		c.filtered = append(copyProducts(c.filtered), p)
	}
	c.mu.Unlock()

	c.notify()
}

// Get returns the cached product with the given ID
func (c *Cache) Get(id int64) (Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Products returns a copy of the full, unfiltered snapshot
func (c *Cache) Products() []Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyProducts(c.products)
}

// SearchTerm returns the currently applied search term
func (c *Cache) SearchTerm() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchTerm
}

// Subscribe registers a subscriber for snapshot replacements
func (c *Cache) Subscribe(s Subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, s)
}

func (c *Cache) notify() {
	c.mu.Lock()
	snapshot := copyProducts(c.products)
	subscribers := make([]Subscriber, len(c.subscribers))
	copy(subscribers, c.subscribers)
	c.mu.Unlock()

	for _, s := range subscribers {
		s(snapshot)
	}
}

func copyProducts(products []Product) []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}
