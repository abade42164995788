package catalog

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher implements Fetcher for testing
type fakeFetcher struct {
	mu       sync.Mutex
	products []Product
	err      error
	calls    int
}

func (f *fakeFetcher) FetchProducts(_ context.Context) ([]Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func product(id int64, name string, price int64) Product {
	return Product{ID: id, Name: name, Price: decimal.NewFromInt(price), Stock: 5}
}

func seededCache(t *testing.T, products ...Product) (*Cache, *fakeFetcher) {
	t.Helper()
	fetcher := &fakeFetcher{products: products}
	cache := NewCache(fetcher, 8, testLogger())
	require.NoError(t, cache.Refresh(context.Background()))
	return cache, fetcher
}

func TestRefresh_ReplacesSnapshot(t *testing.T) {
	cache, _ := seededCache(t, product(1, "Shirt", 1200), product(2, "Jeans", 2200))

	assert.Len(t, cache.Products(), 2)
}

func TestRefresh_FailureKeepsStaleSnapshot(t *testing.T) {
	cache, fetcher := seededCache(t, product(1, "Shirt", 1200))

	fetcher.mu.Lock()
	fetcher.err = errors.New("backend down")
	fetcher.mu.Unlock()

	err := cache.Refresh(context.Background())
	require.Error(t, err)
	assert.Len(t, cache.Products(), 1, "a failed refresh must not discard the previous snapshot")
}

func TestRefresh_ResetsSearchAndPage(t *testing.T) {
	cache, _ := seededCache(t,
		product(1, "Shirt", 1200), product(2, "Jeans", 2200), product(3, "Cap", 400))

	cache.Search("shirt")
	require.NoError(t, cache.Refresh(context.Background()))

	assert.Empty(t, cache.SearchTerm())
	result := cache.Page(1)
	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, 1, result.Page)
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	cache, _ := seededCache(t,
		product(1, "Shirt", 1200), product(2, "T-Shirt", 800), product(3, "Jeans", 2200))

	matches := cache.Search("shirt")

	require.Len(t, matches, 2)
	assert.Equal(t, "Shirt", matches[0].Name)
	assert.Equal(t, "T-Shirt", matches[1].Name)
}

func TestSearch_EmptyTermRestoresIdentityView(t *testing.T) {
	cache, _ := seededCache(t, product(1, "Shirt", 1200), product(2, "Jeans", 2200))

	cache.Search("shirt")
	matches := cache.Search("")

	assert.Len(t, matches, 2)
}

func TestSearch_ResetsPagination(t *testing.T) {
	products := make([]Product, 0, 20)
	for i := int64(1); i <= 20; i++ {
		products = append(products, product(i, "Shirt", 100*i))
	}
	cache, _ := seededCache(t, products...)

	cache.Page(3)
	cache.Search("shirt")

	result := cache.Page(1)
	assert.Equal(t, 1, result.Page)
}

func TestPage_Slicing(t *testing.T) {
	products := make([]Product, 0, 10)
	for i := int64(1); i <= 10; i++ {
		products = append(products, product(i, "Shirt", 100*i))
	}
	cache, _ := seededCache(t, products...)

	first := cache.Page(1)
	assert.Len(t, first.Products, 8)
	assert.Equal(t, 2, first.TotalPages)
	assert.Equal(t, 10, first.TotalCount)

	second := cache.Page(2)
	assert.Len(t, second.Products, 2)
	assert.Equal(t, int64(9), second.Products[0].ID)
}

func TestPage_ClampsOutOfRange(t *testing.T) {
	cache, _ := seededCache(t, product(1, "Shirt", 1200))

	assert.Equal(t, 1, cache.Page(0).Page)
	assert.Equal(t, 1, cache.Page(99).Page)
}

func TestPage_EmptyViewHasOnePage(t *testing.T) {
	fetcher := &fakeFetcher{}
	cache := NewCache(fetcher, 8, testLogger())

	result := cache.Page(1)

	assert.Equal(t, 1, result.TotalPages, "totalPages is at least 1 even when empty")
	assert.Empty(t, result.Products)
}

func TestAppend_AddsAtEndWithoutRefetch(t *testing.T) {
	cache, fetcher := seededCache(t, product(1, "Shirt", 1200))
	callsAfterSeed := fetcher.calls

	cache.Append(product(2, "Jeans", 2200))

	products := cache.Products()
	require.Len(t, products, 2)
	assert.Equal(t, int64(2), products[1].ID)
	assert.Equal(t, callsAfterSeed, fetcher.calls, "append must not trigger a refetch")
}

func TestAppend_RespectsActiveSearch(t *testing.T) {
	cache, _ := seededCache(t, product(1, "Shirt", 1200))

	cache.Search("shirt")
	cache.Append(product(2, "T-Shirt", 800))
	cache.Append(product(3, "Jeans", 2200))

	result := cache.Page(1)
	assert.Equal(t, 2, result.TotalCount, "only matching products join the filtered view")
	assert.Len(t, cache.Products(), 3)
}

func TestGet(t *testing.T) {
	cache, _ := seededCache(t, product(1, "Shirt", 1200))

	found, ok := cache.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Shirt", found.Name)

	_, ok = cache.Get(42)
	assert.False(t, ok)
}

func TestSubscribe_ReceivesLatestSnapshot(t *testing.T) {
	cache, _ := seededCache(t, product(1, "Shirt", 1200))

	var (
		mu       sync.Mutex
		received [][]Product
	)
	cache.Subscribe(func(products []Product) {
		mu.Lock()
		received = append(received, products)
		mu.Unlock()
	})

	cache.Append(product(2, "Jeans", 2200))
	require.NoError(t, cache.Refresh(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 2)
	assert.Len(t, received[0], 2, "append broadcast carries the grown snapshot")
	assert.Len(t, received[1], 1, "refresh broadcast carries the replaced snapshot")
}
