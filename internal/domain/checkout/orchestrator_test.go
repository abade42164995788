package checkout

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-terminal/internal/domain/cart"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
	"github.com/your-org/pos-terminal/internal/domain/orders"
	"github.com/your-org/pos-terminal/internal/domain/pricing"
)

// mockSubmitter implements OrderSubmitter and records every draft it receives
type mockSubmitter struct {
	mu      sync.Mutex
	drafts  []orders.SaleOrder
	nextID  int64
	err     error
	release chan struct{}
}

func (m *mockSubmitter) CreateOrder(_ context.Context, draft orders.SaleOrder) (orders.SaleOrder, error) {
	m.mu.Lock()
	m.drafts = append(m.drafts, draft)
	release := m.release
	m.mu.Unlock()

	if release != nil {
		<-release
	}
	if m.err != nil {
		return orders.SaleOrder{}, m.err
	}

	confirmed := draft
	m.nextID++
	confirmed.ID = m.nextID
	return confirmed, nil
}

func (m *mockSubmitter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.drafts)
}

type noopCatalogFetcher struct{}

func (noopCatalogFetcher) FetchProducts(_ context.Context) ([]catalog.Product, error) {
	return nil, nil
}

type noopOrderFetcher struct{}

func (noopOrderFetcher) FetchOrders(_ context.Context) ([]orders.SaleOrder, error) {
	return nil, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fixture struct {
	store        *cart.MemoryStore
	orderCache   *orders.Cache
	submitter    *mockSubmitter
	orchestrator *Orchestrator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := testLogger()
	store := cart.NewMemoryStore()
	orderCache := orders.NewCache(noopOrderFetcher{}, logger)
	catalogCache := catalog.NewCache(noopCatalogFetcher{}, 8, logger)
	submitter := &mockSubmitter{}

	return &fixture{
		store:      store,
		orderCache: orderCache,
		submitter:  submitter,
		orchestrator: NewOrchestrator(
			store, orderCache, catalogCache, submitter,
			"Walk-in Customer", false, logger,
		),
	}
}

func (f *fixture) addProduct(t *testing.T, id int64, name string, price int64) {
	t.Helper()
	require.NoError(t, f.store.AddProduct(catalog.Product{
		ID:    id,
		Name:  name,
		Price: decimal.NewFromInt(price),
		Stock: 10,
	}))
}

func TestCheckout_Success(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, 1, "Shirt", 1200)
	f.addProduct(t, 1, "Shirt", 1200)

	result, err := f.orchestrator.Checkout(context.Background(), Request{
		CustomerName: "Alice",
		CashPaid:     decimal.NewFromInt(2200),
		Discount:     pricing.PercentDiscount(decimal.NewFromInt(10)),
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Reference)
	assert.Equal(t, "Alice", result.Order.CustomerName)
	assert.True(t, result.Totals.Subtotal.Equal(decimal.NewFromInt(2400)))
	assert.True(t, result.Totals.Total.Equal(decimal.NewFromInt(2160)))
	assert.True(t, result.Totals.Change.Equal(decimal.NewFromInt(40)))

	lines, _ := f.store.Lines()
	assert.Empty(t, lines, "the cart is cleared after a confirmed order")
	assert.Len(t, f.orderCache.Orders(), 1, "the confirmed order joins the order cache")
	assert.Equal(t, StateIdle, f.orchestrator.State())
}

func TestCheckout_EmptyCustomerNameDefaultsToWalkIn(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, 1, "Shirt", 1200)

	result, err := f.orchestrator.Checkout(context.Background(), Request{
		CustomerName: "   ",
		CashPaid:     decimal.NewFromInt(1200),
		Discount:     pricing.NoDiscount(),
	})

	require.NoError(t, err)
	assert.Equal(t, "Walk-in Customer", result.Order.CustomerName)
}

func TestCheckout_InsufficientCashRejectedBeforeSubmit(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, 1, "Shirt", 1200)

	_, err := f.orchestrator.Checkout(context.Background(), Request{
		CashPaid: decimal.NewFromInt(1000),
		Discount: pricing.NoDiscount(),
	})

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, 0, f.submitter.callCount(), "validation failures never reach the backend")

	lines, _ := f.store.Lines()
	assert.Len(t, lines, 1, "the cart is untouched by a rejected checkout")
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.orchestrator.Checkout(context.Background(), Request{
		CashPaid: decimal.NewFromInt(100),
		Discount: pricing.NoDiscount(),
	})

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, 0, f.submitter.callCount())
}

func TestCheckout_CollectsAllValidationReasons(t *testing.T) {
	f := newFixture(t)

	_, err := f.orchestrator.Checkout(context.Background(), Request{
		CashPaid: decimal.NewFromInt(-5),
		Discount: pricing.PercentDiscount(decimal.NewFromInt(150)),
	})

	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.GreaterOrEqual(t, len(ve.Reasons), 3, "bad discount, negative cash and empty cart are all reported")
}

func TestCheckout_SubmitFailurePreservesCart(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, 1, "Shirt", 1200)
	f.submitter.err = errors.New("backend rejected the order")

	_, err := f.orchestrator.Checkout(context.Background(), Request{
		CashPaid: decimal.NewFromInt(1500),
		Discount: pricing.NoDiscount(),
	})

	require.Error(t, err)
	assert.Equal(t, 1, f.submitter.callCount(), "exactly one submission attempt, no retry")

	lines, _ := f.store.Lines()
	assert.Len(t, lines, 1, "a failed submission must not lose the cart")
	assert.Empty(t, f.orderCache.Orders())
	assert.Equal(t, StateIdle, f.orchestrator.State(), "the orchestrator returns to idle after a failure")
}

func TestCheckout_ConcurrentAttemptRejected(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, 1, "Shirt", 1200)
	f.submitter.release = make(chan struct{})

	firstDone := make(chan error, 1)
	go func() {
		_, err := f.orchestrator.Checkout(context.Background(), Request{
			CashPaid: decimal.NewFromInt(1500),
			Discount: pricing.NoDiscount(),
		})
		firstDone <- err
	}()

	// Wait until the first attempt is parked inside the submitter
	require.Eventually(t, func() bool {
		return f.submitter.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	_, err := f.orchestrator.Checkout(context.Background(), Request{
		CashPaid: decimal.NewFromInt(1500),
		Discount: pricing.NoDiscount(),
	})
	assert.ErrorIs(t, err, ErrCheckoutInProgress)

	close(f.submitter.release)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 1, f.submitter.callCount(), "the rejected attempt never reached the backend")
}

func TestCheckout_DraftFreezesCartSnapshot(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, 1, "Shirt", 1200)
	f.addProduct(t, 2, "Jeans", 2200)

	_, err := f.orchestrator.Checkout(context.Background(), Request{
		CashPaid: decimal.NewFromInt(3400),
		Discount: pricing.NoDiscount(),
	})
	require.NoError(t, err)

	f.submitter.mu.Lock()
	defer f.submitter.mu.Unlock()
	require.Len(t, f.submitter.drafts, 1)
	draft := f.submitter.drafts[0]
	require.Len(t, draft.Items, 2)
	assert.Equal(t, "Shirt", draft.Items[0].Name)
	assert.Equal(t, "Jeans", draft.Items[1].Name)
	assert.True(t, draft.Total.Equal(decimal.NewFromInt(3400)))
	assert.True(t, draft.Change.IsZero())
	assert.False(t, draft.Date.IsZero())
}
