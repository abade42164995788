// internal/domain/checkout/orchestrator.go
package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-terminal/internal/domain/cart"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
	"github.com/your-org/pos-terminal/internal/domain/orders"
	"github.com/your-org/pos-terminal/internal/domain/pricing"
)

// State represents the orchestrator state machine position
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
)

// ErrCheckoutInProgress is returned when a checkout is requested while a
// previous one is still submitting. The orchestrator never issues two
// concurrent backend calls for one register.
var ErrCheckoutInProgress = errors.New("a checkout is already in progress")

// ValidationError reports user input problems found before submission.
// No backend call is made when validation fails.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "checkout validation failed: " + strings.Join(e.Reasons, "; ")
}

// IsValidationError reports whether err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// OrderSubmitter is the order-creation boundary
type OrderSubmitter interface {
	CreateOrder(ctx context.Context, draft orders.SaleOrder) (orders.SaleOrder, error)
}

// Request represents one checkout attempt from the register
type Request struct {
	CustomerName string
	CashPaid     decimal.Decimal
	Discount     pricing.Discount
}

// Result represents a confirmed checkout
type Result struct {
	Reference string           `json:"reference"`
	Order     orders.SaleOrder `json:"order"`
	Totals    pricing.Totals   `json:"totals"`
}

// Orchestrator converts the cart into a persisted order. It validates the
// cart and payment, submits the order draft exactly once per attempt, and
// reconciles the cart and order cache on success. On failure the cart is
// left intact so nothing is lost.
type Orchestrator struct {
	mu           sync.Mutex
	state        State
	cartStore    cart.Store
	orderCache   *orders.Cache
	catalogCache *catalog.Cache
	submitter    OrderSubmitter
	logger       *logrus.Logger

	walkInCustomerName   string
	refreshAfterCheckout bool
	now                  func() time.Time
}

// NewOrchestrator creates a new checkout orchestrator
func NewOrchestrator(
	cartStore cart.Store,
	orderCache *orders.Cache,
	catalogCache *catalog.Cache,
	submitter OrderSubmitter,
	walkInCustomerName string,
	refreshAfterCheckout bool,
	logger *logrus.Logger,
) *Orchestrator {
	return &Orchestrator{
		state:                StateIdle,
		cartStore:            cartStore,
		orderCache:           orderCache,
		catalogCache:         catalogCache,
		submitter:            submitter,
		logger:               logger,
		walkInCustomerName:   walkInCustomerName,
		refreshAfterCheckout: refreshAfterCheckout,
		now:                  func() time.Time { return time.Now().UTC() },
	}
}

// State returns the current state machine position
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Checkout runs one checkout attempt: Idle -> Validating -> Submitting and
// back to Idle after either outcome. A second call while one is in flight
// returns ErrCheckoutInProgress.
func (o *Orchestrator) Checkout(ctx context.Context, req Request) (*Result, error) {
	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return nil, ErrCheckoutInProgress
	}
	o.state = StateValidating
	o.mu.Unlock()

	defer o.setState(StateIdle)

	lines, totals, err := o.validate(req)
	if err != nil {
		return nil, err
	}

	o.setState(StateSubmitting)

	reference := uuid.New().String()
	draft := o.freezeOrder(req, lines, totals)

	o.logger.WithFields(logrus.Fields{
		"reference": reference,
		"items":     len(draft.Items),
		"total":     draft.Total,
	}).Info("Submitting order")

	// Exactly one boundary call per attempt, no automatic retry
	confirmed, err := o.submitter.CreateOrder(ctx, draft)
	if err != nil {
		o.logger.WithError(err).WithField("reference", reference).Error("Order submission failed, cart preserved")
		return nil, err
	}

	if err := o.cartStore.Clear(); err != nil {
		o.logger.WithError(err).Warn("Failed to clear cart after confirmed order")
	}
	o.orderCache.Append(confirmed)

	// Stock levels may have changed server-side
	if o.refreshAfterCheckout {
		go func() {
			if err := o.catalogCache.Refresh(context.Background()); err != nil {
				o.logger.WithError(err).Warn("Post-checkout catalog refresh failed")
			}
		}()
	}

	o.logger.WithFields(logrus.Fields{
		"reference": reference,
		"order_id":  confirmed.ID,
	}).Info("Checkout completed")

	return &Result{
		Reference: reference,
		Order:     confirmed,
		Totals:    totals,
	}, nil
}

func (o *Orchestrator) validate(req Request) ([]cart.Line, pricing.Totals, error) {
	var reasons []string

	if err := req.Discount.Validate(); err != nil {
		reasons = append(reasons, err.Error())
	}
	if req.CashPaid.IsNegative() {
		reasons = append(reasons, "cash paid cannot be negative")
	}

	lines, err := o.cartStore.Lines()
	if err != nil {
		return nil, pricing.Totals{}, err
	}
	if len(lines) == 0 {
		reasons = append(reasons, "cart is empty")
	}

	totals := pricing.Calculate(cart.PricingLines(lines), req.Discount, req.CashPaid)
	if totals.Change.IsNegative() {
		reasons = append(reasons, "insufficient cash paid")
	}

	if len(reasons) > 0 {
		return nil, pricing.Totals{}, &ValidationError{Reasons: reasons}
	}
	return lines, totals, nil
}

// freezeOrder copies the cart into an immutable order draft, decoupled
// from subsequent cart or catalog changes.
func (o *Orchestrator) freezeOrder(req Request, lines []cart.Line, totals pricing.Totals) orders.SaleOrder {
	items := make([]orders.Item, len(lines))
	for i, l := range lines {
		items[i] = orders.Item{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
		}
	}

	customerName := strings.TrimSpace(req.CustomerName)
	if customerName == "" {
		customerName = o.walkInCustomerName
	}

	return orders.SaleOrder{
		CustomerName: customerName,
		Items:        items,
		Total:        totals.Total,
		CashPaid:     totals.CashPaid,
		Change:       totals.Change,
		Date:         o.now(),
	}
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}
