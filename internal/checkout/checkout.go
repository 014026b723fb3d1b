// Package checkout drives the payment page: it holds the billing form,
// validates it against the live cart and submits the order.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/wichananm65/storefront/internal/backend"
	"github.com/wichananm65/storefront/internal/cart"
	"github.com/wichananm65/storefront/internal/metrics"
	"github.com/wichananm65/storefront/internal/order"
)

var (
	ErrMissingFields        = errors.New("please fill in your full name, email and address")
	ErrEmptyCart            = errors.New("your cart is empty")
	ErrSubmissionInProgress = errors.New("order submission already in progress")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")
)

// FailureMessage is shown when the backend rejects an order without saying why.
const FailureMessage = "Failed to place order"

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailure    State = "failure"
)

// OrderCreator submits an order to the backend.
type OrderCreator interface {
	Create(ctx context.Context, token string, sub order.Submission) (order.Order, error)
}

// Form is the editable part of the payment page.
type Form struct {
	ClientInfo    order.ClientInfo    `json:"clientInfo"`
	PaymentMethod order.PaymentMethod `json:"paymentMethod"`
}

func emptyForm() Form {
	return Form{PaymentMethod: order.PaymentCashOnDelivery}
}

// Result describes the outcome of the last order attempt.
type Result struct {
	OrderID string `json:"orderId,omitempty"`
	Message string `json:"message"`
}

// Checkout owns the payment page state. Only one submission may be in
// flight; the form and cart are left alone when it fails.
type Checkout struct {
	mu      sync.Mutex
	form    Form
	state   State
	last    *Result
	cart    *cart.Service
	orders  OrderCreator
	log     *slog.Logger
	metrics *metrics.Metrics
}

func New(c *cart.Service, orders OrderCreator, log *slog.Logger, m *metrics.Metrics) *Checkout {
	return &Checkout{
		form:    emptyForm(),
		state:   StateIdle,
		cart:    c,
		orders:  orders,
		log:     log,
		metrics: m,
	}
}

// UpdateForm replaces the form. An empty payment method keeps the current one.
func (co *Checkout) UpdateForm(f Form) (Form, error) {
	if f.PaymentMethod == "" {
		co.mu.Lock()
		f.PaymentMethod = co.form.PaymentMethod
		co.mu.Unlock()
	}
	if !f.PaymentMethod.Valid() {
		return Form{}, ErrInvalidPaymentMethod
	}
	co.mu.Lock()
	defer co.mu.Unlock()
	co.form = f
	return co.form, nil
}

func (co *Checkout) State() State {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.state
}

// View is the payment page model. The total always comes from the live cart.
type View struct {
	Form         Form        `json:"form"`
	Items        []cart.Item `json:"items"`
	Total        float64     `json:"total"`
	TotalDisplay string      `json:"totalDisplay"`
	State        State       `json:"state"`
	Submitting   bool        `json:"submitting"`
	Result       *Result     `json:"result,omitempty"`
}

func (co *Checkout) View(ctx context.Context) (View, error) {
	items, err := co.cart.Items(ctx)
	if err != nil {
		return View{}, err
	}
	co.mu.Lock()
	defer co.mu.Unlock()
	total := cart.Total(items)
	return View{
		Form:         co.form,
		Items:        items,
		Total:        total,
		TotalDisplay: cart.FormatTotal(total),
		State:        co.state,
		Submitting:   co.state == StateSubmitting,
		Result:       co.last,
	}, nil
}

// PlaceOrder validates the form and cart, then submits the order. Validation
// failures leave the page idle and never reach the backend.
func (co *Checkout) PlaceOrder(ctx context.Context, token string) (Result, error) {
	co.mu.Lock()
	if co.state == StateSubmitting {
		co.mu.Unlock()
		return Result{}, ErrSubmissionInProgress
	}
	// a new attempt replaces the outcome of the previous one
	co.state = StateIdle
	co.last = nil
	form := co.form
	if !complete(form.ClientInfo) {
		co.mu.Unlock()
		co.metrics.ObserveCheckout("invalid")
		return Result{}, ErrMissingFields
	}
	items, err := co.cart.Items(ctx)
	if err != nil {
		co.mu.Unlock()
		return Result{}, err
	}
	if len(items) == 0 {
		co.mu.Unlock()
		co.metrics.ObserveCheckout("invalid")
		return Result{}, ErrEmptyCart
	}
	co.state = StateSubmitting
	co.mu.Unlock()

	sub := order.Submission{
		ClientInfo:    form.ClientInfo,
		CartItems:     items,
		PaymentMethod: form.PaymentMethod,
		TotalAmount:   cart.Total(items),
		Status:        order.StatusPending,
	}
	created, err := co.orders.Create(ctx, token, sub)
	if err != nil {
		msg := backend.UserMessage(err, FailureMessage)
		co.finish(StateFailure, &Result{Message: msg})
		co.metrics.ObserveCheckout("failure")
		co.log.Warn("order submission failed", "error", err)
		return Result{}, &SubmitError{Message: msg, Err: err}
	}

	if err := co.cart.Clear(ctx); err != nil {
		co.log.Error("order placed but cart not cleared", "order_id", created.ID, "error", err)
	}
	res := Result{OrderID: created.ID, Message: "Order placed successfully! Order ID: " + created.ID}

	co.mu.Lock()
	co.form = emptyForm()
	co.state = StateSuccess
	co.last = &res
	co.mu.Unlock()

	co.metrics.ObserveCheckout("success")
	co.log.Info("order placed", "order_id", created.ID, "items", len(items), "total", sub.TotalAmount)
	return res, nil
}

func (co *Checkout) finish(s State, r *Result) {
	co.mu.Lock()
	defer co.mu.Unlock()
	co.state = s
	co.last = r
}

func complete(ci order.ClientInfo) bool {
	return strings.TrimSpace(ci.FullName) != "" &&
		strings.TrimSpace(ci.Email) != "" &&
		strings.TrimSpace(ci.Address) != ""
}

// SubmitError is returned when the backend rejected the order or could not be
// reached. Message is the text to show the user.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string { return e.Message }

func (e *SubmitError) Unwrap() error { return e.Err }
