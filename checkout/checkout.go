package checkout

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"localconnect/backend"
	"localconnect/cart"
	"localconnect/models"
)

// PaymentSuccess is the only payment-widget status that allows order
// creation. Anything else skips checkout entirely.
const PaymentSuccess = "success"

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrPaymentDeclined = errors.New("payment was not successful")
)

// Request carries what the payment widget's callback reports plus the
// buyer's checkout choices.
type Request struct {
	PaymentStatus    string   `json:"payment_status"`
	PaymentReference string   `json:"payment_reference,omitempty"`
	CollectionMethod string   `json:"collection_method,omitempty"`
	Notes            []string `json:"notes,omitempty"`
}

// Result reports a placed order. Warnings collect non-fatal follow-up
// failures: the order stands even if clearing the cart or refreshing the
// order list failed afterwards.
type Result struct {
	OrderID  string         `json:"order_id"`
	Total    float64        `json:"total"`
	Orders   []models.Order `json:"orders,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
}

type Flow struct {
	cart   cart.Repository
	client *backend.Client
	logger *slog.Logger
	newID  func() string
}

func NewFlow(repo cart.Repository, client *backend.Client, logger *slog.Logger) *Flow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Flow{cart: repo, client: client, logger: logger, newID: uuid.NewString}
}

// Total sums the snapshot prices of the cart lines. No tax, discounts, or
// currency conversion.
func Total(items []models.Product) float64 {
	var total float64
	for _, p := range items {
		total += p.Price
	}
	return total
}

// CleanNotes trims each note and drops the ones that end up empty.
func CleanNotes(notes []string) []string {
	var cleaned []string
	for _, n := range notes {
		if t := strings.TrimSpace(n); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return cleaned
}

// Checkout runs the three-step sequence: create the order, clear the cart,
// refresh the order list. The sequence is not transactional — once the order
// is accepted upstream, a later step failing turns into a warning, not a
// rollback.
func (f *Flow) Checkout(ctx context.Context, owner cart.Owner, req Request) (*Result, error) {
	if req.PaymentStatus != PaymentSuccess {
		return nil, ErrPaymentDeclined
	}
	items, err := f.cart.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	method := req.CollectionMethod
	if method == "" {
		method = models.CollectionOnsite
	}
	if method != models.CollectionOnsite && method != models.CollectionDelivery {
		return nil, errors.New("collection_method must be \"onsite\" or \"delivery\"")
	}

	lines := make([]models.OrderLine, 0, len(items))
	for _, p := range items {
		lines = append(lines, models.OrderLine{BusinessOwned: p.BusinessOwned, ProductID: p.ProductID})
	}
	order := models.Order{
		OrderID:          f.newID(),
		Customer:         owner.Email,
		Lines:            lines,
		CollectionMethod: method,
		CustomerNotes:    CleanNotes(req.Notes),
		Status:           []string{"created"},
	}

	if err := f.client.CreateOrder(ctx, owner.Token, order); err != nil {
		return nil, err
	}
	f.logger.Info("order placed", "order_id", order.OrderID, "customer", owner.Email,
		"lines", len(lines), "payment_reference", req.PaymentReference)

	result := &Result{OrderID: order.OrderID, Total: Total(items)}

	if err := f.cart.Clear(ctx, owner); err != nil {
		f.logger.Warn("cart clear failed after order creation", "order_id", order.OrderID, "error", err)
		result.Warnings = append(result.Warnings, "order was placed but the cart could not be cleared: "+err.Error())
	}

	orders, err := f.client.OrdersForUser(ctx, owner.Token, owner.Email)
	if err != nil {
		f.logger.Warn("order refresh failed after order creation", "order_id", order.OrderID, "error", err)
		result.Warnings = append(result.Warnings, "order was placed but the order list could not be refreshed: "+err.Error())
	} else {
		result.Orders = orders
	}
	return result, nil
}
