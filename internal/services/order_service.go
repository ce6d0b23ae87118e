package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	applog "sellnow/internal/log"
	"sellnow/internal/pricing"
	"sellnow/internal/repos"
	"sellnow/internal/sequence"
)

// ErrCartEmpty rejects checkout of an empty cart.
var ErrCartEmpty = errors.New("cart empty")

type Contact struct {
	Name  string
	Email string
}

type PlacedOrder struct {
	ID          string
	OrderNumber string
	Breakdown   pricing.Breakdown
}

type OrderService struct {
	Carts    *repos.CartRepo
	Products *repos.ProductRepo
	Orders   *repos.OrderRepo
	Seq      *sequence.Allocator
	Shipping ShippingQuoter
}

func NewOrderService(carts *repos.CartRepo, products *repos.ProductRepo, orders *repos.OrderRepo,
	seq *sequence.Allocator, shipping ShippingQuoter) *OrderService {
	return &OrderService{Carts: carts, Products: products, Orders: orders, Seq: seq, Shipping: shipping}
}

// Place finalizes the session cart into an order. The total the client saw
// is never trusted: lines are re-priced from the catalog snapshot and the
// recomputed total must match within a cent, otherwise the order is rejected
// with a PriceMismatchError. Stock decrements, the order header, and its
// items commit in one transaction; any failure (including the order-number
// allocation) aborts the whole creation with no partial order left behind.
func (s *OrderService) Place(sessionID, region string, contact Contact, clientTotal decimal.Decimal) (PlacedOrder, error) {
	if region == "" {
		return PlacedOrder{}, errors.New("missing region")
	}

	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return PlacedOrder{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return PlacedOrder{}, err
	}
	if len(items) == 0 {
		return PlacedOrder{}, ErrCartEmpty
	}

	lines, err := priceLines(s.Products, items)
	if err != nil {
		return PlacedOrder{}, err
	}
	shippingCost, err := s.Shipping.Rate(region)
	if err != nil {
		return PlacedOrder{}, err
	}
	breakdown, err := pricing.Aggregate(lines, shippingCost)
	if err != nil {
		return PlacedOrder{}, err
	}
	if err := pricing.VerifyClientTotal(breakdown, clientTotal); err != nil {
		return PlacedOrder{}, err
	}

	orderNumber, err := s.Seq.NextNumber(time.Now().UTC())
	if err != nil {
		return PlacedOrder{}, err
	}

	orderID := uuid.NewString()
	if err := s.Orders.Create(repos.CreateOrderParams{
		ID:          orderID,
		OrderNumber: orderNumber,
		SessionID:   sessionID,
		Region:      region,
		Name:        contact.Name,
		Email:       contact.Email,
		Breakdown:   breakdown,
	}); err != nil {
		return PlacedOrder{}, err
	}

	// The order is committed; a failed clear leaves a stale cart behind, so
	// it must at least be visible in the logs.
	if err := s.Carts.Clear(cartID); err != nil {
		applog.Error(nil, "cart.clear", err, map[string]any{"cart_id": cartID, "order_id": orderID})
	}
	return PlacedOrder{ID: orderID, OrderNumber: orderNumber, Breakdown: breakdown}, nil
}
