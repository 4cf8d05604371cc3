package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hamzatariq-git/shopmate-api/models"
	"github.com/hamzatariq-git/shopmate-api/storage"
	"github.com/stripe/stripe-go/v76"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Checkout sessions are priced in minor units of a fixed currency.
const checkoutCurrency = "egp"

// CheckoutParams is everything the payment provider needs to build a hosted
// checkout session for a cart.
type CheckoutParams struct {
	CartID              string
	CustomerEmail       string
	ProductLabel        string
	Currency            string
	UnitAmount          int64
	ShippingAddressJSON string
}

// CheckoutClient is implemented by the payment provider wrapper.
type CheckoutClient interface {
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*stripe.CheckoutSession, error)
}

// CompletedSession carries the provider-side fields of a completed checkout
// session that webhook finalization consumes.
type CompletedSession struct {
	CartID              string // client_reference_id, the cart correlation token
	CustomerEmail       string
	AmountTotal         int64 // minor currency units
	ShippingAddressJSON string
}

type OrderService interface {
	CreateCashOrder(ctx context.Context, cartID string, userID primitive.ObjectID, addr models.Address) (*models.Order, error)
	GetSpecificOrder(ctx context.Context, userID primitive.ObjectID) (*models.Order, error)
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	CreateCheckoutSession(ctx context.Context, cartID string, user *models.User, addr models.Address) (*stripe.CheckoutSession, error)
	FinalizeCardOrder(ctx context.Context, sess CompletedSession) (*models.Order, error)
}

type orderService struct {
	carts    storage.CartStorage
	orders   storage.OrderStorage
	products storage.ProductStorage
	users    storage.UserStorage
	checkout CheckoutClient
}

func NewOrderService(
	carts storage.CartStorage,
	orders storage.OrderStorage,
	products storage.ProductStorage,
	users storage.UserStorage,
	checkout CheckoutClient,
) OrderService {
	return &orderService{
		carts:    carts,
		orders:   orders,
		products: products,
		users:    users,
		checkout: checkout,
	}
}

// CreateCashOrder converts the cart into a cash-on-delivery order: the order
// is persisted with the cart's line items, stock is adjusted, and the cart is
// deleted.
func (s *orderService) CreateCashOrder(ctx context.Context, cartID string, userID primitive.ObjectID, addr models.Address) (*models.Order, error) {
	cart, err := s.loadCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderRef:        generateOrderRef(),
		UserID:          userID,
		CartItems:       cart.CartItems,
		TotalOrderPrice: cart.OrderTotal(),
		ShippingAddress: addr,
		PaymentMethod:   models.PaymentMethodCash,
		CreatedAt:       time.Now(),
	}
	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.products.ApplyOrderDeltas(ctx, cart.CartItems); err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}
	if err := s.carts.Delete(ctx, cart.ID); err != nil {
		return nil, fmt.Errorf("delete cart: %w", err)
	}
	return created, nil
}

// GetSpecificOrder returns the user's most recent order with product details
// expanded.
func (s *orderService) GetSpecificOrder(ctx context.Context, userID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.GetLatestByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.expandProducts(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	refs := make([]*models.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := s.expandProducts(ctx, refs...); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateCheckoutSession builds a single-line hosted checkout session for the
// cart. The cart ID rides along as the correlation token and the shipping
// address is serialized into the session metadata; both come back through the
// webhook.
func (s *orderService) CreateCheckoutSession(ctx context.Context, cartID string, user *models.User, addr models.Address) (*stripe.CheckoutSession, error) {
	cart, err := s.loadCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	addrJSON, err := json.Marshal(addr)
	if err != nil {
		return nil, fmt.Errorf("encode shipping address: %w", err)
	}

	return s.checkout.CreateCheckoutSession(ctx, CheckoutParams{
		CartID:              cart.ID.Hex(),
		CustomerEmail:       user.Email,
		ProductLabel:        user.Name,
		Currency:            checkoutCurrency,
		UnitAmount:          minorUnits(cart.OrderTotal()),
		ShippingAddressJSON: string(addrJSON),
	})
}

// FinalizeCardOrder is the deferred half of a card checkout, invoked by the
// webhook once the provider reports the session as completed. It re-runs the
// same cart-to-order conversion as the cash path, marking the order paid.
func (s *orderService) FinalizeCardOrder(ctx context.Context, sess CompletedSession) (*models.Order, error) {
	cart, err := s.loadCart(ctx, sess.CartID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByEmail(ctx, sess.CustomerEmail)
	if err != nil {
		return nil, err
	}

	var addr models.Address
	if sess.ShippingAddressJSON != "" {
		if err := json.Unmarshal([]byte(sess.ShippingAddressJSON), &addr); err != nil {
			return nil, fmt.Errorf("decode shipping address: %w", err)
		}
	}

	now := time.Now()
	order := &models.Order{
		OrderRef:        generateOrderRef(),
		UserID:          user.ID,
		CartItems:       cart.CartItems,
		TotalOrderPrice: float64(sess.AmountTotal) / 100,
		ShippingAddress: addr,
		PaymentMethod:   models.PaymentMethodCard,
		IsPaid:          true,
		PaidAt:          &now,
		CreatedAt:       now,
	}
	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.products.ApplyOrderDeltas(ctx, cart.CartItems); err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}
	if err := s.carts.Delete(ctx, cart.ID); err != nil {
		return nil, fmt.Errorf("delete cart: %w", err)
	}
	return created, nil
}

// loadCart resolves the opaque cart ID. A malformed ID is reported the same
// way as a missing cart.
func (s *orderService) loadCart(ctx context.Context, cartID string) (*models.Cart, error) {
	oid, err := primitive.ObjectIDFromHex(cartID)
	if err != nil {
		return nil, storage.ErrCartNotFound
	}
	return s.carts.GetByID(ctx, oid)
}

// expandProducts fills the Product field of every line item from a single
// batched lookup.
func (s *orderService) expandProducts(ctx context.Context, orders ...*models.Order) error {
	var ids []primitive.ObjectID
	seen := make(map[primitive.ObjectID]bool)
	for _, order := range orders {
		for _, item := range order.CartItems {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
	}

	byID, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("expand products: %w", err)
	}
	for _, order := range orders {
		for i := range order.CartItems {
			if p, ok := byID[order.CartItems[i].ProductID]; ok {
				product := p
				order.CartItems[i].Product = &product
			}
		}
	}
	return nil
}

// minorUnits converts a price into the provider's minor currency units,
// rounded to the nearest integer.
func minorUnits(total float64) int64 {
	return int64(math.Round(total * 100))
}

func generateOrderRef() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}
