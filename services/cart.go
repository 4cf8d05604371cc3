package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/hamzatariq-git/shopmate-api/models"
	"github.com/hamzatariq-git/shopmate-api/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrCouponExpired = errors.New("coupon expired")

type CartService interface {
	GetCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	SetItem(ctx context.Context, userID primitive.ObjectID, productID string, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID primitive.ObjectID, productID string) (*models.Cart, error)
	ClearCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	ApplyCoupon(ctx context.Context, userID primitive.ObjectID, code string) (*models.Cart, error)
}

type cartService struct {
	carts    storage.CartStorage
	products storage.ProductStorage
	coupons  storage.CouponStorage
}

func NewCartService(carts storage.CartStorage, products storage.ProductStorage, coupons storage.CouponStorage) CartService {
	return &cartService{carts: carts, products: products, coupons: coupons}
}

func (s *cartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	return s.carts.GetByUserID(ctx, userID)
}

// SetItem puts the product into the user's cart at the given quantity,
// creating the cart on first use. The product's current price is snapshotted
// onto the line item.
func (s *cartService) SetItem(ctx context.Context, userID primitive.ObjectID, productID string, quantity int) (*models.Cart, error) {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, storage.ErrProductNotFound
	}
	product, err := s.products.GetByID(ctx, pid)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetByUserID(ctx, userID)
	if errors.Is(err, storage.ErrCartNotFound) {
		cart = &models.Cart{UserID: userID}
	} else if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.CartItems {
		if cart.CartItems[i].ProductID == pid {
			cart.CartItems[i].Quantity = quantity
			cart.CartItems[i].Price = product.Price
			found = true
			break
		}
	}
	if !found {
		cart.CartItems = append(cart.CartItems, models.CartItem{
			ProductID: pid,
			Quantity:  quantity,
			Price:     product.Price,
		})
	}

	s.recomputeTotals(cart)
	if err := s.carts.Upsert(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID primitive.ObjectID, productID string) (*models.Cart, error) {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, storage.ErrProductNotFound
	}
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := cart.CartItems[:0]
	for _, item := range cart.CartItems {
		if item.ProductID != pid {
			items = append(items, item)
		}
	}
	cart.CartItems = items

	s.recomputeTotals(cart)
	if err := s.carts.Upsert(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) ClearCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.CartItems = nil
	s.recomputeTotals(cart)
	if err := s.carts.Upsert(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ApplyCoupon sets the cart's discounted total from a percent-off coupon.
func (s *cartService) ApplyCoupon(ctx context.Context, userID primitive.ObjectID, code string) (*models.Cart, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	coupon, err := s.coupons.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if time.Now().After(coupon.Expires) {
		return nil, ErrCouponExpired
	}

	cart.TotalPriceAfterDiscount = round2(cart.TotalPrice * (1 - coupon.Discount/100))
	if err := s.carts.Upsert(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// recomputeTotals rebuilds the cart total and drops any applied discount,
// since the coupon was computed against the previous contents.
func (s *cartService) recomputeTotals(cart *models.Cart) {
	total := 0.0
	for _, item := range cart.CartItems {
		total += item.Price * float64(item.Quantity)
	}
	cart.TotalPrice = round2(total)
	cart.TotalPriceAfterDiscount = 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
