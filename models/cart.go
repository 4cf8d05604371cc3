package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a single line in a cart. The same struct is snapshot-copied
// onto orders, so Product is only populated when order details are expanded
// for a response and is never persisted.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
	Product   *Product           `bson:"-" json:"product,omitempty"`
}

type Cart struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID                  primitive.ObjectID `bson:"userId" json:"user_id"`
	CartItems               []CartItem         `bson:"cartItems" json:"cart_items"`
	TotalPrice              float64            `bson:"totalPrice" json:"total_price"`
	TotalPriceAfterDiscount float64            `bson:"totalPriceAfterDiscount,omitempty" json:"total_price_after_discount,omitempty"`
	CreatedAt               time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt               time.Time          `bson:"updatedAt" json:"updated_at"`
}

// OrderTotal is the price an order created from this cart is charged at:
// the discounted total when a coupon was applied, the plain total otherwise.
func (c *Cart) OrderTotal() float64 {
	if c.TotalPriceAfterDiscount > 0 {
		return c.TotalPriceAfterDiscount
	}
	return c.TotalPrice
}
