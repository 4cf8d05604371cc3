package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderRef        string             `bson:"orderRef" json:"order_ref"`
	UserID          primitive.ObjectID `bson:"userId" json:"user_id"`
	CartItems       []CartItem         `bson:"cartItems" json:"cart_items"`
	TotalOrderPrice float64            `bson:"totalOrderPrice" json:"total_order_price"`
	ShippingAddress Address            `bson:"shippingAddress" json:"shipping_address"`
	PaymentMethod   string             `bson:"paymentMethod" json:"payment_method"`
	IsPaid          bool               `bson:"isPaid" json:"is_paid"`
	PaidAt          *time.Time         `bson:"paidAt,omitempty" json:"paid_at,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"created_at"`
}
