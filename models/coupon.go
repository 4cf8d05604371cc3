package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Coupon struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code     string             `bson:"code" json:"code"`
	Discount float64            `bson:"discount" json:"discount"` // percent off the cart total
	Expires  time.Time          `bson:"expires" json:"expires"`
}
