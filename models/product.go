package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image" json:"image"`
	Quantity    int                `bson:"quantity" json:"quantity"` // available stock
	Sold        int                `bson:"sold" json:"sold"`         // cumulative units sold
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
}
