package storage

import (
	"context"
	"errors"
	"time"

	"github.com/hamzatariq-git/shopmate-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CartStorage interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Upsert(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type cartStorage struct {
	col *mongo.Collection
}

func NewCartStorage(db *mongo.Database) CartStorage {
	return &cartStorage{col: db.Collection("carts")}
}

func (s *cartStorage) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *cartStorage) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := s.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Upsert writes the cart document keyed by user, so a user always has at
// most one cart.
func (s *cartStorage) Upsert(ctx context.Context, cart *models.Cart) error {
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
		cart.CreatedAt = time.Now()
	}
	cart.UpdatedAt = time.Now()

	_, err := s.col.UpdateOne(ctx,
		bson.M{"userId": cart.UserID},
		bson.M{
			"$set": bson.M{
				"cartItems":               cart.CartItems,
				"totalPrice":              cart.TotalPrice,
				"totalPriceAfterDiscount": cart.TotalPriceAfterDiscount,
				"updatedAt":               cart.UpdatedAt,
			},
			"$setOnInsert": bson.M{
				"_id":       cart.ID,
				"createdAt": cart.CreatedAt,
			},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *cartStorage) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}
