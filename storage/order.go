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

type OrderStorage interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
}

type orderStorage struct {
	col *mongo.Collection
}

func NewOrderStorage(db *mongo.Database) OrderStorage {
	return &orderStorage{col: db.Collection("orders")}
}

func (s *orderStorage) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	res, err := s.col.InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return order, nil
}

// GetLatestByUserID returns the user's most recent order.
func (s *orderStorage) GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.col.FindOne(ctx,
		bson.M{"userId": userID},
		options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *orderStorage) GetAll(ctx context.Context) ([]models.Order, error) {
	cur, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
