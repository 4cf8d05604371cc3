package storage

import (
	"context"
	"errors"
	"time"

	"github.com/hamzatariq-git/shopmate-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductStorage interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	ApplyOrderDeltas(ctx context.Context, items []models.CartItem) error
}

type productStorage struct {
	col *mongo.Collection
}

func NewProductStorage(db *mongo.Database) ProductStorage {
	return &productStorage{col: db.Collection("products")}
}

func (s *productStorage) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	res, err := s.col.InsertOne(ctx, product)
	if err != nil {
		return nil, err
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return product, nil
}

func (s *productStorage) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *productStorage) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	byID := make(map[primitive.ObjectID]models.Product, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	cur, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

func (s *productStorage) GetAll(ctx context.Context) ([]models.Product, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ApplyOrderDeltas decrements stock and increments the sold counter for every
// line item of a placed order in one bulk write. Atomicity across the batch
// is whatever the server provides; there is no application-level rollback.
func (s *productStorage) ApplyOrderDeltas(ctx context.Context, items []models.CartItem) error {
	if len(items) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(items))
	for _, item := range items {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": item.ProductID}).
			SetUpdate(bson.M{"$inc": bson.M{
				"quantity": -item.Quantity,
				"sold":     item.Quantity,
			}}))
	}
	_, err := s.col.BulkWrite(ctx, writes)
	return err
}
