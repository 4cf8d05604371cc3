package storage

import (
	"context"
	"errors"

	"github.com/hamzatariq-git/shopmate-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CouponStorage interface {
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
}

type couponStorage struct {
	col *mongo.Collection
}

func NewCouponStorage(db *mongo.Database) CouponStorage {
	return &couponStorage{col: db.Collection("coupons")}
}

func (s *couponStorage) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := s.col.FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}
