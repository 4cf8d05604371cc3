package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// WebhookEventStorage guards against duplicate webhook deliveries. MarkProcessed
// records the provider's event ID and returns ErrEventAlreadyProcessed when the
// same delivery was seen before.
type WebhookEventStorage interface {
	MarkProcessed(ctx context.Context, eventID string) error
}

type webhookEventStorage struct {
	col *mongo.Collection
}

func NewWebhookEventStorage(db *mongo.Database) WebhookEventStorage {
	return &webhookEventStorage{col: db.Collection("webhook_events")}
}

func (s *webhookEventStorage) MarkProcessed(ctx context.Context, eventID string) error {
	_, err := s.col.InsertOne(ctx, bson.M{
		"_id":         eventID,
		"processedAt": time.Now(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return ErrEventAlreadyProcessed
	}
	return err
}
