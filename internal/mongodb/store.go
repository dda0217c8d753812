// Package mongodb is the metadata store gateway: prompt-to-artifact records,
// offset/limit history pagination, and the write-only prompt audit log.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"mascot-logo-backend/internal/models"
)

const (
	imagesCollection  = "images"
	promptsCollection = "prompts"
)

type Store struct {
	client  *mongo.Client
	images  *mongo.Collection
	prompts *mongo.Collection
}

func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(database)
	return &Store{
		client:  client,
		images:  db.Collection(imagesCollection),
		prompts: db.Collection(promptsCollection),
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// FindByPrompt returns the record whose normalized user prompt matches, or
// nil when no such record exists. When near-concurrent duplicates slipped in,
// the oldest record wins so repeated lookups stay stable.
func (s *Store) FindByPrompt(ctx context.Context, normalizedPrompt string) (*models.ImageRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})

	var record models.ImageRecord
	err := s.images.FindOne(ctx, bson.D{{Key: "user_prompt", Value: normalizedPrompt}}, opts).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find image by prompt: %w", err)
	}

	return &record, nil
}

// InsertImage writes a metadata record. There is no unique index on
// user_prompt: the dedupe above is best effort and duplicate records from
// concurrent identical requests are accepted.
func (s *Store) InsertImage(ctx context.Context, record *models.ImageRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if _, err := s.images.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert image metadata: %w", err)
	}
	return nil
}

// ListPage returns one page of records sorted by creation time descending,
// plus the total record count.
func (s *Store) ListPage(ctx context.Context, page, limit int) ([]models.ImageRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	skip := int64(page-1) * int64(limit)

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(limit))

	cursor, err := s.images.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list images: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.ImageRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, 0, fmt.Errorf("failed to decode image records: %w", err)
	}

	total, err := s.images.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count images: %w", err)
	}

	return records, total, nil
}

// LogPrompt appends to the audit trail. It runs before moderation, so the log
// also captures prompts that were later rejected.
func (s *Store) LogPrompt(ctx context.Context, prompt string) error {
	entry := models.PromptLog{Prompt: prompt, CreatedAt: time.Now().UTC()}
	if _, err := s.prompts.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to log prompt: %w", err)
	}
	return nil
}
