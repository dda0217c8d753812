// Package services orchestrates the generation pipeline: dedupe, refinement,
// synthesis, post-processing, persistence, and cached artifact serving.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mascot-logo-backend/internal/llm"
	"mascot-logo-backend/internal/models"
	"mascot-logo-backend/internal/storage"
)

// DefaultPrompt is used when a generation request carries no prompt.
const DefaultPrompt = "Generate a fantasy football cartoon mascot cowboy"

const (
	// ArtifactCacheTTL bounds how long served PNG bytes stay in Redis.
	ArtifactCacheTTL = 60 * time.Second
	// SuggestionCacheTTL bounds repeat calls to the suggestion model.
	SuggestionCacheTTL = 60 * time.Second

	artifactCachePrefix = "image:"
	suggestionCacheKey  = "prompts:suggestions"
)

// Refiner runs the chained prompt refinement.
type Refiner interface {
	Refine(ctx context.Context, userPrompt string) (llm.RefineOutcome, error)
}

// Suggester produces the random prompt suggestion batch.
type Suggester interface {
	SuggestPrompts(ctx context.Context) ([]string, error)
}

// Synthesizer invokes the image model and returns a transient asset URL.
type Synthesizer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// PostProcessor turns the transient URL into final PNG bytes plus a unique
// filename.
type PostProcessor interface {
	Process(ctx context.Context, imageURL string) ([]byte, string, error)
}

// MetadataStore is the document-store gateway.
type MetadataStore interface {
	FindByPrompt(ctx context.Context, normalizedPrompt string) (*models.ImageRecord, error)
	InsertImage(ctx context.Context, record *models.ImageRecord) error
	ListPage(ctx context.Context, page, limit int) ([]models.ImageRecord, int64, error)
	LogPrompt(ctx context.Context, prompt string) error
}

// BlobStore holds the immutable PNG artifacts.
type BlobStore interface {
	Upload(filename string, data []byte) (string, error)
	Download(filename string) ([]byte, error)
}

// ByteCache is the TTL cache in front of the blob store and the suggestion
// model.
type ByteCache interface {
	GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch func() ([]byte, error)) ([]byte, error)
}

type GenerationService struct {
	refiner   Refiner
	suggester Suggester
	synth     Synthesizer
	processor PostProcessor
	store     MetadataStore
	blobs     BlobStore
	cache     ByteCache
	logger    *zap.Logger
}

func NewGenerationService(
	refiner Refiner,
	suggester Suggester,
	synth Synthesizer,
	processor PostProcessor,
	store MetadataStore,
	blobs BlobStore,
	cache ByteCache,
	logger *zap.Logger,
) *GenerationService {
	return &GenerationService{
		refiner:   refiner,
		suggester: suggester,
		synth:     synth,
		processor: processor,
		store:     store,
		blobs:     blobs,
		cache:     cache,
		logger:    logger,
	}
}

// Generate runs the full pipeline for a raw user prompt and returns the
// artifact filename.
//
// The stages are strictly sequential: normalize, audit-log, dedupe lookup,
// refine (moderation gate first), synthesize, post-process, upload, record.
// A dedupe hit returns the stored filename without touching any model. The
// dedupe check is not a lock; two concurrent identical prompts may both run
// the pipeline and both insert, which is accepted.
//
// Metadata is written only after the blob upload succeeds. A failure after
// synthesis therefore wastes the provider call but never records a filename
// whose bytes don't exist.
func (s *GenerationService) Generate(ctx context.Context, rawPrompt string) (string, error) {
	prompt := NormalizePrompt(rawPrompt)

	if err := s.store.LogPrompt(ctx, prompt); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	existing, err := s.store.FindByPrompt(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if existing != nil {
		s.logger.Info("dedupe hit", zap.String("prompt", prompt), zap.String("filename", existing.Filename))
		return existing.Filename, nil
	}

	outcome, err := s.refiner.Refine(ctx, prompt)
	if err != nil {
		return "", err
	}
	if outcome.Rejected {
		return "", &ModerationError{Reason: outcome.Reason}
	}

	imageURL, err := s.synth.Generate(ctx, outcome.Final)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSynthesis, err)
	}

	data, filename, err := s.processor.Process(ctx, imageURL)
	if err != nil {
		return "", err
	}

	storageURL, err := s.blobs.Upload(filename, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	record := &models.ImageRecord{
		UserPrompt:  prompt,
		FirstPrompt: outcome.Expanded,
		NewPrompt:   outcome.Final,
		S3URL:       storageURL,
		Filename:    filename,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.InsertImage(ctx, record); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("image generated",
		zap.String("prompt", prompt),
		zap.String("filename", filename),
	)
	return filename, nil
}

// ServeImage returns the PNG bytes for a stored artifact, from cache when the
// entry is fresh, from the blob store otherwise. Only a genuinely missing
// object maps to ErrArtifactNotFound; a blob-store outage is
// ErrStoreUnavailable, so it surfaces as 500, not 404.
func (s *GenerationService) ServeImage(ctx context.Context, filename string) ([]byte, error) {
	return s.cache.GetOrFetch(ctx, artifactCachePrefix+filename, ArtifactCacheTTL, func() ([]byte, error) {
		data, err := s.blobs.Download(filename)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%w: %v", ErrArtifactNotFound, err)
			}
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return data, nil
	})
}

// ListImages returns one history page plus the total record count.
func (s *GenerationService) ListImages(ctx context.Context, page, limit int) ([]models.ImageRecord, int64, error) {
	records, total, err := s.store.ListPage(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return records, total, nil
}

// Suggestions returns the current prompt suggestion batch, reusing the cached
// one within its TTL so the suggestion model is called at most once a minute.
func (s *GenerationService) Suggestions(ctx context.Context) ([]string, error) {
	data, err := s.cache.GetOrFetch(ctx, suggestionCacheKey, SuggestionCacheTTL, func() ([]byte, error) {
		prompts, err := s.suggester.SuggestPrompts(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(prompts)
	})
	if err != nil {
		return nil, err
	}

	var prompts []string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to decode cached suggestions: %w", err)
	}
	return prompts, nil
}
