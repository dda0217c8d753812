package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mascot-logo-backend/internal/cache"
	"mascot-logo-backend/internal/config"
	"mascot-logo-backend/internal/handlers"
	"mascot-logo-backend/internal/imagegen"
	"mascot-logo-backend/internal/imaging"
	"mascot-logo-backend/internal/llm"
	"mascot-logo-backend/internal/middleware"
	"mascot-logo-backend/internal/mongodb"
	"mascot-logo-backend/internal/ratelimit"
	"mascot-logo-backend/internal/services"
	"mascot-logo-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var logger *zap.Logger
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Shared infrastructure clients, constructed once and injected.
	artifactCache, err := cache.NewFromURL(ctx, cfg.RedisURL, logger)
	if err != nil {
		logger.Fatal("failed to initialize redis cache", zap.Error(err))
	}
	limiter := ratelimit.NewLimiter(artifactCache.Redis())

	store, err := mongodb.NewStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Fatal("failed to initialize mongodb store", zap.Error(err))
	}
	defer store.Close(ctx)

	blobs, err := storage.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.StorageBucket)
	if err != nil {
		logger.Fatal("failed to initialize blob storage", zap.Error(err))
	}

	// Model adapters.
	chatClient := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ChatModel, logger)
	generator := imagegen.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ImageModel)
	processor := imaging.NewProcessor()

	service := services.NewGenerationService(
		chatClient, chatClient, generator, processor, store, blobs, artifactCache, logger,
	)

	generateHandler := handlers.NewGenerateHandler(service, logger)
	imagesHandler := handlers.NewImagesHandler(service, logger)
	promptsHandler := handlers.NewPromptsHandler(service, logger)

	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/health", handlers.HealthHandler)

	// Admission control runs ahead of every paid downstream call: the
	// generation endpoint gets the tight limit, everything else the default.
	generateLimit := middleware.RateLimit(limiter, cfg.GenerateRateLimit, cfg.JWTSecret, logger)
	defaultLimit := middleware.RateLimit(limiter, cfg.DefaultRateLimit, cfg.JWTSecret, logger)

	router.POST("/generate-image", generateLimit, generateHandler.Generate)
	router.GET("/images/:filename", defaultLimit, imagesHandler.ServeImage)
	router.GET("/images", defaultLimit, imagesHandler.ListImages)
	router.GET("/generate-prompts", defaultLimit, promptsHandler.Suggest)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
