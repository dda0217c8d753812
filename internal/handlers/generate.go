package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mascot-logo-backend/internal/models"
	"mascot-logo-backend/internal/services"
)

// Generation is the slice of the generation service the handlers use.
type Generation interface {
	Generate(ctx context.Context, rawPrompt string) (string, error)
	ServeImage(ctx context.Context, filename string) ([]byte, error)
	ListImages(ctx context.Context, page, limit int) ([]models.ImageRecord, int64, error)
	Suggestions(ctx context.Context) ([]string, error)
}

type GenerateHandler struct {
	service Generation
	logger  *zap.Logger
}

func NewGenerateHandler(service Generation, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{service: service, logger: logger}
}

// Generate handles POST /generate-image. The body is optional; an absent or
// empty prompt falls back to the stock mascot prompt.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req models.GenerateImageRequest
	// A missing or malformed body falls back to the default prompt rather
	// than rejecting the request, matching the permissive original contract.
	_ = c.ShouldBindJSON(&req)
	if req.Prompt == "" {
		req.Prompt = services.DefaultPrompt
	}

	filename, err := h.service.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		var moderation *services.ModerationError
		if errors.As(err, &moderation) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Status:  "error",
				Message: "Inappropriate prompt",
			})
			return
		}

		h.logger.Error("generation failed", zap.String("prompt", req.Prompt), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.GenerateImageResponse{
		Status:   "success",
		Filename: filename,
	})
}
