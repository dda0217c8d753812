package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mascot-logo-backend/internal/models"
)

type PromptsHandler struct {
	service Generation
	logger  *zap.Logger
}

func NewPromptsHandler(service Generation, logger *zap.Logger) *PromptsHandler {
	return &PromptsHandler{service: service, logger: logger}
}

// Suggest handles GET /generate-prompts. The batch is cached for a minute,
// so bursts of clients share one suggestion call.
func (h *PromptsHandler) Suggest(c *gin.Context) {
	prompts, err := h.service.Suggestions(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to generate prompt suggestions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.PromptSuggestionsResponse{
		Status:  "success",
		Prompts: prompts,
	})
}
