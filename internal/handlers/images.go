package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mascot-logo-backend/internal/models"
	"mascot-logo-backend/internal/services"
)

type ImagesHandler struct {
	service Generation
	logger  *zap.Logger
}

func NewImagesHandler(service Generation, logger *zap.Logger) *ImagesHandler {
	return &ImagesHandler{service: service, logger: logger}
}

// ServeImage handles GET /images/:filename, proxying the artifact bytes from
// cache or blob storage.
func (h *ImagesHandler) ServeImage(c *gin.Context) {
	filename := c.Param("filename")

	data, err := h.service.ServeImage(c.Request.Context(), filename)
	if err != nil {
		if errors.Is(err, services.ErrArtifactNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Status:  "error",
				Message: "image not found",
			})
			return
		}
		h.logger.Error("failed to serve image", zap.String("filename", filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}

// ListImages handles GET /images with offset/limit pagination over the
// metadata history, newest first.
func (h *ImagesHandler) ListImages(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	records, total, err := h.service.ListImages(c.Request.Context(), page, limit)
	if err != nil {
		h.logger.Error("failed to list images", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	images := make([]models.ImageSummary, 0, len(records))
	for _, rec := range records {
		images = append(images, models.ImageSummary{
			UserPrompt: rec.UserPrompt,
			S3URL:      rec.S3URL,
			Filename:   rec.Filename,
		})
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, models.ImageListResponse{
		Status:      "success",
		Images:      images,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		TotalImages: total,
	})
}
