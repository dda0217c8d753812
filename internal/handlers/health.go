package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mascot-logo-backend/internal/models"
)

// HealthHandler is the liveness endpoint; no auth, no rate limit.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}
