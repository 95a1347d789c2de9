package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-api/cmd/api/dto"
	"portfolio-api/internal/logger"
	"portfolio-api/models"
	"portfolio-api/storage"
)

// writeStorageError maps storage failures onto HTTP statuses: validation
// failures are client errors, an unreachable backend is a 503, anything else
// is a 500.
func writeStorageError(c *gin.Context, err error) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: ve.Error()})
		return
	}
	if errors.Is(err, storage.ErrUnavailable) {
		logger.Log.Errorf("storage unavailable: %v", err)
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponseDTO{Error: "storage backend unavailable"})
		return
	}
	logger.Log.Errorf("storage error: %v", err)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "internal error"})
}

func writeNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "not found"})
}

// HealthHandler godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  object{status=string}
// @Router       /health [get]
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
