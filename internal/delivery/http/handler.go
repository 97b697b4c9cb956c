package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/phetrack/pipeline/internal/domain"
	"github.com/phetrack/pipeline/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	dataset *usecase.DatasetService
}

// NewHandler creates a new HTTP handler
func NewHandler(dataset *usecase.DatasetService) *Handler {
	return &Handler{dataset: dataset}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "phetrack-dataset",
		"records": h.dataset.Len(),
	})
}

// SearchFoods handles dataset search requests
func (h *Handler) SearchFoods(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "query parameter 'q' is required",
		})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	results, err := h.dataset.Search(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(results),
		"foods": results,
	})
}

// GetFood returns one record by its identifier
func (h *Handler) GetFood(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("fdcId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "fdcId must be an integer",
		})
		return
	}

	record, err := h.dataset.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, record)
}
