package delivery

import (
	"net/http"

	"email-sorter/internal/stats/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatsHandler serves the dashboard aggregate
type StatsHandler struct {
	statsUsecase usecase.StatsUsecase
	log          *zap.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsUsecase usecase.StatsUsecase, log *zap.Logger) *StatsHandler {
	return &StatsHandler{statsUsecase: statsUsecase, log: log}
}

func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.GetStats)
}

// GetStats returns rule and template counts
// GET /api/stats
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsUsecase.GetStats(c.Request.Context())
	if err != nil {
		h.log.Error("failed to compute stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
