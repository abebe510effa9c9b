package api

import (
	"context"
	"net/http"
	"time"

	"email-sorter/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const appTitle = "Email Sorter"

func SetupRoutes(r *gin.Engine, h *Handler) {
	// Dashboard
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{"title": appTitle})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.health)

		h.ruleHandler.RegisterRoutes(api)
		h.templateHandler.RegisterRoutes(api)
		h.statsHandler.RegisterRoutes(api)

		// Settings routes - Runtime configuration
		settings := api.Group("/settings")
		{
			settings.GET("/log_level", h.settingsHandler.GetLogLevel)
			settings.PUT("/log_level", h.settingsHandler.UpdateLogLevel)
		}
	}
}

// GET /api/health
func (h *Handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_not_ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
