package api

import (
	"net/http"

	"email-sorter/pkg/logger"
	"email-sorter/pkg/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsHandler exposes runtime-configurable settings. Only the log level
// can be changed without a restart.
type SettingsHandler struct {
	level zap.AtomicLevel
	log   *zap.Logger
}

func NewSettingsHandler(level zap.AtomicLevel, log *zap.Logger) *SettingsHandler {
	return &SettingsHandler{level: level, log: log}
}

// UpdateLogLevelRequest represents the request body for changing the log level
type UpdateLogLevelRequest struct {
	Level string `json:"level" binding:"required,oneof=debug info warn error"`
}

// GetLogLevel returns the current log level
// GET /api/settings/log_level
func (h *SettingsHandler) GetLogLevel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"level": h.level.Level().String()})
}

// UpdateLogLevel changes the log level of every logger derived from the root
// PUT /api/settings/log_level
func (h *SettingsHandler) UpdateLogLevel(c *gin.Context) {
	var req UpdateLogLevelRequest
	if !validation.BindJSON(c, &req) {
		return
	}

	previous := h.level.Level()
	h.level.SetLevel(logger.ParseLevel(req.Level))
	h.log.Info("log level changed",
		zap.Stringer("from", previous),
		zap.Stringer("to", h.level.Level()))

	c.JSON(http.StatusOK, gin.H{"level": h.level.Level().String()})
}
