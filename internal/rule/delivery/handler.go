package delivery

import (
	"errors"
	"net/http"

	"email-sorter/internal/rule/domain"
	"email-sorter/internal/rule/dto"
	"email-sorter/internal/rule/usecase"
	"email-sorter/pkg/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RuleHandler handles rule-related HTTP requests
type RuleHandler struct {
	ruleUsecase usecase.RuleUsecase
	log         *zap.Logger
}

// NewRuleHandler creates a new RuleHandler
func NewRuleHandler(ruleUsecase usecase.RuleUsecase, log *zap.Logger) *RuleHandler {
	return &RuleHandler{
		ruleUsecase: ruleUsecase,
		log:         log,
	}
}

// RegisterRoutes mounts the rule endpoints on rg
func (h *RuleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rules := rg.Group("/rules")
	{
		rules.POST("", h.CreateRule)
		rules.GET("", h.ListRules)
		rules.GET("/:id", h.GetRule)
		rules.PUT("/:id", h.UpdateRule)
		rules.DELETE("/:id", h.DeleteRule)
		rules.PATCH("/:id/toggle", h.ToggleRule)
	}
}

// CreateRule creates a new rule
// POST /api/rules
func (h *RuleHandler) CreateRule(c *gin.Context) {
	var req dto.CreateRuleRequest
	if !validation.BindJSON(c, &req, "is_active", "priority") {
		return
	}

	rule, err := h.ruleUsecase.CreateRule(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, rule)
}

// ListRules returns rules, highest priority first
// GET /api/rules?skip=0&limit=100&search=news
func (h *RuleHandler) ListRules(c *gin.Context) {
	params, errs := validation.ListParams(c)
	if errs != nil {
		validation.Abort(c, errs)
		return
	}

	rules, err := h.ruleUsecase.ListRules(c.Request.Context(), params)
	if err != nil {
		h.fail(c, err)
		return
	}

	// Return empty array instead of null
	if rules == nil {
		rules = []*domain.EmailRule{}
	}
	c.JSON(http.StatusOK, rules)
}

// GetRule returns a specific rule
// GET /api/rules/:id
func (h *RuleHandler) GetRule(c *gin.Context) {
	id, errs := validation.PathID(c, "id")
	if errs != nil {
		validation.Abort(c, errs)
		return
	}

	rule, err := h.ruleUsecase.GetRule(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, rule)
}

// UpdateRule applies a partial update
// PUT /api/rules/:id
func (h *RuleHandler) UpdateRule(c *gin.Context) {
	id, errs := validation.PathID(c, "id")
	if errs != nil {
		validation.Abort(c, errs)
		return
	}

	var req dto.UpdateRuleRequest
	if !validation.BindJSON(c, &req) {
		return
	}

	rule, err := h.ruleUsecase.UpdateRule(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, rule)
}

// DeleteRule removes a rule
// DELETE /api/rules/:id
func (h *RuleHandler) DeleteRule(c *gin.Context) {
	id, errs := validation.PathID(c, "id")
	if errs != nil {
		validation.Abort(c, errs)
		return
	}

	if err := h.ruleUsecase.DeleteRule(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleRule flips the active flag
// PATCH /api/rules/:id/toggle
func (h *RuleHandler) ToggleRule(c *gin.Context) {
	id, errs := validation.PathID(c, "id")
	if errs != nil {
		validation.Abort(c, errs)
		return
	}

	rule, err := h.ruleUsecase.ToggleRule(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, rule)
}

func (h *RuleHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrRuleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Rule not found"})
	case errors.Is(err, domain.ErrDuplicateRuleName):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Rule with this name already exists"})
	default:
		h.log.Error("rule request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}
