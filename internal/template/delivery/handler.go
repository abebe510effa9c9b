package delivery

import (
	"errors"
	"net/http"

	"email-sorter/internal/template/domain"
	"email-sorter/internal/template/dto"
	"email-sorter/internal/template/usecase"
	"email-sorter/pkg/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TemplateHandler handles template-related HTTP requests
type TemplateHandler struct {
	templateUsecase usecase.TemplateUsecase
	log             *zap.Logger
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templateUsecase usecase.TemplateUsecase, log *zap.Logger) *TemplateHandler {
	return &TemplateHandler{
		templateUsecase: templateUsecase,
		log:             log,
	}
}

func (h *TemplateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	templates := rg.Group("/templates")
	{
		templates.POST("", h.CreateTemplate)
		templates.GET("", h.ListTemplates)
		templates.GET("/:id", h.GetTemplate)
		templates.PUT("/:id", h.UpdateTemplate)
		templates.DELETE("/:id", h.DeleteTemplate)
	}
}

// POST /api/templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if !validation.BindJSON(c, &req, "category") {
		return
	}

	tmpl, err := h.templateUsecase.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, tmpl)
}

// ListTemplates returns templates, newest first
// GET /api/templates?skip=0&limit=100&search=invoice&category=billing
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	params, errs := validation.ListParams(c)
	if errs != nil {
		validation.Abort(c, errs)
		return
	}

	templates, err := h.templateUsecase.ListTemplates(c.Request.Context(), params)
	if err != nil {
		h.fail(c, err)
		return
	}

	if templates == nil {
		templates = []*domain.EmailTemplate{}
	}
	c.JSON(http.StatusOK, templates)
}

// GET /api/templates/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id, errs := validation.PathID(c, "id")
	if errs != nil {
		validation.Abort(c, errs)
		return
	}

	tmpl, err := h.templateUsecase.GetTemplate(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, tmpl)
}

// PUT /api/templates/:id
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	id, errs := validation.PathID(c, "id")
	if errs != nil {
		validation.Abort(c, errs)
		return
	}

	var req dto.UpdateTemplateRequest
	if !validation.BindJSON(c, &req) {
		return
	}

	tmpl, err := h.templateUsecase.UpdateTemplate(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, tmpl)
}

// DELETE /api/templates/:id
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	id, errs := validation.PathID(c, "id")
	if errs != nil {
		validation.Abort(c, errs)
		return
	}

	if err := h.templateUsecase.DeleteTemplate(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TemplateHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Template not found"})
	case errors.Is(err, domain.ErrDuplicateTemplateName):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Template with this name already exists"})
	default:
		h.log.Error("template request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}
