package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	ruleDelivery "email-sorter/internal/rule/delivery"
	ruledomain "email-sorter/internal/rule/domain"
	ruleRepo "email-sorter/internal/rule/repository"
	ruleUsecase "email-sorter/internal/rule/usecase"
	statsDelivery "email-sorter/internal/stats/delivery"
	statsUsecase "email-sorter/internal/stats/usecase"
	templateDelivery "email-sorter/internal/template/delivery"
	templatedomain "email-sorter/internal/template/domain"
	templateRepo "email-sorter/internal/template/repository"
	templateUsecase "email-sorter/internal/template/usecase"
	"email-sorter/pkg/validation"
	"email-sorter/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	db              *gorm.DB
	log             *zap.Logger
	ruleHandler     *ruleDelivery.RuleHandler
	templateHandler *templateDelivery.TemplateHandler
	statsHandler    *statsDelivery.StatsHandler
	settingsHandler *SettingsHandler
}

// Migrate creates or updates the tables for every stored entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ruledomain.EmailRule{}, &templatedomain.EmailTemplate{})
}

// NewHandler wires repositories, usecases and HTTP handlers over db.
func NewHandler(db *gorm.DB, log *zap.Logger, level zap.AtomicLevel) *Handler {
	rules := ruleRepo.NewGormRuleRepository(db)
	templates := templateRepo.NewGormTemplateRepository(db)

	ruleUc := ruleUsecase.NewRuleUsecase(rules, log)
	templateUc := templateUsecase.NewTemplateUsecase(templates, log)
	statsUc := statsUsecase.NewStatsUsecase(rules, templates)

	return &Handler{
		db:              db,
		log:             log,
		ruleHandler:     ruleDelivery.NewRuleHandler(ruleUc, log),
		templateHandler: templateDelivery.NewTemplateHandler(templateUc, log),
		statsHandler:    statsDelivery.NewStatsHandler(statsUc, log),
		settingsHandler: NewSettingsHandler(level, log),
	}
}

// Engine builds the gin engine with middleware, UI and routes.
func (h *Handler) Engine() (*gin.Engine, error) {
	if err := validation.Register(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(RequestID(), AccessLog(h.log), Metrics(), Recovery(h.log), CORS())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static()))

	SetupRoutes(r, h)
	return r, nil
}

// Start serves on addr until ctx is cancelled, then drains in-flight
// requests for at most shutdownTimeout.
func (h *Handler) Start(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	engine, err := h.Engine()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.log.Info("HTTP server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	h.log.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	h.log.Info("HTTP server stopped")
	return nil
}
