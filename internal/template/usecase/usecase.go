package usecase

import (
	"context"

	"email-sorter/internal/template/domain"
	"email-sorter/internal/template/dto"
	"email-sorter/pkg/query"
)

// TemplateUsecase defines the interface for template business logic
type TemplateUsecase interface {
	CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest) (*domain.EmailTemplate, error)
	GetTemplate(ctx context.Context, id uint) (*domain.EmailTemplate, error)
	ListTemplates(ctx context.Context, params query.Params) ([]*domain.EmailTemplate, error)
	UpdateTemplate(ctx context.Context, id uint, req dto.UpdateTemplateRequest) (*domain.EmailTemplate, error)
	DeleteTemplate(ctx context.Context, id uint) error
}
