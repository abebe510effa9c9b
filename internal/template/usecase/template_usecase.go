package usecase

import (
	"context"

	"email-sorter/internal/template/domain"
	"email-sorter/internal/template/dto"
	"email-sorter/internal/template/repository"
	"email-sorter/pkg/metrics"
	"email-sorter/pkg/query"

	"go.uber.org/zap"
)

const entity = "template"

// templateUsecase implements TemplateUsecase interface
type templateUsecase struct {
	templateRepo repository.TemplateRepository
	log          *zap.Logger
}

// NewTemplateUsecase creates a new instance of templateUsecase
func NewTemplateUsecase(templateRepo repository.TemplateRepository, log *zap.Logger) TemplateUsecase {
	return &templateUsecase{
		templateRepo: templateRepo,
		log:          log.Named("template"),
	}
}

func (u *templateUsecase) CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest) (*domain.EmailTemplate, error) {
	if err := u.ensureNameFree(ctx, req.Name, 0); err != nil {
		return nil, err
	}

	tmpl := &domain.EmailTemplate{
		Name:     req.Name,
		Subject:  req.Subject,
		Body:     req.Body,
		Category: req.CategoryOrDefault(),
	}
	if err := u.templateRepo.Create(ctx, tmpl); err != nil {
		return nil, err
	}

	metrics.IncrementMutation(entity, "create")
	u.log.Info("template created",
		zap.Uint("id", tmpl.ID),
		zap.String("name", tmpl.Name),
		zap.String("category", tmpl.Category))
	return tmpl, nil
}

func (u *templateUsecase) GetTemplate(ctx context.Context, id uint) (*domain.EmailTemplate, error) {
	tmpl, err := u.templateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, domain.ErrTemplateNotFound
	}
	return tmpl, nil
}

func (u *templateUsecase) ListTemplates(ctx context.Context, params query.Params) ([]*domain.EmailTemplate, error) {
	return u.templateRepo.List(ctx, params)
}

func (u *templateUsecase) UpdateTemplate(ctx context.Context, id uint, req dto.UpdateTemplateRequest) (*domain.EmailTemplate, error) {
	tmpl, err := u.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := u.ensureNameFree(ctx, *req.Name, id); err != nil {
			return nil, err
		}
	}

	columns := req.ApplyTo(tmpl)
	if len(columns) == 0 {
		return tmpl, nil
	}
	if err := u.templateRepo.Update(ctx, tmpl, columns); err != nil {
		return nil, err
	}

	metrics.IncrementMutation(entity, "update")
	u.log.Info("template updated", zap.Uint("id", id), zap.Strings("columns", columns))
	return u.GetTemplate(ctx, id)
}

func (u *templateUsecase) DeleteTemplate(ctx context.Context, id uint) error {
	if err := u.templateRepo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.IncrementMutation(entity, "delete")
	u.log.Info("template deleted", zap.Uint("id", id))
	return nil
}

func (u *templateUsecase) ensureNameFree(ctx context.Context, name string, excludeID uint) error {
	taken, err := u.templateRepo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrDuplicateTemplateName
	}
	return nil
}
