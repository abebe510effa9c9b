package repository

import (
	"context"

	"email-sorter/internal/template/domain"
	"email-sorter/pkg/query"
)

// TemplateRepository defines the interface for template data access
type TemplateRepository interface {
	// Create inserts a template and fills in its ID and CreatedAt
	Create(ctx context.Context, tmpl *domain.EmailTemplate) error

	// FindByID returns nil, nil when no template has the given ID
	FindByID(ctx context.Context, id uint) (*domain.EmailTemplate, error)

	List(ctx context.Context, params query.Params) ([]*domain.EmailTemplate, error)

	// ExistsByName reports whether another template already uses name.
	// excludeID of 0 excludes nothing.
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)

	// Update writes only the named columns of tmpl
	Update(ctx context.Context, tmpl *domain.EmailTemplate, columns []string) error
	Delete(ctx context.Context, id uint) error

	Count(ctx context.Context) (int64, error)

	// CountByCategory returns the number of templates per category. Only
	// categories with at least one template appear.
	CountByCategory(ctx context.Context) (map[string]int64, error)
}
