package repository

import (
	"context"

	"email-sorter/internal/rule/domain"
	"email-sorter/pkg/query"
)

// RuleRepository defines the interface for rule data access
type RuleRepository interface {
	// Create inserts a rule and fills in its ID and CreatedAt
	Create(ctx context.Context, rule *domain.EmailRule) error

	// FindByID returns nil, nil when no rule has the given ID
	FindByID(ctx context.Context, id uint) (*domain.EmailRule, error)

	// List returns the rules matching params, ordered and paginated
	List(ctx context.Context, params query.Params) ([]*domain.EmailRule, error)

	// ExistsByName reports whether another rule already uses name.
	// excludeID of 0 excludes nothing.
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)

	// Update writes the named columns of rule. Other columns keep whatever
	// the database holds. Unknown columns are rejected.
	Update(ctx context.Context, rule *domain.EmailRule, columns []string) error

	// Toggle flips is_active in place
	Toggle(ctx context.Context, id uint) error

	// Delete removes a rule by ID
	Delete(ctx context.Context, id uint) error

	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}
