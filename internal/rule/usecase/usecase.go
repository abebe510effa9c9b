package usecase

import (
	"context"

	"email-sorter/internal/rule/domain"
	"email-sorter/internal/rule/dto"
	"email-sorter/pkg/query"
)

// RuleUsecase defines the interface for rule business logic
type RuleUsecase interface {
	// CreateRule stores a new rule; ErrDuplicateRuleName if the name is taken
	CreateRule(ctx context.Context, req dto.CreateRuleRequest) (*domain.EmailRule, error)

	// GetRule returns ErrRuleNotFound for unknown IDs
	GetRule(ctx context.Context, id uint) (*domain.EmailRule, error)

	// ListRules filters, orders and paginates rules
	ListRules(ctx context.Context, params query.Params) ([]*domain.EmailRule, error)

	// UpdateRule applies only the supplied fields
	UpdateRule(ctx context.Context, id uint, req dto.UpdateRuleRequest) (*domain.EmailRule, error)

	// DeleteRule removes a rule
	DeleteRule(ctx context.Context, id uint) error

	// ToggleRule flips is_active and returns the updated rule
	ToggleRule(ctx context.Context, id uint) (*domain.EmailRule, error)
}
