package usecase

import (
	"context"

	"email-sorter/internal/rule/domain"
	"email-sorter/internal/rule/dto"
	"email-sorter/internal/rule/repository"
	"email-sorter/pkg/metrics"
	"email-sorter/pkg/query"

	"go.uber.org/zap"
)

const entity = "rule"

// ruleUsecase implements RuleUsecase interface
type ruleUsecase struct {
	ruleRepo repository.RuleRepository
	log      *zap.Logger
}

// NewRuleUsecase creates a new instance of ruleUsecase
func NewRuleUsecase(ruleRepo repository.RuleRepository, log *zap.Logger) RuleUsecase {
	return &ruleUsecase{
		ruleRepo: ruleRepo,
		log:      log.Named("rule"),
	}
}

func (u *ruleUsecase) CreateRule(ctx context.Context, req dto.CreateRuleRequest) (*domain.EmailRule, error) {
	taken, err := u.ruleRepo.ExistsByName(ctx, req.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateRuleName
	}

	rule := &domain.EmailRule{
		Name:       req.Name,
		Conditions: req.Conditions,
		Actions:    req.Actions,
		IsActive:   req.Active(),
		Priority:   req.Priority,
	}
	if err := u.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}

	metrics.IncrementMutation(entity, "create")
	u.log.Info("rule created", zap.Uint("id", rule.ID), zap.String("name", rule.Name))
	return rule, nil
}

func (u *ruleUsecase) GetRule(ctx context.Context, id uint) (*domain.EmailRule, error) {
	rule, err := u.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrRuleNotFound
	}
	return rule, nil
}

func (u *ruleUsecase) ListRules(ctx context.Context, params query.Params) ([]*domain.EmailRule, error) {
	return u.ruleRepo.List(ctx, params)
}

func (u *ruleUsecase) UpdateRule(ctx context.Context, id uint, req dto.UpdateRuleRequest) (*domain.EmailRule, error) {
	rule, err := u.GetRule(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		taken, err := u.ruleRepo.ExistsByName(ctx, *req.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateRuleName
		}
	}

	columns := req.ApplyTo(rule)
	if len(columns) == 0 {
		return rule, nil
	}
	if err := u.ruleRepo.Update(ctx, rule, columns); err != nil {
		return nil, err
	}

	metrics.IncrementMutation(entity, "update")
	u.log.Info("rule updated", zap.Uint("id", id), zap.Strings("columns", columns))

	// Columns not in the request may have changed since the first read.
	return u.GetRule(ctx, id)
}

func (u *ruleUsecase) DeleteRule(ctx context.Context, id uint) error {
	if err := u.ruleRepo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.IncrementMutation(entity, "delete")
	u.log.Info("rule deleted", zap.Uint("id", id))
	return nil
}

func (u *ruleUsecase) ToggleRule(ctx context.Context, id uint) (*domain.EmailRule, error) {
	if err := u.ruleRepo.Toggle(ctx, id); err != nil {
		return nil, err
	}

	rule, err := u.GetRule(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.IncrementMutation(entity, "toggle")
	u.log.Info("rule toggled", zap.Uint("id", id), zap.Bool("is_active", rule.IsActive))
	return rule, nil
}
