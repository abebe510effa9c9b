package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"email-sorter/internal/rule/domain"
	"email-sorter/pkg/query"

	"gorm.io/gorm"
)

// mutableColumns may be named in an update; id and created_at never change.
var mutableColumns = []string{"name", "conditions", "actions", "is_active", "priority"}

// gormRuleRepository implements RuleRepository using GORM
type gormRuleRepository struct {
	db *gorm.DB
}

// NewGormRuleRepository creates a new GORM-based RuleRepository
func NewGormRuleRepository(db *gorm.DB) RuleRepository {
	return &gormRuleRepository{db: db}
}

func (r *gormRuleRepository) Create(ctx context.Context, rule *domain.EmailRule) error {
	rule.ID = 0
	rule.CreatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		return translate(err, "create rule")
	}
	return nil
}

func (r *gormRuleRepository) FindByID(ctx context.Context, id uint) (*domain.EmailRule, error) {
	var rule domain.EmailRule
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find rule %d: %w", id, err)
	}
	return &rule, nil
}

func (r *gormRuleRepository) List(ctx context.Context, params query.Params) ([]*domain.EmailRule, error) {
	rules := make([]*domain.EmailRule, 0)
	tx := query.ForRules(params).Apply(r.db.WithContext(ctx).Model(&domain.EmailRule{}))
	if err := tx.Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	return rules, nil
}

func (r *gormRuleRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&domain.EmailRule{}).Where("name = ?", name)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check rule name: %w", err)
	}
	return count > 0, nil
}

func (r *gormRuleRepository) Update(ctx context.Context, rule *domain.EmailRule, columns []string) error {
	if err := checkWritable(columns); err != nil {
		return err
	}
	if len(columns) == 0 {
		existing, err := r.FindByID(ctx, rule.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrRuleNotFound
		}
		return nil
	}

	result := r.db.WithContext(ctx).Model(&domain.EmailRule{ID: rule.ID}).
		Select(columns).
		Updates(rule)
	if result.Error != nil {
		return translate(result.Error, "update rule")
	}
	if result.RowsAffected == 0 {
		return domain.ErrRuleNotFound
	}
	return nil
}

func (r *gormRuleRepository) Toggle(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&domain.EmailRule{}).
		Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active"))
	if result.Error != nil {
		return fmt.Errorf("toggle rule %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrRuleNotFound
	}
	return nil
}

func (r *gormRuleRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.EmailRule{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete rule %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrRuleNotFound
	}
	return nil
}

func (r *gormRuleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.EmailRule{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count rules: %w", err)
	}
	return count, nil
}

func (r *gormRuleRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.EmailRule{}).
		Where("is_active = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count active rules: %w", err)
	}
	return count, nil
}

func checkWritable(columns []string) error {
	for _, col := range columns {
		if !slices.Contains(mutableColumns, col) {
			return fmt.Errorf("update rule: column %q is not writable", col)
		}
	}
	return nil
}

// translate maps a unique-index violation on name to the domain error. It
// relies on gorm.Config.TranslateError being enabled.
func translate(err error, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateRuleName
	}
	return fmt.Errorf("%s: %w", op, err)
}
