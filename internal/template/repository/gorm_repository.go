package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"email-sorter/internal/template/domain"
	"email-sorter/pkg/query"

	"gorm.io/gorm"
)

var mutableColumns = []string{"name", "subject", "body", "category"}

// gormTemplateRepository implements TemplateRepository using GORM
type gormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GORM-based TemplateRepository
func NewGormTemplateRepository(db *gorm.DB) TemplateRepository {
	return &gormTemplateRepository{db: db}
}

func (r *gormTemplateRepository) Create(ctx context.Context, tmpl *domain.EmailTemplate) error {
	tmpl.ID = 0
	tmpl.CreatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(tmpl).Error; err != nil {
		return translate(err, "create template")
	}
	return nil
}

func (r *gormTemplateRepository) FindByID(ctx context.Context, id uint) (*domain.EmailTemplate, error) {
	var tmpl domain.EmailTemplate
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tmpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find template %d: %w", id, err)
	}
	return &tmpl, nil
}

func (r *gormTemplateRepository) List(ctx context.Context, params query.Params) ([]*domain.EmailTemplate, error) {
	templates := make([]*domain.EmailTemplate, 0)
	tx := query.ForTemplates(params).Apply(r.db.WithContext(ctx).Model(&domain.EmailTemplate{}))
	if err := tx.Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

func (r *gormTemplateRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&domain.EmailTemplate{}).Where("name = ?", name)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check template name: %w", err)
	}
	return count > 0, nil
}

func (r *gormTemplateRepository) Update(ctx context.Context, tmpl *domain.EmailTemplate, columns []string) error {
	if err := checkWritable(columns); err != nil {
		return err
	}
	if len(columns) == 0 {
		existing, err := r.FindByID(ctx, tmpl.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrTemplateNotFound
		}
		return nil
	}

	result := r.db.WithContext(ctx).Model(&domain.EmailTemplate{ID: tmpl.ID}).
		Select(columns).
		Updates(tmpl)
	if result.Error != nil {
		return translate(result.Error, "update template")
	}
	if result.RowsAffected == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}

func (r *gormTemplateRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.EmailTemplate{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete template %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}

func (r *gormTemplateRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.EmailTemplate{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count templates: %w", err)
	}
	return count, nil
}

type categoryCount struct {
	Category string
	Total    int64
}

func (r *gormTemplateRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	var rows []categoryCount
	err := r.db.WithContext(ctx).Model(&domain.EmailTemplate{}).
		Select("category, COUNT(*) AS total").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count templates by category: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Total
	}
	return counts, nil
}

func checkWritable(columns []string) error {
	for _, col := range columns {
		if !slices.Contains(mutableColumns, col) {
			return fmt.Errorf("update template: column %q is not writable", col)
		}
	}
	return nil
}

func translate(err error, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateTemplateName
	}
	return fmt.Errorf("%s: %w", op, err)
}
