// Package usecase aggregates rule and template counts for the dashboard.
package usecase

import (
	"context"
)

// RuleCounter is the part of the rule repository the aggregator reads.
type RuleCounter interface {
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

// TemplateCounter is the part of the template repository the aggregator reads.
type TemplateCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
}

// Stats is the body of GET /api/stats.
type Stats struct {
	TotalRules          int64            `json:"total_rules"`
	ActiveRules         int64            `json:"active_rules"`
	InactiveRules       int64            `json:"inactive_rules"`
	TotalTemplates      int64            `json:"total_templates"`
	TemplatesByCategory map[string]int64 `json:"templates_by_category"`
}

// StatsUsecase defines the interface for the aggregator
type StatsUsecase interface {
	GetStats(ctx context.Context) (*Stats, error)
}

type statsUsecase struct {
	rules     RuleCounter
	templates TemplateCounter
}

// NewStatsUsecase creates a new instance of statsUsecase
func NewStatsUsecase(rules RuleCounter, templates TemplateCounter) StatsUsecase {
	return &statsUsecase{rules: rules, templates: templates}
}

// GetStats counts at call time. The queries do not share a snapshot, so
// inactive is clamped in case a write lands between them.
func (u *statsUsecase) GetStats(ctx context.Context) (*Stats, error) {
	total, err := u.rules.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := u.rules.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	templates, err := u.templates.Count(ctx)
	if err != nil {
		return nil, err
	}
	byCategory, err := u.templates.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	if byCategory == nil {
		byCategory = map[string]int64{}
	}

	inactive := total - active
	if inactive < 0 {
		inactive = 0
	}

	return &Stats{
		TotalRules:          total,
		ActiveRules:         active,
		InactiveRules:       inactive,
		TotalTemplates:      templates,
		TemplatesByCategory: byCategory,
	}, nil
}
