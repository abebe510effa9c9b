// Package query turns list request parameters into an ordered, filtered and
// paginated gorm query.
//
// The builder is pure: ForRules and ForTemplates return a Spec that can be
// inspected in tests and rendered onto any *gorm.DB with Apply. All SQL it
// emits is portable between PostgreSQL and SQLite.
package query

import (
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Params are the list parameters accepted by the collection endpoints.
type Params struct {
	Skip     int    `form:"skip" json:"skip" binding:"min=0"`
	Limit    int    `form:"limit" json:"limit" binding:"min=1,max=1000"`
	Search   string `form:"search" json:"search"`
	Category string `form:"category" json:"category"`
}

// DefaultParams returns the parameters used when the client sends none.
func DefaultParams() Params {
	return Params{Skip: 0, Limit: DefaultLimit}
}

// Condition is a single WHERE fragment with its positional arguments.
type Condition struct {
	SQL  string
	Args []interface{}
}

// Spec is a fully resolved list query.
type Spec struct {
	Conditions []Condition
	Order      []string
	Offset     int
	Limit      int
}

// Apply renders the spec onto db. Conditions are ANDed; pagination is
// applied after filtering and ordering.
func (s Spec) Apply(db *gorm.DB) *gorm.DB {
	for _, cond := range s.Conditions {
		db = db.Where(cond.SQL, cond.Args...)
	}
	for _, order := range s.Order {
		db = db.Order(order)
	}
	return db.Offset(s.Offset).Limit(s.Limit)
}

// ForRules builds the rule listing: search over name, conditions and actions,
// highest priority first, newest first within a priority.
func ForRules(p Params) Spec {
	spec := paginate(p)
	if p.Search != "" {
		spec.Conditions = append(spec.Conditions, containsAny(p.Search, "name", "conditions", "actions"))
	}
	spec.Order = []string{"priority DESC", "created_at DESC", "id DESC"}
	return spec
}

// ForTemplates builds the template listing: search over name, subject and
// body, optionally narrowed to one category, newest first.
func ForTemplates(p Params) Spec {
	spec := paginate(p)
	if p.Search != "" {
		spec.Conditions = append(spec.Conditions, containsAny(p.Search, "name", "subject", "body"))
	}
	if p.Category != "" {
		spec.Conditions = append(spec.Conditions, Condition{SQL: "category = ?", Args: []interface{}{p.Category}})
	}
	spec.Order = []string{"created_at DESC", "id DESC"}
	return spec
}

func paginate(p Params) Spec {
	offset := p.Skip
	if offset < 0 {
		offset = 0
	}
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Spec{Offset: offset, Limit: limit}
}

// containsAny matches rows where any of columns contains term, ignoring case.
// Both sides are folded by the database so the comparison uses one notion of
// case.
func containsAny(term string, columns ...string) Condition {
	pattern := LikePattern(term)
	parts := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, "LOWER("+col+") LIKE LOWER(?) ESCAPE '\\'")
		args = append(args, pattern)
	}
	return Condition{
		SQL:  "(" + strings.Join(parts, " OR ") + ")",
		Args: args,
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern escapes LIKE wildcards in term and wraps it for a substring
// match. Case folding is left to the SQL.
func LikePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
