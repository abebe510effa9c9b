package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForRules(t *testing.T) {
	t.Run("no search", func(t *testing.T) {
		spec := ForRules(DefaultParams())

		assert.Empty(t, spec.Conditions)
		assert.Equal(t, []string{"priority DESC", "created_at DESC", "id DESC"}, spec.Order)
		assert.Equal(t, 0, spec.Offset)
		assert.Equal(t, DefaultLimit, spec.Limit)
	})

	t.Run("search covers name, conditions and actions", func(t *testing.T) {
		spec := ForRules(Params{Skip: 5, Limit: 10, Search: "Urgent"})

		require.Len(t, spec.Conditions, 1)
		cond := spec.Conditions[0]
		assert.Equal(t,
			`(LOWER(name) LIKE LOWER(?) ESCAPE '\' OR LOWER(conditions) LIKE LOWER(?) ESCAPE '\' OR LOWER(actions) LIKE LOWER(?) ESCAPE '\')`,
			cond.SQL)
		assert.Equal(t, []interface{}{"%Urgent%", "%Urgent%", "%Urgent%"}, cond.Args)
		assert.Equal(t, 5, spec.Offset)
		assert.Equal(t, 10, spec.Limit)
	})

	t.Run("category is ignored for rules", func(t *testing.T) {
		spec := ForRules(Params{Limit: 10, Category: "general"})
		assert.Empty(t, spec.Conditions)
	})
}

func TestForTemplates(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		wantSQL  []string
		wantArgs [][]interface{}
	}{
		{
			name:   "no filters",
			params: DefaultParams(),
		},
		{
			name:     "search only",
			params:   Params{Limit: 20, Search: "welcome"},
			wantSQL:  []string{`(LOWER(name) LIKE LOWER(?) ESCAPE '\' OR LOWER(subject) LIKE LOWER(?) ESCAPE '\' OR LOWER(body) LIKE LOWER(?) ESCAPE '\')`},
			wantArgs: [][]interface{}{{"%welcome%", "%welcome%", "%welcome%"}},
		},
		{
			name:     "category only",
			params:   Params{Limit: 20, Category: "marketing"},
			wantSQL:  []string{"category = ?"},
			wantArgs: [][]interface{}{{"marketing"}},
		},
		{
			name:   "search and category",
			params: Params{Limit: 20, Search: "sale", Category: "marketing"},
			wantSQL: []string{
				`(LOWER(name) LIKE LOWER(?) ESCAPE '\' OR LOWER(subject) LIKE LOWER(?) ESCAPE '\' OR LOWER(body) LIKE LOWER(?) ESCAPE '\')`,
				"category = ?",
			},
			wantArgs: [][]interface{}{{"%sale%", "%sale%", "%sale%"}, {"marketing"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := ForTemplates(tt.params)

			require.Len(t, spec.Conditions, len(tt.wantSQL))
			for i, cond := range spec.Conditions {
				assert.Equal(t, tt.wantSQL[i], cond.SQL)
				assert.Equal(t, tt.wantArgs[i], cond.Args)
			}
			assert.Equal(t, []string{"created_at DESC", "id DESC"}, spec.Order)
		})
	}
}

func TestPaginationBounds(t *testing.T) {
	spec := ForRules(Params{Skip: -3, Limit: 0})
	assert.Equal(t, 0, spec.Offset)
	assert.Equal(t, DefaultLimit, spec.Limit)

	spec = ForTemplates(Params{Limit: MaxLimit + 50})
	assert.Equal(t, MaxLimit, spec.Limit)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%URGENT%", LikePattern("URGENT"))
	assert.Equal(t, "%ÉTÉ%", LikePattern("ÉTÉ"))
	assert.Equal(t, `%50\%%`, LikePattern("50%"))
	assert.Equal(t, `%a\_b%`, LikePattern("a_b"))
	assert.Equal(t, `%C:\\temp%`, LikePattern(`C:\temp`))
}
