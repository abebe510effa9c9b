package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSQLite_LowerFoldsNonASCII(t *testing.T) {
	db, err := Open(SQLite(":memory:"), zaptest.NewLogger(t), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	tests := []struct {
		in   string
		want string
	}{
		{"URGENT", "urgent"},
		{"ÉTÉ", "été"},
		{"ΑΒΓ", "αβγ"},
		{"STRAßE", "straße"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got string
			require.NoError(t, db.Raw("SELECT lower(?)", tt.in).Scan(&got).Error)
			assert.Equal(t, tt.want, got)
		})
	}

	var matched int
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM (SELECT 'Été urgent' AS v) WHERE lower(v) LIKE lower(?)", "%ÉTÉ%").Scan(&matched).Error)
	assert.Equal(t, 1, matched)
}
