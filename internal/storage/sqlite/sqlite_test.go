package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestDB opens a migrated in-memory database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDB(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}
