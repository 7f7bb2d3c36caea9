package storage

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB opens an in-memory database with the schema created.
// The connection is closed by t.Cleanup.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}
