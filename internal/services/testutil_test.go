package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack-be/internal/database"
	"github.com/fittrack/fittrack-be/internal/models"
)

// newTestDB opens a migrated in-memory database. A single connection
// is enforced so every query sees the same in-memory store.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// testUserModel is a user that exists only as token claims, never in
// the store.
func testUserModel() models.User {
	return models.User{ID: "ghost-user", Email: "ghost@example.com"}
}
