// Package dbtest provides a migrated in-memory SQLite database for tests.
package dbtest

import (
	"fmt"
	"testing"

	"golf-backend/internal/database"

	"github.com/google/uuid"
)

// New returns a fresh database with the production schema applied. Each call
// gets its own shared-cache memory database, closed when the test ends.
func New(tb testing.TB) *database.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Init(database.DriverSQLite, dsn)
	if err != nil {
		tb.Fatalf("failed to init test database: %v", err)
	}
	tb.Cleanup(func() { db.Close() })
	return db
}
