// Package testdb opens isolated in-memory SQLite databases with the catalog schema.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.New(t)
//	    store := gormstore.New(db)
//	}
package testdb

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"icebreaker/backend/internal/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var counter atomic.Int64

// New returns a migrated, seeded database that is closed when the test ends.
// Every call gets its own named in-memory database, so parallel tests never share rows.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", counter.Add(1))
	db, err := database.Open(sqlite.Open(dsn), logger.Silent)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// One connection keeps the in-memory database alive and serialises transactions.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Seed(context.Background(), db, []string{"icebreaker", "group", "word", "physical"}); err != nil {
		t.Fatalf("failed to seed test db: %v", err)
	}
	return db
}
