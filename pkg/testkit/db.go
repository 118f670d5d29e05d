package testkit

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"github.com/qcharged/product-service/pkg/database"
)

var dbSeq atomic.Int64

// OpenDB returns a private in-memory SQLite database that lives until the
// test ends. migrate, when non-nil, prepares the schema.
func OpenDB(t testing.TB, migrate func(*gorm.DB) error) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	db, err := database.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("testkit: open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if migrate != nil {
		if err := migrate(db); err != nil {
			t.Fatalf("testkit: migrate: %v", err)
		}
	}
	return db
}
