package testkit

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/kicksup/kicksup/database/migrations"
	"github.com/kicksup/kicksup/database/seeders"
	"github.com/kicksup/kicksup/pkg/database"
	"github.com/kicksup/kicksup/pkg/migration"
)

var dbSeq atomic.Int64

// NewDB opens a private in-memory sqlite database with every migration
// applied. It is closed when the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	_, err = migration.New(db, nil).Run()
	require.NoError(t, err)
	return db
}

// NewSeededDB is NewDB plus the demo users and catalog.
func NewSeededDB(t testing.TB) *gorm.DB {
	t.Helper()
	db := NewDB(t)
	require.NoError(t, seeders.RunAll(db, nil))
	return db
}
