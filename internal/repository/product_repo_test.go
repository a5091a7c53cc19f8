package repository

import (
	"fmt"
	"testing"

	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryRunPostgres opens a postgres-dialect handle that never connects; DryRun
// builds SQL without executing, which is all these tests need.
func dryRunPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=pos dbname=pos",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func dryRunSqlite(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DryRun: true,
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestLockForUpdateAddsClauseOnPostgres(t *testing.T) {
	db := dryRunPostgres(t)

	var product model.Product
	stmt := lockForUpdate(db).Find(&product, "id = ?", uuid.New()).Statement
	assert.Contains(t, stmt.SQL.String(), "FOR UPDATE")
}

func TestLockForUpdateSkipsSqlite(t *testing.T) {
	db := dryRunSqlite(t)

	var product model.Product
	stmt := lockForUpdate(db).Find(&product, "id = ?", uuid.New()).Statement
	assert.NotContains(t, stmt.SQL.String(), "FOR UPDATE")
}
