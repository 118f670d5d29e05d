package database_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qcharged/product-service/pkg/database"
)

type widget struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`
}

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) }) //nolint:errcheck
	require.NoError(t, db.AutoMigrate(&widget{}))
	return db
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open("oracle", "x")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestPing(t *testing.T) {
	db := openMemory(t)
	assert.NoError(t, database.Ping(context.Background(), db))
}

func TestTransactionRollsBackOnError(t *testing.T) {
	db := openMemory(t)
	boom := errors.New("boom")

	err := database.Transaction(context.Background(), db, database.TxOptions{}, func(tx *gorm.DB) error {
		require.NoError(t, tx.Create(&widget{Name: "a"}).Error)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int64
	require.NoError(t, db.Model(&widget{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestReadOnlyTransactionOnSQLite(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, db.Create(&widget{Name: "a"}).Error)

	var got []widget
	err := database.Transaction(context.Background(), db, database.TxOptions{ReadOnly: true}, func(tx *gorm.DB) error {
		return tx.Find(&got).Error
	})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestIsUniqueViolation(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, db.Create(&widget{Name: "a"}).Error)

	err := db.Create(&widget{Name: "a"}).Error
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))

	assert.True(t, database.IsUniqueViolation(fmt.Errorf("wrap: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, database.IsUniqueViolation(errors.New("Error 1062: Duplicate entry 'x' for key 'name'")))
	assert.False(t, database.IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, database.IsUniqueViolation(nil))
}

func TestSupportsReadOnlyTx(t *testing.T) {
	assert.True(t, database.SupportsReadOnlyTx("postgres"))
	assert.True(t, database.SupportsReadOnlyTx("mysql"))
	assert.False(t, database.SupportsReadOnlyTx("sqlite"))
	assert.False(t, database.SupportsReadOnlyTx("sqlserver"))
}
