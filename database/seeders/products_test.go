package seeders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qcharged/product-service/app/models"
	"github.com/qcharged/product-service/database/seeders"
	"github.com/qcharged/product-service/pkg/testkit"
)

func TestRunAllIsIdempotent(t *testing.T) {
	db := testkit.OpenDB(t, func(db *gorm.DB) error { return db.AutoMigrate(&models.Product{}) })
	ctx := context.Background()

	ran, err := seeders.RunAll(ctx, db)
	require.NoError(t, err)
	assert.Contains(t, ran, "products")

	var first int64
	require.NoError(t, db.Model(&models.Product{}).Count(&first).Error)
	assert.Positive(t, first)

	_, err = seeders.RunAll(ctx, db)
	require.NoError(t, err)

	var second int64
	require.NoError(t, db.Model(&models.Product{}).Count(&second).Error)
	assert.Equal(t, first, second)
}
