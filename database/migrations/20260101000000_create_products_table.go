package migrations

import (
	"gorm.io/gorm"

	"github.com/qcharged/product-service/app/models"
	"github.com/qcharged/product-service/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_products_table", &CreateProductsTable{})
}

// CreateProductsTable creates products with the unique name_key index.
type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Product{})
}
