package migrations

import (
	"strings"

	"gorm.io/gorm"

	"github.com/qcharged/product-service/app/models"
	"github.com/qcharged/product-service/pkg/migration"
)

func init() {
	migration.Register("20260102000000_add_products_description_key", &AddProductsDescriptionKey{})
}

// AddProductsDescriptionKey adds the case-folded description used by search
// and fills it for rows written before the column existed.
type AddProductsDescriptionKey struct{}

func (m *AddProductsDescriptionKey) Up(db *gorm.DB) error {
	if !db.Migrator().HasColumn(&models.Product{}, "DescriptionKey") {
		if err := db.Migrator().AddColumn(&models.Product{}, "DescriptionKey"); err != nil {
			return err
		}
	}

	var batch []models.Product
	return db.Model(&models.Product{}).
		Select("id", "description").
		FindInBatches(&batch, 200, func(*gorm.DB, int) error {
			for _, p := range batch {
				err := db.Model(&models.Product{}).
					Where("id = ?", p.ID).
					UpdateColumn("description_key", strings.ToLower(p.Description)).Error
				if err != nil {
					return err
				}
			}
			return nil
		}).Error
}

func (m *AddProductsDescriptionKey) Down(db *gorm.DB) error {
	if !db.Migrator().HasColumn(&models.Product{}, "DescriptionKey") {
		return nil
	}
	return db.Migrator().DropColumn(&models.Product{}, "DescriptionKey")
}
