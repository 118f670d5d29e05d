package seeders

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/qcharged/product-service/app/models"
	"github.com/qcharged/product-service/app/repositories"
)

func init() {
	Register("products", SeedProducts)
}

var demoProducts = []struct {
	name, description, price string
}{
	{"Laptop", "15-inch laptop with 16GB RAM", "1299.99"},
	{"Wireless Mouse", "Ergonomic wireless mouse", "29.99"},
	{"Mechanical Keyboard", "Tenkeyless keyboard with brown switches", "89.50"},
	{"USB-C Hub", "7-in-1 USB-C hub", "45.00"},
	{"Monitor", "27-inch 4K monitor", "399.00"},
	{"Test Product", "Used by the search examples", "10.00"},
}

// SeedProducts inserts the demo catalogue, skipping names that already exist.
func SeedProducts(ctx context.Context, db *gorm.DB) error {
	repo := repositories.NewProductRepository(db)

	for _, p := range demoProducts {
		exists, err := repo.ExistsByNameIgnoreCase(ctx, p.name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		product := models.Product{
			Name:        p.name,
			Description: p.description,
			Price:       decimal.RequireFromString(p.price),
		}
		if err := repo.Save(ctx, &product); err != nil {
			return err
		}
	}
	return nil
}
