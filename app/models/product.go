package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Prices are serialised as JSON numbers, e.g. 9.99 rather than "9.99".
	decimal.MarshalJSONWithoutQuotes = true
}

// PriceScale is the number of decimal places kept for prices.
const PriceScale = 2

// Product represents a product in the catalogue.
type Product struct {
	ID             uint            `gorm:"primaryKey"                                          json:"id"`
	Name           string          `gorm:"size:100;not null"                                   json:"name"`
	NameKey        string          `gorm:"size:100;not null;uniqueIndex:idx_products_name_key" json:"-"`
	Description    string          `gorm:"size:500"                                            json:"description"`
	DescriptionKey string          `gorm:"column:description_key"                              json:"-"`
	Price          decimal.Decimal `gorm:"type:decimal(19,2);not null"                         json:"price"`
	CreatedAt      time.Time       `gorm:"not null"                                            json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"not null"                                            json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

// BeforeSave keeps the case-folded search and uniqueness keys in step with
// Name and Description.
func (p *Product) BeforeSave(*gorm.DB) error {
	p.NameKey = NameKey(p.Name)
	p.DescriptionKey = strings.ToLower(p.Description)
	return nil
}

// NameKey is the value product names are compared by.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ProductSortColumns maps the sortable JSON properties to columns.
var ProductSortColumns = map[string]string{
	"id":          "id",
	"name":        "name",
	"description": "description",
	"price":       "price",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// ProductInput is the request body for creating or updating a product.
type ProductInput struct {
	Name        string           `json:"name"        validate:"required,max=100"`
	Description string           `json:"description" validate:"nullable,max=500"`
	Price       *decimal.Decimal `json:"price"       validate:"required,gte=0,lte=9999999999999.99"`
}

// Normalize trims the name and rounds the price to PriceScale.
func (in *ProductInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	if in.Price != nil {
		rounded := in.Price.Round(PriceScale)
		in.Price = &rounded
	}
}

// ApplyTo copies the input onto p, leaving ID and timestamps untouched.
func (in ProductInput) ApplyTo(p *Product) {
	p.Name = in.Name
	p.Description = in.Description
	if in.Price != nil {
		p.Price = *in.Price
	}
}
