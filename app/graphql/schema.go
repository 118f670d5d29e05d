// Package graphql exposes a read-only GraphQL view of the catalogue.
//
//	{ products { id name price } }
//	{ product(id: 1) { name description } }
//	{ searchProducts(keyword: "test") { id name } }
//	{ productsByPriceRange(minPrice: "10", maxPrice: "20") { id price } }
//
// Prices are strings so that no precision is lost.
package graphql

import (
	"context"
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"github.com/qcharged/product-service/app/models"
	gql "github.com/qcharged/product-service/pkg/graphql"
)

// ProductReader is the part of the service the schema reads from.
type ProductReader interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id uint) (models.Product, error)
	SearchProducts(ctx context.Context, keyword string) ([]models.Product, error)
	FindProductsByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]models.Product, error)
}

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return int(p.Source.(models.Product).ID), nil
			},
		},
		"name": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Product).Name, nil
			},
		},
		"description": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Product).Description, nil
			},
		},
		"price": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Product).Price.StringFixed(models.PriceScale), nil
			},
		},
		"createdAt": &graphql.Field{
			Type: graphql.DateTime,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Product).CreatedAt, nil
			},
		},
		"updatedAt": &graphql.Field{
			Type: graphql.DateTime,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Product).UpdatedAt, nil
			},
		},
	},
})

// NewSchema builds the query schema over reader.
func NewSchema(reader ProductReader) (graphql.Schema, error) {
	productList := graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType)))

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: productList,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return reader.GetAllProducts(p.Context)
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id := p.Args["id"].(int)
					if id <= 0 {
						return nil, fmt.Errorf("id must be a positive integer")
					}
					return reader.GetProductByID(p.Context, uint(id))
				},
			},
			"searchProducts": &graphql.Field{
				Type: productList,
				Args: graphql.FieldConfigArgument{
					"keyword": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return reader.SearchProducts(p.Context, p.Args["keyword"].(string))
				},
			},
			"productsByPriceRange": &graphql.Field{
				Type: productList,
				Args: graphql.FieldConfigArgument{
					"minPrice": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"maxPrice": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					minPrice, err := decimal.NewFromString(p.Args["minPrice"].(string))
					if err != nil {
						return nil, fmt.Errorf("minPrice must be a decimal number")
					}
					maxPrice, err := decimal.NewFromString(p.Args["maxPrice"].(string))
					if err != nil {
						return nil, fmt.Errorf("maxPrice must be a decimal number")
					}
					return reader.FindProductsByPriceRange(p.Context, minPrice, maxPrice)
				},
			},
		},
	})

	return gql.NewSchema(query)
}
