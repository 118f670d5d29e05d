package controllers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/qcharged/product-service/app/models"
	"github.com/qcharged/product-service/pkg/ctx"
	"github.com/qcharged/product-service/pkg/orm"
)

// ProductService is what the controller needs from the service layer.
type ProductService interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetProductsPage(ctx context.Context, pageable orm.Pageable) (orm.Page[models.Product], error)
	GetProductByID(ctx context.Context, id uint) (models.Product, error)
	CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, id uint, input models.ProductInput) (models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	SearchProducts(ctx context.Context, keyword string) ([]models.Product, error)
	FindProductsByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]models.Product, error)
}

// ProductController serves /api/v1/products.
type ProductController struct {
	service ProductService
}

func NewProductController(service ProductService) *ProductController {
	return &ProductController{service: service}
}

// Index lists products, as a plain array or, with paginated=true, as a page.
//
//	GET /api/v1/products?page=0&size=10&sortBy=id&sortDir=asc&paginated=false
func (pc *ProductController) Index(c *ctx.Context) {
	page, err := c.QueryInt("page", 0)
	if err != nil {
		fail(c, err)
		return
	}
	size, err := c.QueryInt("size", orm.DefaultPageSize)
	if err != nil {
		fail(c, err)
		return
	}
	paginated, err := c.QueryBool("paginated", false)
	if err != nil {
		fail(c, err)
		return
	}
	sort := orm.Sort{
		Property:  c.DefaultQuery("sortBy", "id"),
		Direction: orm.ParseDirection(c.DefaultQuery("sortDir", "asc")),
	}

	c.Logger().Info("list products",
		"page", page, "size", size, "sortBy", sort.Property, "sortDir", sort.Direction, "paginated", paginated)

	if !paginated {
		products, err := pc.service.GetAllProducts(c.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
		return
	}

	pageable, err := orm.NewPageable(page, size, sort, models.ProductSortColumns)
	if err != nil {
		fail(c, err)
		return
	}

	result, err := pc.service.GetProductsPage(c.Context(), pageable)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Show returns one product.
//
//	GET /api/v1/products/{id}
func (pc *ProductController) Show(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		fail(c, err)
		return
	}
	c.Logger().Info("show product", "id", id)

	product, err := pc.service.GetProductByID(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Store creates a product.
//
//	POST /api/v1/products
func (pc *ProductController) Store(c *ctx.Context) {
	var input models.ProductInput
	if !c.BindJSON(&input) {
		return
	}
	c.Logger().Info("create product", "name", input.Name)

	product, err := pc.service.CreateProduct(c.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// Update replaces a product's name, description and price.
//
//	PUT /api/v1/products/{id}
func (pc *ProductController) Update(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		fail(c, err)
		return
	}

	var input models.ProductInput
	if !c.BindJSON(&input) {
		return
	}
	c.Logger().Info("update product", "id", id)

	product, err := pc.service.UpdateProduct(c.Context(), id, input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Destroy deletes a product.
//
//	DELETE /api/v1/products/{id}
func (pc *ProductController) Destroy(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		fail(c, err)
		return
	}
	c.Logger().Info("delete product", "id", id)

	if err := pc.service.DeleteProduct(c.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.NoContent()
}

// Search matches a keyword against name and description. The keyword
// parameter must be present; an empty value matches every product.
//
//	GET /api/v1/products/search?keyword=test
func (pc *ProductController) Search(c *ctx.Context) {
	if !c.HasQuery("keyword") {
		fail(c, &ctx.ParamError{Name: "keyword", Err: ctx.ErrMissing})
		return
	}
	keyword := c.Query("keyword")
	c.Logger().Info("search products", "keyword", keyword)

	products, err := pc.service.SearchProducts(c.Context(), keyword)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// PriceRange lists products priced within [minPrice, maxPrice].
//
//	GET /api/v1/products/price-range?minPrice=10&maxPrice=20
func (pc *ProductController) PriceRange(c *ctx.Context) {
	minPrice, err := c.QueryDecimal("minPrice")
	if err != nil {
		fail(c, err)
		return
	}
	maxPrice, err := c.QueryDecimal("maxPrice")
	if err != nil {
		fail(c, err)
		return
	}
	c.Logger().Info("find products by price range", "minPrice", minPrice.String(), "maxPrice", maxPrice.String())

	products, err := pc.service.FindProductsByPriceRange(c.Context(), minPrice, maxPrice)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
