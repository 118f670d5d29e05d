package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/qcharged/product-service/app/models"
	"github.com/qcharged/product-service/app/repositories"
	"github.com/qcharged/product-service/pkg/database"
	"github.com/qcharged/product-service/pkg/event"
	"github.com/qcharged/product-service/pkg/logger"
	"github.com/qcharged/product-service/pkg/orm"
)

// Lifecycle events fired after a mutation commits. Created and updated
// carry the saved models.Product; deleted carries the id.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

var readOnly = database.TxOptions{ReadOnly: true}

// ProductService holds the product business rules.
type ProductService struct {
	repo   repositories.ProductRepository
	events event.Publisher
}

// NewProductService wires the service. events may be nil.
func NewProductService(repo repositories.ProductRepository, events event.Publisher) *ProductService {
	return &ProductService{repo: repo, events: events}
}

func (s *ProductService) fire(ctx context.Context, name string, payload any) {
	if s.events != nil {
		s.events.Fire(ctx, name, payload)
	}
}

// GetAllProducts returns every product.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	logger.WithCtx(ctx).Debug("fetching all products")

	var products []models.Product
	err := s.repo.Transaction(ctx, readOnly, func(repo repositories.ProductRepository) error {
		var err error
		products, err = repo.FindAll(ctx)
		return err
	})
	return products, err
}

// GetProductsPage returns one page of products.
func (s *ProductService) GetProductsPage(ctx context.Context, pageable orm.Pageable) (orm.Page[models.Product], error) {
	logger.WithCtx(ctx).Debug("fetching products page",
		"page", pageable.Page, "size", pageable.Size,
		"sort", pageable.Sort.Property, "direction", pageable.Sort.Direction)

	var page orm.Page[models.Product]
	err := s.repo.Transaction(ctx, readOnly, func(repo repositories.ProductRepository) error {
		var err error
		page, err = repo.FindPage(ctx, pageable)
		return err
	})
	return page, err
}

// GetProductByID returns the product or a *NotFoundError.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (models.Product, error) {
	logger.WithCtx(ctx).Debug("fetching product", "id", id)

	var product models.Product
	err := s.repo.Transaction(ctx, readOnly, func(repo repositories.ProductRepository) error {
		var err error
		product, err = findByID(ctx, repo, id)
		return err
	})
	return product, err
}

func findByID(ctx context.Context, repo repositories.ProductRepository, id uint) (models.Product, error) {
	product, err := repo.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Product{}, &NotFoundError{ID: id}
	}
	return product, err
}

// CreateProduct stores a new product. Any id on the input is ignored.
// A name already taken, ignoring case, yields *AlreadyExistsError.
func (s *ProductService) CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error) {
	input.Normalize()
	log := logger.WithCtx(ctx)
	log.Info("creating product", "name", input.Name)

	var product models.Product
	err := s.repo.Transaction(ctx, database.TxOptions{}, func(repo repositories.ProductRepository) error {
		exists, err := repo.ExistsByNameIgnoreCase(ctx, input.Name)
		if err != nil {
			return err
		}
		if exists {
			return &AlreadyExistsError{Name: input.Name}
		}

		product = models.Product{}
		input.ApplyTo(&product)
		return saveProduct(ctx, repo, &product)
	})
	if err != nil {
		return models.Product{}, err
	}

	log.Info("product created", "id", product.ID)
	s.fire(ctx, EventProductCreated, product)
	return product, nil
}

// UpdateProduct replaces name, description and price of product id.
// Renaming to a name another product holds yields *AlreadyExistsError;
// changing only the case of the current name is allowed.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, input models.ProductInput) (models.Product, error) {
	input.Normalize()
	log := logger.WithCtx(ctx)
	log.Info("updating product", "id", id)

	var product models.Product
	err := s.repo.Transaction(ctx, database.TxOptions{}, func(repo repositories.ProductRepository) error {
		existing, err := findByID(ctx, repo, id)
		if err != nil {
			return err
		}

		if !strings.EqualFold(existing.Name, input.Name) {
			exists, err := repo.ExistsByNameIgnoreCase(ctx, input.Name)
			if err != nil {
				return err
			}
			if exists {
				return &AlreadyExistsError{Name: input.Name}
			}
		}

		input.ApplyTo(&existing)
		if err := saveProduct(ctx, repo, &existing); err != nil {
			return err
		}
		product = existing
		return nil
	})
	if err != nil {
		return models.Product{}, err
	}

	log.Info("product updated", "id", product.ID)
	s.fire(ctx, EventProductUpdated, product)
	return product, nil
}

// saveProduct maps a storage-level name collision, which a concurrent
// writer can cause after the existence check, to *AlreadyExistsError.
func saveProduct(ctx context.Context, repo repositories.ProductRepository, product *models.Product) error {
	err := repo.Save(ctx, product)
	if errors.Is(err, repositories.ErrDuplicateName) {
		return &AlreadyExistsError{Name: product.Name}
	}
	return err
}

// DeleteProduct removes product id or returns *NotFoundError.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	log := logger.WithCtx(ctx)
	log.Info("deleting product", "id", id)

	err := s.repo.Transaction(ctx, database.TxOptions{}, func(repo repositories.ProductRepository) error {
		exists, err := repo.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return &NotFoundError{ID: id}
		}
		return repo.DeleteByID(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Info("product deleted", "id", id)
	s.fire(ctx, EventProductDeleted, id)
	return nil
}

// SearchProducts matches keyword against name and description, ignoring case.
func (s *ProductService) SearchProducts(ctx context.Context, keyword string) ([]models.Product, error) {
	logger.WithCtx(ctx).Debug("searching products", "keyword", keyword)

	var products []models.Product
	err := s.repo.Transaction(ctx, readOnly, func(repo repositories.ProductRepository) error {
		var err error
		products, err = repo.SearchByKeyword(ctx, keyword)
		return err
	})
	return products, err
}

// FindProductsByPriceRange returns products priced within [minPrice, maxPrice].
// minPrice greater than maxPrice yields an empty result.
func (s *ProductService) FindProductsByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]models.Product, error) {
	logger.WithCtx(ctx).Debug("finding products by price range", "min", minPrice.String(), "max", maxPrice.String())

	var products []models.Product
	err := s.repo.Transaction(ctx, readOnly, func(repo repositories.ProductRepository) error {
		var err error
		products, err = repo.FindByPriceBetween(ctx, minPrice, maxPrice)
		return err
	})
	return products, err
}
