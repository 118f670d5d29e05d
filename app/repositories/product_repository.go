package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/qcharged/product-service/app/models"
	"github.com/qcharged/product-service/pkg/database"
	"github.com/qcharged/product-service/pkg/metrics"
	"github.com/qcharged/product-service/pkg/orm"
)

var (
	// ErrNotFound is returned by FindByID when no row has the id.
	ErrNotFound = errors.New("repositories: product not found")
	// ErrDuplicateName is returned by Save when the name is already taken.
	ErrDuplicateName = errors.New("repositories: duplicate product name")
)

// ProductRepository is the persistence contract for products.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindPage(ctx context.Context, pageable orm.Pageable) (orm.Page[models.Product], error)
	FindByID(ctx context.Context, id uint) (models.Product, error)
	ExistsByNameIgnoreCase(ctx context.Context, name string) (bool, error)
	FindByPriceBetween(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]models.Product, error)
	SearchByKeyword(ctx context.Context, keyword string) ([]models.Product, error)
	Save(ctx context.Context, product *models.Product) error
	ExistsByID(ctx context.Context, id uint) (bool, error)
	DeleteByID(ctx context.Context, id uint) error

	// Transaction runs fn with a repository bound to a single transaction.
	Transaction(ctx context.Context, opts database.TxOptions, fn func(ProductRepository) error) error
}

// GormProductRepository implements ProductRepository on GORM.
type GormProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Product{})
}

// FindAll returns every product ordered by id.
func (r *GormProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("find_all", time.Now())

	products := []models.Product{}
	if err := r.query(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("repositories: find all: %w", err)
	}
	return products, nil
}

// FindPage returns one page of products in the requested order.
func (r *GormProductRepository) FindPage(ctx context.Context, pageable orm.Pageable) (orm.Page[models.Product], error) {
	defer metrics.ObserveDBQuery("find_page", time.Now())

	var total int64
	if err := r.query(ctx).Count(&total).Error; err != nil {
		return orm.Page[models.Product]{}, fmt.Errorf("repositories: count: %w", err)
	}

	products := []models.Product{}
	err := r.query(ctx).
		Scopes(orm.Paginate(pageable, models.ProductSortColumns, "id")).
		Find(&products).Error
	if err != nil {
		return orm.Page[models.Product]{}, fmt.Errorf("repositories: find page: %w", err)
	}

	return orm.NewPage(products, pageable, total), nil
}

// FindByID looks up a product by primary key.
func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (models.Product, error) {
	defer metrics.ObserveDBQuery("find_by_id", time.Now())

	var product models.Product
	err := r.query(ctx).Where("id = ?", id).Take(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("repositories: find %d: %w", id, err)
	}
	return product, nil
}

// ExistsByNameIgnoreCase reports whether any product has name, ignoring case.
func (r *GormProductRepository) ExistsByNameIgnoreCase(ctx context.Context, name string) (bool, error) {
	defer metrics.ObserveDBQuery("exists_by_name", time.Now())

	var n int64
	if err := r.query(ctx).Where("name_key = ?", models.NameKey(name)).Count(&n).Error; err != nil {
		return false, fmt.Errorf("repositories: exists by name: %w", err)
	}
	return n > 0, nil
}

// FindByPriceBetween returns products priced within [minPrice, maxPrice].
func (r *GormProductRepository) FindByPriceBetween(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("find_by_price", time.Now())

	products := []models.Product{}
	err := r.query(ctx).
		Where("price BETWEEN ? AND ?", minPrice, maxPrice).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("repositories: find by price: %w", err)
	}
	return products, nil
}

// SearchByKeyword matches keyword as a case-insensitive substring of the
// name or the description. Matching runs against the keys folded by
// models.Product.BeforeSave so non-ASCII letters compare the same on every
// driver. An empty keyword matches every product.
func (r *GormProductRepository) SearchByKeyword(ctx context.Context, keyword string) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("search", time.Now())

	pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"

	products := []models.Product{}
	err := r.query(ctx).
		Where("name_key LIKE ? ESCAPE '!' OR description_key LIKE ? ESCAPE '!'", pattern, pattern).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("repositories: search: %w", err)
	}
	return products, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_", "[", "![")

func escapeLike(s string) string { return likeEscaper.Replace(s) }

// Save inserts product when it has no id and updates it otherwise.
func (r *GormProductRepository) Save(ctx context.Context, product *models.Product) error {
	op := "update"
	if product.ID == 0 {
		op = "insert"
	}
	defer metrics.ObserveDBQuery(op, time.Now())

	var err error
	if product.ID == 0 {
		err = r.db.WithContext(ctx).Create(product).Error
	} else {
		err = r.db.WithContext(ctx).Save(product).Error
	}

	if database.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, product.Name)
	}
	if err != nil {
		return fmt.Errorf("repositories: %s: %w", op, err)
	}
	return nil
}

// ExistsByID reports whether a product with id exists.
func (r *GormProductRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	defer metrics.ObserveDBQuery("exists_by_id", time.Now())

	var n int64
	if err := r.query(ctx).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("repositories: exists %d: %w", id, err)
	}
	return n > 0, nil
}

// DeleteByID removes the product with id. Deleting a missing id is a no-op.
func (r *GormProductRepository) DeleteByID(ctx context.Context, id uint) error {
	defer metrics.ObserveDBQuery("delete", time.Now())

	if err := r.db.WithContext(ctx).Delete(&models.Product{}, id).Error; err != nil {
		return fmt.Errorf("repositories: delete %d: %w", id, err)
	}
	return nil
}

func (r *GormProductRepository) Transaction(ctx context.Context, opts database.TxOptions, fn func(ProductRepository) error) error {
	return database.Transaction(ctx, r.db, opts, func(tx *gorm.DB) error {
		return fn(&GormProductRepository{db: tx})
	})
}
