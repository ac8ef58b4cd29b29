package repository

import (
	"context"
	"errors"
	"fmt"

	"perfumeshop/pkg/metrics"
	"perfumeshop/shop-service/internal/app/shop/entity"

	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create создает новый товар. Несуществующий бренд -> ErrForeignKey
func (r *productRepository) Create(ctx context.Context, product *entity.Product) (err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpInsert, "products")
	defer func() { timer.ObserveDuration(err) }()

	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", classifyError(err))
	}
	return nil
}

// GetByID получает товар по ID
func (r *productRepository) GetByID(ctx context.Context, id int64) (product *entity.Product, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "products")
	defer func() { timer.ObserveDuration(queryError(err)) }()

	var p entity.Product
	if err := r.db.WithContext(ctx).First(&p, "product_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

// List получает страницу товаров в порядке product_id
func (r *productRepository) List(ctx context.Context, page entity.Page) (products []entity.Product, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "products")
	defer func() { timer.ObserveDuration(err) }()

	products = make([]entity.Product, 0)
	if err := paginate(r.db.WithContext(ctx), "product_id", page).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *productRepository) Count(ctx context.Context) (count int64, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpCount, "products")
	defer func() { timer.ObserveDuration(err) }()

	if err := r.db.WithContext(ctx).Model(&entity.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// Delete удаляет товар и все позиции корзин, ссылающиеся на него, в одной транзакции.
// Если товара нет, транзакция откатывается и удаленные позиции возвращаются на место
func (r *productRepository) Delete(ctx context.Context, id int64) (removed int64, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpDelete, "products")
	defer func() { timer.ObserveDuration(queryError(err)) }()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contents := tx.Where("product_id = ?", id).Delete(&entity.CartContent{})
		if contents.Error != nil {
			return fmt.Errorf("failed to delete cart contents: %w", contents.Error)
		}

		result := tx.Delete(&entity.Product{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete product: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}

		removed = contents.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}
