package repository

import (
	"context"
	"errors"
	"fmt"

	"perfumeshop/pkg/metrics"
	"perfumeshop/shop-service/internal/app/shop/entity"

	"gorm.io/gorm"
)

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// Create создает корзину. Позиции добавляются отдельно через CartContentRepository
func (r *cartRepository) Create(ctx context.Context, cart *entity.Cart) (err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpInsert, "carts")
	defer func() { timer.ObserveDuration(err) }()

	if err := r.db.WithContext(ctx).Omit("Items").Create(cart).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", classifyError(err))
	}
	if cart.Items == nil {
		cart.Items = []entity.CartContent{}
	}
	return nil
}

// GetByID получает корзину вместе с позициями
func (r *cartRepository) GetByID(ctx context.Context, id int64) (cart *entity.Cart, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "carts")
	defer func() { timer.ObserveDuration(queryError(err)) }()

	var c entity.Cart
	if err := r.withItems(ctx).First(&c, "cart_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	normalizeItems(&c)
	return &c, nil
}

func (r *cartRepository) List(ctx context.Context, page entity.Page) (carts []entity.Cart, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "carts")
	defer func() { timer.ObserveDuration(err) }()

	carts = make([]entity.Cart, 0)
	if err := paginate(r.withItems(ctx), "cart_id", page).Find(&carts).Error; err != nil {
		return nil, fmt.Errorf("failed to list carts: %w", err)
	}
	for i := range carts {
		normalizeItems(&carts[i])
	}
	return carts, nil
}

func (r *cartRepository) Count(ctx context.Context) (count int64, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpCount, "carts")
	defer func() { timer.ObserveDuration(err) }()

	if err := r.db.WithContext(ctx).Model(&entity.Cart{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count carts: %w", err)
	}
	return count, nil
}

// Exists проверяет наличие корзины без загрузки позиций
func (r *cartRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Cart{}).Where("cart_id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check cart existence: %w", err)
	}
	return count > 0, nil
}

func (r *cartRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_content_id ASC")
	})
}

// normalizeItems - пустая корзина сериализуется как "items": []
func normalizeItems(cart *entity.Cart) {
	if cart.Items == nil {
		cart.Items = []entity.CartContent{}
	}
}
