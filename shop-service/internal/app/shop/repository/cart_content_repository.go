package repository

import (
	"context"
	"errors"
	"fmt"

	"perfumeshop/pkg/metrics"
	"perfumeshop/shop-service/internal/app/shop/entity"

	"gorm.io/gorm"
)

type cartContentRepository struct {
	db *gorm.DB
}

func NewCartContentRepository(db *gorm.DB) CartContentRepository {
	return &cartContentRepository{db: db}
}

// Create добавляет позицию в корзину. Несуществующие корзина/товар -> ErrForeignKey
func (r *cartContentRepository) Create(ctx context.Context, content *entity.CartContent) (err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpInsert, "cart_content")
	defer func() { timer.ObserveDuration(err) }()

	if err := r.db.WithContext(ctx).Create(content).Error; err != nil {
		return fmt.Errorf("failed to create cart content: %w", classifyError(err))
	}
	return nil
}

func (r *cartContentRepository) GetByID(ctx context.Context, id int64) (content *entity.CartContent, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "cart_content")
	defer func() { timer.ObserveDuration(queryError(err)) }()

	var c entity.CartContent
	if err := r.db.WithContext(ctx).First(&c, "cart_content_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartContentNotFound
		}
		return nil, fmt.Errorf("failed to get cart content: %w", err)
	}
	return &c, nil
}

func (r *cartContentRepository) List(ctx context.Context, page entity.Page) (contents []entity.CartContent, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "cart_content")
	defer func() { timer.ObserveDuration(err) }()

	contents = make([]entity.CartContent, 0)
	if err := paginate(r.db.WithContext(ctx), "cart_content_id", page).Find(&contents).Error; err != nil {
		return nil, fmt.Errorf("failed to list cart contents: %w", err)
	}
	return contents, nil
}

// ListByCart получает позиции одной корзины. Наличие корзины проверяет service layer
func (r *cartContentRepository) ListByCart(ctx context.Context, cartID int64, page entity.Page) (contents []entity.CartContent, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "cart_content")
	defer func() { timer.ObserveDuration(err) }()

	contents = make([]entity.CartContent, 0)
	query := r.db.WithContext(ctx).Where("cart_id = ?", cartID)
	if err := paginate(query, "cart_content_id", page).Find(&contents).Error; err != nil {
		return nil, fmt.Errorf("failed to list cart contents by cart: %w", err)
	}
	return contents, nil
}

func (r *cartContentRepository) Count(ctx context.Context) (count int64, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpCount, "cart_content")
	defer func() { timer.ObserveDuration(err) }()

	if err := r.db.WithContext(ctx).Model(&entity.CartContent{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count cart contents: %w", err)
	}
	return count, nil
}
