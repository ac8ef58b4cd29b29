package repository

import (
	"context"
	"errors"
	"fmt"

	"perfumeshop/pkg/metrics"
	"perfumeshop/shop-service/internal/app/shop/entity"

	"gorm.io/gorm"
)

type brandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepository{db: db}
}

// Create сохраняет бренд; несуществующая страна -> ErrForeignKey
func (r *brandRepository) Create(ctx context.Context, brand *entity.Brand) (err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpInsert, "brands")
	defer func() { timer.ObserveDuration(err) }()

	if err := r.db.WithContext(ctx).Create(brand).Error; err != nil {
		return fmt.Errorf("failed to create brand: %w", classifyError(err))
	}
	return nil
}

func (r *brandRepository) GetByID(ctx context.Context, id int64) (_ *entity.Brand, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "brands")
	defer func() { timer.ObserveDuration(queryError(err)) }()

	var brand entity.Brand
	if err := r.db.WithContext(ctx).First(&brand, "brand_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	return &brand, nil
}

func (r *brandRepository) List(ctx context.Context, page entity.Page) (brands []entity.Brand, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "brands")
	defer func() { timer.ObserveDuration(err) }()

	brands = make([]entity.Brand, 0)
	if err := paginate(r.db.WithContext(ctx), "brand_id", page).Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}

func (r *brandRepository) Count(ctx context.Context) (count int64, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpCount, "brands")
	defer func() { timer.ObserveDuration(err) }()

	if err := r.db.WithContext(ctx).Model(&entity.Brand{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count brands: %w", err)
	}
	return count, nil
}
