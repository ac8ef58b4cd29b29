package repository

import (
	"context"
	"errors"
	"fmt"

	"perfumeshop/pkg/metrics"
	"perfumeshop/shop-service/internal/app/shop/entity"

	"gorm.io/gorm"
)

type countryRepository struct {
	db *gorm.DB
}

// NewCountryRepository создает новый репозиторий стран
func NewCountryRepository(db *gorm.DB) CountryRepository {
	return &countryRepository{db: db}
}

// Create сохраняет страну; уникальность названия проверяет UNIQUE constraint
func (r *countryRepository) Create(ctx context.Context, country *entity.Country) (err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpInsert, "countries")
	defer func() { timer.ObserveDuration(err) }()

	if err := r.db.WithContext(ctx).Create(country).Error; err != nil {
		return fmt.Errorf("failed to create country: %w", classifyError(err))
	}
	return nil
}

func (r *countryRepository) GetByID(ctx context.Context, id int64) (_ *entity.Country, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "countries")
	defer func() { timer.ObserveDuration(queryError(err)) }()

	var country entity.Country
	if err := r.db.WithContext(ctx).First(&country, "country_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCountryNotFound
		}
		return nil, fmt.Errorf("failed to get country: %w", err)
	}
	return &country, nil
}

func (r *countryRepository) List(ctx context.Context, page entity.Page) (countries []entity.Country, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "countries")
	defer func() { timer.ObserveDuration(err) }()

	countries = make([]entity.Country, 0)
	if err := paginate(r.db.WithContext(ctx), "country_id", page).Find(&countries).Error; err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

func (r *countryRepository) Count(ctx context.Context) (count int64, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpCount, "countries")
	defer func() { timer.ObserveDuration(err) }()

	if err := r.db.WithContext(ctx).Model(&entity.Country{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count countries: %w", err)
	}
	return count, nil
}
