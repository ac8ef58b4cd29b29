package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"perfumeshop/pkg/logger"
	"perfumeshop/pkg/metrics"
	"perfumeshop/shop-service/internal/app/shop/entity"
	"perfumeshop/shop-service/internal/app/shop/repository"
	"perfumeshop/shop-service/internal/app/shop/util"

	"github.com/shopspring/decimal"
)

var (
	// Границы колонок decimal(5,2) и decimal(10,2)
	maxRatingValue = decimal.New(1000, 0)
	maxPrice       = decimal.New(100000000, 0)
)

// CatalogService обрабатывает бизнес-логику каталога: страны, бренды, товары.
// Координирует работу репозиториев, Redis кеша и Kafka producer
type CatalogService struct {
	countryRepo repository.CountryRepository
	brandRepo   repository.BrandRepository
	productRepo repository.ProductRepository
	cache       util.ProductCache
	publisher   util.MessagePublisher
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(
	countryRepo repository.CountryRepository,
	brandRepo repository.BrandRepository,
	productRepo repository.ProductRepository,
	cache util.ProductCache,
	publisher util.MessagePublisher,
) *CatalogService {
	return &CatalogService{
		countryRepo: countryRepo,
		brandRepo:   brandRepo,
		productRepo: productRepo,
		cache:       cache,
		publisher:   publisher,
	}
}

// === COUNTRIES ===

func (s *CatalogService) CreateCountry(ctx context.Context, req *entity.CreateCountryRequest) (*entity.Country, error) {
	country := countryFromRequest(req)
	if err := s.countryRepo.Create(ctx, country); err != nil {
		return nil, mapCreateError("country", err)
	}
	return country, nil
}

func (s *CatalogService) ListCountries(ctx context.Context, page entity.Page) ([]entity.Country, error) {
	countries, err := s.countryRepo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

// === BRANDS ===

// CreateBrand создает бренд. Существование страны проверяет FK constraint
func (s *CatalogService) CreateBrand(ctx context.Context, req *entity.CreateBrandRequest) (*entity.Brand, error) {
	brand := brandFromRequest(req)
	if err := s.brandRepo.Create(ctx, brand); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, fmt.Errorf("country %d: %w", req.CountryID, ErrInvalidReference)
		}
		return nil, mapCreateError("brand", err)
	}
	return brand, nil
}

func (s *CatalogService) ListBrands(ctx context.Context, page entity.Page) ([]entity.Brand, error) {
	brands, err := s.brandRepo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}

// === PRODUCTS ===

// CreateProduct создает товар и отправляет событие PRODUCT_CREATED
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	product, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, fmt.Errorf("brand %d: %w", req.BrandID, ErrInvalidReference)
		}
		return nil, mapCreateError("product", err)
	}

	s.publishProductEvent(ctx, &entity.ProductEvent{
		EventType: entity.EventProductCreated,
		ProductID: product.ProductID,
		BrandID:   product.BrandID,
		Perfume:   product.Perfume,
		Price:     product.Price,
		Timestamp: time.Now().UTC(),
	})

	return product, nil
}

// GetProduct получает товар по ID: сначала кеш, при промахе - БД с записью в кеш
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	cached, err := s.cache.GetProduct(ctx, id)
	if err != nil {
		logger.Warn().Err(err).Int64("product_id", id).Msg("Failed to read product from cache")
	}
	if cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if err := s.cache.SetProduct(ctx, product); err != nil {
		logger.Warn().Err(err).Int64("product_id", id).Msg("Failed to cache product")
	}

	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, page entity.Page) ([]entity.Product, error) {
	products, err := s.productRepo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// DeleteProduct удаляет товар вместе с позициями корзин, инвалидирует кеш
// и отправляет событие PRODUCT_DELETED
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	removed, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	metrics.ProductsDeleted.Inc()
	metrics.CartContentsCascaded.Add(float64(removed))

	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		logger.Warn().Err(err).Int64("product_id", id).Msg("Failed to invalidate product cache")
	}

	s.publishProductEvent(ctx, &entity.ProductEvent{
		EventType:           entity.EventProductDeleted,
		ProductID:           id,
		RemovedCartContents: removed,
		Timestamp:           time.Now().UTC(),
	})

	logger.Info().
		Int64("product_id", id).
		Int64("removed_cart_contents", removed).
		Msg("Product deleted")

	return nil
}

// publishProductEvent отправляет событие в Kafka. Ошибки только логируются:
// запись в БД уже зафиксирована
func (s *CatalogService) publishProductEvent(ctx context.Context, event *entity.ProductEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", event.EventType).Msg("Failed to marshal product event")
		return
	}

	key := strconv.FormatInt(event.ProductID, 10)
	if err := s.publisher.PublishMessage(ctx, key, payload); err != nil {
		logger.Warn().
			Err(err).
			Str("event_type", event.EventType).
			Int64("product_id", event.ProductID).
			Msg("Failed to publish product event")
	}
}

// === mapping ===

func countryFromRequest(req *entity.CreateCountryRequest) *entity.Country {
	return &entity.Country{
		Country: req.Country,
	}
}

func brandFromRequest(req *entity.CreateBrandRequest) *entity.Brand {
	return &entity.Brand{
		Brand:     req.Brand,
		CountryID: req.CountryID,
	}
}

func productFromRequest(req *entity.CreateProductRequest) (*entity.Product, error) {
	if err := checkDecimal("rating_value", req.RatingValue, maxRatingValue); err != nil {
		return nil, err
	}
	if err := checkDecimal("price", req.Price, maxPrice); err != nil {
		return nil, err
	}

	return &entity.Product{
		ProdURL:     req.ProdURL,
		Perfume:     req.Perfume,
		Gender:      req.Gender,
		RatingValue: roundDecimal(req.RatingValue),
		RatingCount: req.RatingCount,
		CreateYear:  req.CreateYear,
		TopNote:     req.TopNote,
		MiddleNote:  req.MiddleNote,
		BaseNote:    req.BaseNote,
		Price:       roundDecimal(req.Price),
		BrandID:     req.BrandID,
		Quantity:    req.Quantity,
	}, nil
}

// checkDecimal проверяет, что значение помещается в колонку с двумя знаками после запятой
func checkDecimal(field string, value decimal.NullDecimal, limit decimal.Decimal) error {
	if !value.Valid {
		return nil
	}
	if value.Decimal.Round(2).Abs().GreaterThanOrEqual(limit) {
		return fmt.Errorf("%w: %s must be less than %s", ErrInvalidInput, field, limit.String())
	}
	return nil
}

func roundDecimal(value decimal.NullDecimal) decimal.NullDecimal {
	if !value.Valid {
		return value
	}
	return decimal.NewNullDecimal(value.Decimal.Round(2))
}
