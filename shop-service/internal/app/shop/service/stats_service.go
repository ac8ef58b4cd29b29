package service

import (
	"context"
	"fmt"

	"perfumeshop/shop-service/internal/app/shop/entity"
	"perfumeshop/shop-service/internal/app/shop/repository"
)

// StatsService считает количество записей по сущностям. Без кеширования:
// каждый вызов делает свежие COUNT(*)
type StatsService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	brandRepo   repository.BrandRepository
	countryRepo repository.CountryRepository
	cartRepo    repository.CartRepository
}

func NewStatsService(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	brandRepo repository.BrandRepository,
	countryRepo repository.CountryRepository,
	cartRepo repository.CartRepository,
) *StatsService {
	return &StatsService{
		userRepo:    userRepo,
		productRepo: productRepo,
		brandRepo:   brandRepo,
		countryRepo: countryRepo,
		cartRepo:    cartRepo,
	}
}

func (s *StatsService) Counts(ctx context.Context) (*entity.StatsCounts, error) {
	var (
		counts entity.StatsCounts
		err    error
	)

	if counts.Users, err = s.userRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if counts.Products, err = s.productRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if counts.Brands, err = s.brandRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count brands: %w", err)
	}
	if counts.Countries, err = s.countryRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count countries: %w", err)
	}
	if counts.Carts, err = s.cartRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count carts: %w", err)
	}

	return &counts, nil
}
