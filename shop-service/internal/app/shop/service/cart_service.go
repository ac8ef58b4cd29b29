package service

import (
	"context"
	"errors"
	"fmt"

	"perfumeshop/shop-service/internal/app/shop/entity"
	"perfumeshop/shop-service/internal/app/shop/repository"
)

// CartService обрабатывает корзины и их позиции
type CartService struct {
	cartRepo    repository.CartRepository
	contentRepo repository.CartContentRepository
}

func NewCartService(cartRepo repository.CartRepository, contentRepo repository.CartContentRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		contentRepo: contentRepo,
	}
}

// CreateCart создает пустую корзину для существующего пользователя
func (s *CartService) CreateCart(ctx context.Context, req *entity.CreateCartRequest) (*entity.Cart, error) {
	cart := cartFromRequest(req)
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, fmt.Errorf("user %d: %w", req.UserID, ErrInvalidReference)
		}
		return nil, mapCreateError("cart", err)
	}
	return cart, nil
}

// GetCart получает корзину вместе с позициями
func (s *CartService) GetCart(ctx context.Context, id int64) (*entity.Cart, error) {
	cart, err := s.cartRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) ListCarts(ctx context.Context, page entity.Page) ([]entity.Cart, error) {
	carts, err := s.cartRepo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list carts: %w", err)
	}
	return carts, nil
}

// CreateCartContent добавляет позицию; корзина и товар должны существовать
func (s *CartService) CreateCartContent(ctx context.Context, req *entity.CreateCartContentRequest) (*entity.CartContent, error) {
	content := cartContentFromRequest(req)
	if err := s.contentRepo.Create(ctx, content); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, fmt.Errorf("cart %d or product %d: %w", req.CartID, req.ProductID, ErrInvalidReference)
		}
		return nil, mapCreateError("cart content", err)
	}
	return content, nil
}

func (s *CartService) ListCartContents(ctx context.Context, page entity.Page) ([]entity.CartContent, error) {
	contents, err := s.contentRepo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart contents: %w", err)
	}
	return contents, nil
}

// ListCartContentsByCart возвращает позиции корзины; несуществующая корзина -> ErrCartNotFound
func (s *CartService) ListCartContentsByCart(ctx context.Context, cartID int64, page entity.Page) ([]entity.CartContent, error) {
	exists, err := s.cartRepo.Exists(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if !exists {
		return nil, ErrCartNotFound
	}

	contents, err := s.contentRepo.ListByCart(ctx, cartID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart contents: %w", err)
	}
	return contents, nil
}

func cartFromRequest(req *entity.CreateCartRequest) *entity.Cart {
	cart := &entity.Cart{
		UserID: req.UserID,
		Items:  []entity.CartContent{},
	}
	if req.Shipped != nil {
		cart.Shipped = *req.Shipped
	}
	return cart
}

func cartContentFromRequest(req *entity.CreateCartContentRequest) *entity.CartContent {
	return &entity.CartContent{
		CartID:    req.CartID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
}
