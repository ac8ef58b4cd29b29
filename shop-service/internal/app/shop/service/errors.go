package service

import (
	"errors"
	"fmt"

	"perfumeshop/shop-service/internal/app/shop/repository"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrCartNotFound    = errors.New("cart not found")
	// ErrAlreadyExists - нарушение уникальности (название страны, username)
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidReference - ссылка на несуществующую запись (country_id, brand_id, user_id, ...)
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrInvalidInput     = errors.New("invalid input")
)

// mapCreateError переводит ошибки ограничений репозитория в ошибки сервиса
func mapCreateError(what string, err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateKey):
		return fmt.Errorf("%s %w", what, ErrAlreadyExists)
	case errors.Is(err, repository.ErrForeignKey):
		return fmt.Errorf("%s: %w", what, ErrInvalidReference)
	}
	return fmt.Errorf("failed to create %s: %w", what, err)
}
