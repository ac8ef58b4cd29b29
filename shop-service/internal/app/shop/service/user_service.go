package service

import (
	"context"
	"errors"
	"fmt"

	"perfumeshop/pkg/logger"
	"perfumeshop/pkg/metrics"
	"perfumeshop/shop-service/internal/app/shop/entity"
	"perfumeshop/shop-service/internal/app/shop/repository"
	"perfumeshop/shop-service/internal/app/shop/util"

	"golang.org/x/crypto/bcrypt"
)

// UserService обрабатывает регистрацию и чтение пользователей
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser хэширует пароль и сохраняет пользователя.
// Открытый пароль дальше этой функции не передается
func (s *UserService) CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error) {
	user, err := userFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("username %q %w", req.Username, ErrAlreadyExists)
		}
		return nil, mapCreateError("user", err)
	}

	metrics.UsersRegistered.Inc()
	logger.Info().Int64("user_id", user.UserID).Msg("User created")

	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, page entity.Page) ([]entity.User, error) {
	users, err := s.userRepo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func userFromRequest(req *entity.CreateUserRequest) (*entity.User, error) {
	hash, err := util.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password must be at most 72 bytes", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &entity.User{
		Username:      req.Username,
		FullName:      req.FullName,
		Sex:           req.Sex,
		Mail:          req.Mail,
		Birthdate:     req.Birthdate,
		Country:       req.Country,
		City:          req.City,
		StreetAddress: req.StreetAddress,
		PasswordHash:  hash,
	}, nil
}
