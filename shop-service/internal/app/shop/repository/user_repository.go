package repository

import (
	"context"
	"errors"
	"fmt"

	"perfumeshop/pkg/metrics"
	"perfumeshop/shop-service/internal/app/shop/entity"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository создает новый репозиторий пользователей
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create сохраняет пользователя. Пароль к этому моменту уже должен быть захэширован
func (r *userRepository) Create(ctx context.Context, user *entity.User) (err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpInsert, "users")
	defer func() { timer.ObserveDuration(err) }()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", classifyError(err))
	}
	return nil
}

// GetByID получает пользователя по ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (user *entity.User, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "users")
	defer func() { timer.ObserveDuration(queryError(err)) }()

	var u entity.User
	if err := r.db.WithContext(ctx).First(&u, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context, page entity.Page) (users []entity.User, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "users")
	defer func() { timer.ObserveDuration(err) }()

	users = make([]entity.User, 0)
	if err := paginate(r.db.WithContext(ctx), "user_id", page).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (count int64, err error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpCount, "users")
	defer func() { timer.ObserveDuration(err) }()

	if err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
