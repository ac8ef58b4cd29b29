package repository

import (
	"context"
	"errors"
	"strings"

	"perfumeshop/shop-service/internal/app/shop/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// metricsService - значение label service для метрик БД
const metricsService = "shop-service"

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrCountryNotFound = errors.New("country not found")
	ErrBrandNotFound   = errors.New("brand not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrForeignKey      = errors.New("foreign key violation")

	ErrCartContentNotFound = errors.New("cart content not found")
)

type CountryRepository interface {
	Create(ctx context.Context, country *entity.Country) error
	GetByID(ctx context.Context, id int64) (*entity.Country, error)
	List(ctx context.Context, page entity.Page) ([]entity.Country, error)
	Count(ctx context.Context) (int64, error)
}

type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	GetByID(ctx context.Context, id int64) (*entity.Brand, error)
	List(ctx context.Context, page entity.Page) ([]entity.Brand, error)
	Count(ctx context.Context) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	List(ctx context.Context, page entity.Page) ([]entity.User, error)
	Count(ctx context.Context) (int64, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context, page entity.Page) ([]entity.Product, error)
	Count(ctx context.Context) (int64, error)
	// Delete удаляет товар вместе с позициями корзин, которые на него ссылаются.
	// Возвращает число удаленных позиций корзин
	Delete(ctx context.Context, id int64) (int64, error)
}

type CartRepository interface {
	Create(ctx context.Context, cart *entity.Cart) error
	GetByID(ctx context.Context, id int64) (*entity.Cart, error)
	List(ctx context.Context, page entity.Page) ([]entity.Cart, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type CartContentRepository interface {
	Create(ctx context.Context, content *entity.CartContent) error
	GetByID(ctx context.Context, id int64) (*entity.CartContent, error)
	List(ctx context.Context, page entity.Page) ([]entity.CartContent, error)
	ListByCart(ctx context.Context, cartID int64, page entity.Page) ([]entity.CartContent, error)
	Count(ctx context.Context) (int64, error)
}

// Migrate создает таблицы и ограничения (unique, not null, foreign keys), если их еще нет
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&entity.Country{},
		&entity.Brand{},
		&entity.User{},
		&entity.Product{},
		&entity.Cart{},
		&entity.CartContent{},
	)
}

// classifyError приводит нарушения ограничений БД к ErrDuplicateKey / ErrForeignKey.
// Остальные ошибки возвращаются без изменений
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	// gorm.Config.TranslateError = true
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return ErrDuplicateKey
		case "23503": // foreign_key_violation
			return ErrForeignKey
		}
		return err
	}

	// sqlite (тесты, локальный запуск) переводит только часть кодов
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ErrDuplicateKey
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ErrForeignKey
	}

	return err
}

// queryError отбрасывает "не найдено" перед записью метрик: это не сбой БД
func queryError(err error) error {
	switch {
	case errors.Is(err, ErrCountryNotFound),
		errors.Is(err, ErrBrandNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrCartNotFound),
		errors.Is(err, ErrCartContentNotFound):
		return nil
	}
	return err
}

// paginate применяет offset/limit и сортировку по первичному ключу
func paginate(db *gorm.DB, orderBy string, page entity.Page) *gorm.DB {
	return db.Order(orderBy + " ASC").Offset(page.Skip).Limit(page.Limit)
}
