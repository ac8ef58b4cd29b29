package entity

import "github.com/shopspring/decimal"

const (
	// DefaultLimit - размер страницы по умолчанию для списков
	DefaultLimit = 100
	// ProductsDefaultLimit - товары по умолчанию отдаются целиком (весь каталог)
	ProductsDefaultLimit = 100000
	// MaxLimit - верхняя граница limit для любого списка
	MaxLimit = 100000
)

// Page - offset-пагинация (skip/limit)
type Page struct {
	Skip  int
	Limit int
}

type CreateCountryRequest struct {
	Country string `json:"country" validate:"required,max=255"`
}

type CreateBrandRequest struct {
	Brand     *string `json:"brand" validate:"omitempty,max=255"`
	CountryID int64   `json:"country_id" validate:"required,gt=0"`
}

type CreateUserRequest struct {
	Username      string  `json:"username" validate:"required,max=100"`
	FullName      *string `json:"full_name" validate:"omitempty,max=255"`
	Sex           *string `json:"sex" validate:"omitempty,max=10"`
	Mail          *string `json:"mail" validate:"omitempty,max=255"`
	Birthdate     *Date   `json:"birthdate"`
	Country       *string `json:"country" validate:"omitempty,max=255"`
	City          *string `json:"city" validate:"omitempty,max=255"`
	StreetAddress *string `json:"street_address" validate:"omitempty,max=255"`
	Password      string  `json:"password" validate:"required"`
}

type CreateProductRequest struct {
	ProdURL     string              `json:"produrl" validate:"required,max=2048"`
	Perfume     *string             `json:"perfume" validate:"omitempty,max=255"`
	Gender      *string             `json:"gender" validate:"omitempty,max=50"`
	RatingValue decimal.NullDecimal `json:"rating_value"`
	RatingCount *int64              `json:"rating_count" validate:"omitempty,gte=0,lte=9999999999"`
	CreateYear  *int                `json:"create_year"`
	TopNote     *string             `json:"top_note" validate:"omitempty,max=4000"`
	MiddleNote  *string             `json:"middle_note" validate:"omitempty,max=4000"`
	BaseNote    *string             `json:"base_note" validate:"omitempty,max=4000"`
	Price       decimal.NullDecimal `json:"price"`
	BrandID     int64               `json:"brand_id" validate:"required,gt=0"`
	Quantity    *int                `json:"quantity"`
}

type CreateCartRequest struct {
	UserID  int64 `json:"user_id" validate:"required,gt=0"`
	Shipped *bool `json:"shipped"`
}

type CreateCartContentRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  *int  `json:"quantity"`
	CartID    int64 `json:"cart_id" validate:"required,gt=0"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
