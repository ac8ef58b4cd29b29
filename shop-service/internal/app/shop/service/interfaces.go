package service

import (
	"context"

	"perfumeshop/shop-service/internal/app/shop/entity"
)

type CatalogServiceInterface interface {
	CreateCountry(ctx context.Context, req *entity.CreateCountryRequest) (*entity.Country, error)
	ListCountries(ctx context.Context, page entity.Page) ([]entity.Country, error)

	CreateBrand(ctx context.Context, req *entity.CreateBrandRequest) (*entity.Brand, error)
	ListBrands(ctx context.Context, page entity.Page) ([]entity.Brand, error)

	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	ListProducts(ctx context.Context, page entity.Page) ([]entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type UserServiceInterface interface {
	CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error)
	GetUser(ctx context.Context, id int64) (*entity.User, error)
	ListUsers(ctx context.Context, page entity.Page) ([]entity.User, error)
}

type CartServiceInterface interface {
	CreateCart(ctx context.Context, req *entity.CreateCartRequest) (*entity.Cart, error)
	GetCart(ctx context.Context, id int64) (*entity.Cart, error)
	ListCarts(ctx context.Context, page entity.Page) ([]entity.Cart, error)

	CreateCartContent(ctx context.Context, req *entity.CreateCartContentRequest) (*entity.CartContent, error)
	ListCartContents(ctx context.Context, page entity.Page) ([]entity.CartContent, error)
	ListCartContentsByCart(ctx context.Context, cartID int64, page entity.Page) ([]entity.CartContent, error)
}

type StatsServiceInterface interface {
	Counts(ctx context.Context) (*entity.StatsCounts, error)
}
