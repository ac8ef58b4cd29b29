package util

import (
	"context"

	"perfumeshop/shop-service/internal/app/shop/entity"
)

// ProductCache кеш карточек товаров (read-through для GET /products/{id})
type ProductCache interface {
	// GetProduct возвращает (nil, nil), если товара нет в кеше
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	SetProduct(ctx context.Context, product *entity.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
