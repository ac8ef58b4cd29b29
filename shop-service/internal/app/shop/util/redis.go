package util

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"perfumeshop/pkg/metrics"
	"perfumeshop/shop-service/internal/app/shop/entity"

	"github.com/redis/go-redis/v9"
)

const (
	productKeyPrefix = "product"
	metricsService   = "shop-service"
)

// setProductScript не кладет товар в кеш, если он уже удален (есть tombstone)
var setProductScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[2]) == 1 then
	return 0
end
if tonumber(ARGV[2]) > 0 then
	redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
else
	redis.call("SET", KEYS[1], ARGV[1])
end
return 1
`)

// NewRedisClient подключается к Redis и проверяет соединение
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisProductCache(client *redis.Client, ttl time.Duration) *RedisProductCache {
	return &RedisProductCache{client: client, ttl: ttl}
}

func productKey(id int64) string {
	return productKeyPrefix + ":" + strconv.FormatInt(id, 10)
}

func deletedProductKey(id int64) string {
	return productKey(id) + ":deleted"
}

func (c *RedisProductCache) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	data, err := c.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheMiss(metricsService, productKeyPrefix)
			return nil, nil
		}
		metrics.RecordRedisError(metricsService, "get")
		return nil, fmt.Errorf("failed to get product from cache: %w", err)
	}

	var product entity.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	metrics.RecordCacheHit(metricsService, productKeyPrefix)
	return &product, nil
}

func (c *RedisProductCache) SetProduct(ctx context.Context, product *entity.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	keys := []string{productKey(product.ProductID), deletedProductKey(product.ProductID)}
	if err := setProductScript.Run(ctx, c.client, keys, data, c.ttl.Milliseconds()).Err(); err != nil {
		metrics.RecordRedisError(metricsService, "set")
		return fmt.Errorf("failed to set product in cache: %w", err)
	}
	return nil
}

// DeleteProduct удаляет товар из кеша и ставит tombstone на время TTL:
// чтение из БД, начатое до удаления, не вернет товар обратно в кеш
func (c *RedisProductCache) DeleteProduct(ctx context.Context, id int64) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, productKey(id))
		pipe.Set(ctx, deletedProductKey(id), 1, c.ttl)
		return nil
	})
	if err != nil {
		metrics.RecordRedisError(metricsService, "del")
		return fmt.Errorf("failed to delete product from cache: %w", err)
	}
	return nil
}

func (c *RedisProductCache) Close() error {
	return c.client.Close()
}

// NoopProductCache используется, когда REDIS_ADDR не задан: каждый запрос идет в БД
type NoopProductCache struct{}

func (NoopProductCache) GetProduct(context.Context, int64) (*entity.Product, error) { return nil, nil }
func (NoopProductCache) SetProduct(context.Context, *entity.Product) error          { return nil }
func (NoopProductCache) DeleteProduct(context.Context, int64) error                 { return nil }
func (NoopProductCache) Close() error                                               { return nil }
