package util

import (
	"context"
	"testing"
	"time"

	"perfumeshop/shop-service/internal/app/shop/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ProductCacheTestSuite тестовый suite для Redis кеша товаров
type ProductCacheTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	cache     *RedisProductCache
}

func TestProductCacheSuite(t *testing.T) {
	suite.Run(t, new(ProductCacheTestSuite))
}

func (s *ProductCacheTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{Addr: s.miniRedis.Addr()})
	s.cache = NewRedisProductCache(s.client, 10*time.Minute)
}

func (s *ProductCacheTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *ProductCacheTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

func (s *ProductCacheTestSuite) TestGetProduct_Miss() {
	product, err := s.cache.GetProduct(context.Background(), 42)

	s.NoError(err)
	s.Nil(product)
}

func (s *ProductCacheTestSuite) TestSetAndGetProduct() {
	ctx := context.Background()
	perfume := "Aventus"
	product := &entity.Product{
		ProductID: 7,
		ProdURL:   "https://example.com/aventus",
		Perfume:   &perfume,
		Price:     decimal.NewNullDecimal(decimal.RequireFromString("199.99")),
		BrandID:   3,
	}

	s.Require().NoError(s.cache.SetProduct(ctx, product))
	s.True(s.miniRedis.Exists("product:7"))
	s.Equal(10*time.Minute, s.miniRedis.TTL("product:7"))

	cached, err := s.cache.GetProduct(ctx, 7)
	s.Require().NoError(err)
	s.Require().NotNil(cached)
	s.Equal(int64(7), cached.ProductID)
	s.Equal("Aventus", *cached.Perfume)
	s.True(cached.Price.Valid)
	s.True(cached.Price.Decimal.Equal(decimal.RequireFromString("199.99")))
	s.False(cached.RatingValue.Valid)
}

func (s *ProductCacheTestSuite) TestDeleteProduct() {
	ctx := context.Background()
	s.Require().NoError(s.cache.SetProduct(ctx, &entity.Product{ProductID: 5, ProdURL: "u", BrandID: 1}))

	s.NoError(s.cache.DeleteProduct(ctx, 5))

	s.False(s.miniRedis.Exists("product:5"))
	product, err := s.cache.GetProduct(ctx, 5)
	s.NoError(err)
	s.Nil(product)
}

func (s *ProductCacheTestSuite) TestSetProduct_AfterDeleteIsIgnored() {
	ctx := context.Background()
	stale := &entity.Product{ProductID: 5, ProdURL: "u", BrandID: 1}

	// чтение из БД завершилось раньше удаления, запись в кеш - позже
	s.NoError(s.cache.DeleteProduct(ctx, 5))
	s.NoError(s.cache.SetProduct(ctx, stale))

	s.False(s.miniRedis.Exists("product:5"))
	s.True(s.miniRedis.Exists("product:5:deleted"))
	product, err := s.cache.GetProduct(ctx, 5)
	s.NoError(err)
	s.Nil(product)
}

func (s *ProductCacheTestSuite) TestDeleteProduct_TombstoneExpiresWithTTL() {
	ctx := context.Background()
	s.NoError(s.cache.DeleteProduct(ctx, 5))
	s.Equal(10*time.Minute, s.miniRedis.TTL("product:5:deleted"))

	s.miniRedis.FastForward(11 * time.Minute)

	s.NoError(s.cache.SetProduct(ctx, &entity.Product{ProductID: 5, ProdURL: "u", BrandID: 1}))
	s.True(s.miniRedis.Exists("product:5"))
}

func (s *ProductCacheTestSuite) TestGetProduct_CorruptedValue() {
	s.Require().NoError(s.miniRedis.Set("product:9", "not json"))

	product, err := s.cache.GetProduct(context.Background(), 9)

	s.Error(err)
	s.Nil(product)
}

func (s *ProductCacheTestSuite) TestNoopProductCache() {
	var cache ProductCache = NoopProductCache{}
	ctx := context.Background()

	s.NoError(cache.SetProduct(ctx, &entity.Product{ProductID: 1}))
	product, err := cache.GetProduct(ctx, 1)
	s.NoError(err)
	s.Nil(product)
	s.NoError(cache.DeleteProduct(ctx, 1))
}
