package handler

import (
	"net/http"

	"perfumeshop/pkg/logger"
	"perfumeshop/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "shop-service"

// Handlers - все обработчики сервиса для регистрации маршрутов
type Handlers struct {
	Catalog *CatalogHandler
	User    *UserHandler
	Cart    *CartHandler
	Stats   *StatsHandler
}

// SetupRoutes настраивает все маршруты сервиса с использованием Gin
// corsAllowedHeaders перечислены явно: при AllowCredentials браузер не раскрывает "*"
var corsAllowedHeaders = []string{
	"Accept",
	"Accept-Language",
	"Authorization",
	"Cache-Control",
	"Content-Language",
	"Content-Type",
	"Origin",
	"X-CSRF-Token",
	"X-Request-ID",
	"X-Requested-With",
}

func SetupRoutes(h Handlers, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	// CORS для фронтенда (vite dev server по умолчанию)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     corsAllowedHeaders,
		AllowCredentials: true,
		MaxAge:           600,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/stats/counts/", h.Stats.Counts)

	router.POST("/countries/", h.Catalog.CreateCountry)
	router.GET("/countries/", h.Catalog.ListCountries)

	router.POST("/brands/", h.Catalog.CreateBrand)
	router.GET("/brands/", h.Catalog.ListBrands)

	users := router.Group("/users")
	{
		users.POST("/", h.User.CreateUser)
		users.GET("/", h.User.ListUsers)
		users.GET("/:id", h.User.GetUser)
	}

	products := router.Group("/products")
	{
		products.POST("/", h.Catalog.CreateProduct)
		products.GET("/", h.Catalog.ListProducts)
		products.GET("/:id", h.Catalog.GetProduct)
		products.DELETE("/:id", h.Catalog.DeleteProduct)
	}

	carts := router.Group("/carts")
	{
		carts.POST("/", h.Cart.CreateCart)
		carts.GET("/", h.Cart.ListCarts)
		carts.GET("/:id", h.Cart.GetCart)
		carts.GET("/:id/contents/", h.Cart.ListCartContentsByCart)
	}

	router.POST("/cart_contents/", h.Cart.CreateCartContent)
	router.GET("/cart_contents/", h.Cart.ListCartContents)

	return router
}
