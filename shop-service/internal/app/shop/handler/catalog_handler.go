package handler

import (
	"net/http"

	"perfumeshop/shop-service/internal/app/shop/entity"
	"perfumeshop/shop-service/internal/app/shop/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CatalogHandler обрабатывает HTTP запросы для стран, брендов и товаров
type CatalogHandler struct {
	catalogService service.CatalogServiceInterface
	validator      *validator.Validate
}

// NewCatalogHandler создает новый обработчик каталога
func NewCatalogHandler(catalogService service.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// === COUNTRIES ===

// CreateCountry обрабатывает POST /countries/
func (h *CatalogHandler) CreateCountry(c *gin.Context) {
	var req entity.CreateCountryRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	country, err := h.catalogService.CreateCountry(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create country")
		return
	}

	c.JSON(http.StatusOK, country)
}

// ListCountries обрабатывает GET /countries/
func (h *CatalogHandler) ListCountries(c *gin.Context) {
	page, ok := parsePage(c, entity.DefaultLimit)
	if !ok {
		return
	}

	countries, err := h.catalogService.ListCountries(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, err, "Failed to get countries")
		return
	}

	c.JSON(http.StatusOK, countries)
}

// === BRANDS ===

// CreateBrand обрабатывает POST /brands/
func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req entity.CreateBrandRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	brand, err := h.catalogService.CreateBrand(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create brand")
		return
	}

	c.JSON(http.StatusOK, brand)
}

// ListBrands обрабатывает GET /brands/
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	page, ok := parsePage(c, entity.DefaultLimit)
	if !ok {
		return
	}

	brands, err := h.catalogService.ListBrands(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, err, "Failed to get brands")
		return
	}

	c.JSON(http.StatusOK, brands)
}

// === PRODUCTS ===

// CreateProduct обрабатывает POST /products/
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetProduct обрабатывает GET /products/{id}
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to get product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// ListProducts обрабатывает GET /products/ (по умолчанию весь каталог)
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	page, ok := parsePage(c, entity.ProductsDefaultLimit)
	if !ok {
		return
	}

	products, err := h.catalogService.ListProducts(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, err, "Failed to get products")
		return
	}

	c.JSON(http.StatusOK, products)
}

// DeleteProduct обрабатывает DELETE /products/{id}
// Вместе с товаром удаляются все позиции корзин, ссылающиеся на него
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to delete product")
		return
	}

	c.Status(http.StatusNoContent)
}
