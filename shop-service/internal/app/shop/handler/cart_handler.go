package handler

import (
	"net/http"

	"perfumeshop/shop-service/internal/app/shop/entity"
	"perfumeshop/shop-service/internal/app/shop/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CartHandler обрабатывает HTTP запросы для корзин и позиций корзин
type CartHandler struct {
	cartService service.CartServiceInterface
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartServiceInterface) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// CreateCart обрабатывает POST /carts/
func (h *CartHandler) CreateCart(c *gin.Context) {
	var req entity.CreateCartRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	cart, err := h.cartService.CreateCart(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create cart")
		return
	}

	c.JSON(http.StatusOK, cart)
}

// GetCart обрабатывает GET /carts/{id}
func (h *CartHandler) GetCart(c *gin.Context) {
	id, ok := parseID(c, "cart")
	if !ok {
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to get cart")
		return
	}

	c.JSON(http.StatusOK, cart)
}

// ListCarts обрабатывает GET /carts/
func (h *CartHandler) ListCarts(c *gin.Context) {
	page, ok := parsePage(c, entity.DefaultLimit)
	if !ok {
		return
	}

	carts, err := h.cartService.ListCarts(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, err, "Failed to get carts")
		return
	}

	c.JSON(http.StatusOK, carts)
}

// CreateCartContent обрабатывает POST /cart_contents/
func (h *CartHandler) CreateCartContent(c *gin.Context) {
	var req entity.CreateCartContentRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	content, err := h.cartService.CreateCartContent(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create cart content")
		return
	}

	c.JSON(http.StatusOK, content)
}

// ListCartContents обрабатывает GET /cart_contents/
func (h *CartHandler) ListCartContents(c *gin.Context) {
	page, ok := parsePage(c, entity.DefaultLimit)
	if !ok {
		return
	}

	contents, err := h.cartService.ListCartContents(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, err, "Failed to get cart contents")
		return
	}

	c.JSON(http.StatusOK, contents)
}

// ListCartContentsByCart обрабатывает GET /carts/{id}/contents/
func (h *CartHandler) ListCartContentsByCart(c *gin.Context) {
	id, ok := parseID(c, "cart")
	if !ok {
		return
	}
	page, ok := parsePage(c, entity.DefaultLimit)
	if !ok {
		return
	}

	contents, err := h.cartService.ListCartContentsByCart(c.Request.Context(), id, page)
	if err != nil {
		respondServiceError(c, err, "Failed to get cart contents")
		return
	}

	c.JSON(http.StatusOK, contents)
}
