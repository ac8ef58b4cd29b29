package handler

import (
	"net/http"

	"perfumeshop/shop-service/internal/app/shop/entity"
	"perfumeshop/shop-service/internal/app/shop/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// UserHandler обрабатывает HTTP запросы для пользователей
type UserHandler struct {
	userService service.UserServiceInterface
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
	}
}

// CreateUser обрабатывает POST /users/
// Пароль хэшируется в сервисе, в ответ не попадает
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req entity.CreateUserRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser обрабатывает GET /users/{id}
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "user")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers обрабатывает GET /users/
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, ok := parsePage(c, entity.DefaultLimit)
	if !ok {
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, err, "Failed to get users")
		return
	}

	c.JSON(http.StatusOK, users)
}
