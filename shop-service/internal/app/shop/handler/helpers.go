package handler

import (
	"errors"
	"net/http"
	"strconv"

	"perfumeshop/pkg/logger"
	"perfumeshop/shop-service/internal/app/shop/entity"
	"perfumeshop/shop-service/internal/app/shop/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, entity.ErrorResponse{Error: message})
}

// respondServiceError отображает ошибки сервиса на HTTP статусы.
// Неизвестные ошибки логируются и отдаются как 500 с обобщенным сообщением
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCartNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyExists):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidReference),
		errors.Is(err, service.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		logger.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg(fallback)
		respondError(c, http.StatusInternalServerError, fallback)
	}
}

// bindJSON разбирает тело запроса и проверяет validate-теги.
// При ошибке ответ 400 уже записан
func bindJSON(c *gin.Context, v *validator.Validate, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := v.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return false
	}
	return true
}

// parseID читает целочисленный :id из пути
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid "+name+" ID")
		return 0, false
	}
	return id, true
}

// parsePage читает skip/limit из query. Отрицательные значения -> 400,
// limit больше entity.MaxLimit обрезается
func parsePage(c *gin.Context, defaultLimit int) (entity.Page, bool) {
	page := entity.Page{Skip: 0, Limit: defaultLimit}

	if raw, ok := c.GetQuery("skip"); ok {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			respondError(c, http.StatusBadRequest, "skip must be a non-negative integer")
			return page, false
		}
		page.Skip = skip
	}

	if raw, ok := c.GetQuery("limit"); ok {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondError(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return page, false
		}
		page.Limit = limit
	}

	if page.Limit > entity.MaxLimit {
		page.Limit = entity.MaxLimit
	}
	return page, true
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
