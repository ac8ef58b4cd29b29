package handler

import (
	"net/http"

	"perfumeshop/shop-service/internal/app/shop/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService service.StatsServiceInterface
}

func NewStatsHandler(statsService service.StatsServiceInterface) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Counts обрабатывает GET /stats/counts/
func (h *StatsHandler) Counts(c *gin.Context) {
	counts, err := h.statsService.Counts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to get stats")
		return
	}

	c.JSON(http.StatusOK, counts)
}
