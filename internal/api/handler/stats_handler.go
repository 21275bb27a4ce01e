package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Platform handles GET /stats.
//
// @Summary      Admin dashboard counts
// @Tags         stats
// @Produce      json
// @Success      200  {object}  dataResponse
// @Router       /stats [get]
func (h *StatsHandler) Platform(c echo.Context) error {
	stats, err := h.service.Platform(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, stats)
}
