package handler

import (
	"net/http"

	"github.com/obispoem/pdv-simple/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Overview godoc
// @Summary      Admin dashboard overview
// @Description  Aggregates today's summary, payment breakdown, register status, low-stock products, and the last sales in one response. Cached briefly in Redis.
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.DashboardResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	resp, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
