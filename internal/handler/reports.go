package handler

import (
	"net/http"

	"github.com/obispoem/pdv-simple/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// DailyReport godoc
// @Summary      Daily sales report
// @Description  Totals, item counts, the five best-selling products, and the sale list for one calendar day.
// @Tags         reports
// @Produce      json
// @Param        date query string false "Date YYYY-MM-DD (default: today)"
// @Success      200  {object} dto.DailyReportResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/reports/daily [get]
func (h *ReportsHandler) DailyReport(c *gin.Context) {
	resp, err := h.svc.DailyReport(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PaymentMethodsReport godoc
// @Summary      Sales breakdown by payment method
// @Description  Per-method totals, sale counts, and share of revenue for one calendar day.
// @Tags         reports
// @Produce      json
// @Param        date query string false "Date YYYY-MM-DD (default: today)"
// @Success      200  {object} dto.PaymentMethodsReportResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/reports/payment-methods [get]
func (h *ReportsHandler) PaymentMethodsReport(c *gin.Context) {
	resp, err := h.svc.PaymentMethodsReport(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
