package handler

import (
	"net/http"
	"strconv"

	"github.com/obispoem/pdv-simple/internal/dto"
	"github.com/obispoem/pdv-simple/internal/service"

	"github.com/gin-gonic/gin"
)

type CashierHandler struct{ svc service.CashierService }

func NewCashierHandler(svc service.CashierService) *CashierHandler {
	return &CashierHandler{svc: svc}
}

// OpenRegister godoc
// @Summary      Open the cash register
// @Description  Opens the register with an initial balance. Fails with 409 if it is already open.
// @Tags         cashier
// @Accept       json
// @Produce      json
// @Param        body body dto.OpenRegisterRequest true "Initial balance"
// @Success      201  {object} dto.CashierOperationResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/cashier/open [post]
func (h *CashierHandler) OpenRegister(c *gin.Context) {
	var req dto.OpenRegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Open(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CloseRegister godoc
// @Summary      Close the cash register
// @Description  Closes the register, reconciling the counted balance against the expected one (initial balance plus sales since opening).
// @Tags         cashier
// @Accept       json
// @Produce      json
// @Param        body body dto.CloseRegisterRequest true "Counted final balance"
// @Success      200  {object} dto.CashierOperationResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/cashier/close [post]
func (h *CashierHandler) CloseRegister(c *gin.Context) {
	var req dto.CloseRegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Close(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegisterStatus godoc
// @Summary      Current register status
// @Description  Returns whether the register is open; when open, includes sales since opening and the running expected balance.
// @Tags         cashier
// @Produce      json
// @Success      200 {object} dto.RegisterStatusResponse
// @Router       /v1/cashier/status [get]
func (h *CashierHandler) RegisterStatus(c *gin.Context) {
	resp, err := h.svc.Status(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// OperationHistory godoc
// @Summary      Register operation history
// @Tags         cashier
// @Produce      json
// @Param        limit query int false "Max operations (default 30)"
// @Success      200 {array} dto.CashierOperationResponse
// @Router       /v1/cashier/history [get]
func (h *CashierHandler) OperationHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	resp, err := h.svc.History(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
