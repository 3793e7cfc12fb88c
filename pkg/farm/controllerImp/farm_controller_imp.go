package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/JoeDalton318/farming-simulator/pkg/farm/service"
	"github.com/JoeDalton318/farming-simulator/pkg/fault"
)

type FarmCtrl struct{ svc service.FarmService }

func New(svc service.FarmService) *FarmCtrl { return &FarmCtrl{svc} }

type createReq struct {
	Name string          `json:"name"`
	Cash decimal.Decimal `json:"cash"`
}

type amountReq struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *FarmCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	f, err := h.svc.CreateFarm(req.Name, req.Cash)
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *FarmCtrl) Status(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	st, err := h.svc.Status(uint(id))
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, st)
}

func (h *FarmCtrl) Deduct(c echo.Context) error {
	var req amountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	id, _ := strconv.Atoi(c.Param("id"))
	balance, err := h.svc.Deduct(uint(id), req.Amount)
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]decimal.Decimal{"cash": balance})
}
