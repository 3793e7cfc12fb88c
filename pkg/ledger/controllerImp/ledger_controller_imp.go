package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/JoeDalton318/farming-simulator/pkg/fault"
	"github.com/JoeDalton318/farming-simulator/pkg/ledger/service"
)

type LedgerCtrl struct{ svc service.LedgerService }

func New(svc service.LedgerService) *LedgerCtrl { return &LedgerCtrl{svc} }

type addReq struct {
	ItemType     string          `json:"item_type"`
	Quantity     int64           `json:"quantity"`
	ValuePerUnit decimal.Decimal `json:"value_per_unit"`
}

type removeReq struct {
	ItemType string `json:"item_type"`
	Quantity int64  `json:"quantity"`
}

func (h *LedgerCtrl) Content(c echo.Context) error {
	snap, err := h.svc.Content(paramID(c))
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *LedgerCtrl) Add(c echo.Context) error {
	var req addReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	item, err := h.svc.Add(paramID(c), req.ItemType, req.Quantity, req.ValuePerUnit)
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *LedgerCtrl) Remove(c echo.Context) error {
	var req removeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := h.svc.Remove(paramID(c), req.ItemType, req.Quantity); err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LedgerCtrl) Sell(c echo.Context) error {
	var req removeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	res, err := h.svc.Sell(paramID(c), req.ItemType, req.Quantity)
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

func paramID(c echo.Context) uint {
	id, _ := strconv.Atoi(c.Param("id"))
	return uint(id)
}
