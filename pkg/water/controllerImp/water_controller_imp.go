package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/JoeDalton318/farming-simulator/pkg/fault"
	"github.com/JoeDalton318/farming-simulator/pkg/water/service"
)

type WaterCtrl struct{ svc service.WaterService }

func New(svc service.WaterService) *WaterCtrl { return &WaterCtrl{svc} }

type consumeReq struct {
	Amount int64 `json:"amount"`
}

func (h *WaterCtrl) Level(c echo.Context) error {
	rep, err := h.svc.Level(paramID(c))
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *WaterCtrl) Consume(c echo.Context) error {
	var req consumeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	level, err := h.svc.Consume(paramID(c), req.Amount)
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]int64{"current_level": level})
}

func (h *WaterCtrl) Refill(c echo.Context) error {
	level, err := h.svc.Refill(paramID(c))
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]int64{"current_level": level})
}

func paramID(c echo.Context) uint {
	id, _ := strconv.Atoi(c.Param("id"))
	return uint(id)
}
