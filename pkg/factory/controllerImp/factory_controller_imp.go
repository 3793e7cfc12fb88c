package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/JoeDalton318/farming-simulator/pkg/factory/service"
	farm "github.com/JoeDalton318/farming-simulator/pkg/farm/service"
	"github.com/JoeDalton318/farming-simulator/pkg/fault"
)

type FactoryCtrl struct {
	svc   service.FactoryService
	coord farm.Coordinator
}

func New(svc service.FactoryService, coord farm.Coordinator) *FactoryCtrl {
	return &FactoryCtrl{svc: svc, coord: coord}
}

type processReq struct {
	Inputs []service.InputItem `json:"inputs"`
}

type operationalReq struct {
	Operational bool `json:"operational"`
}

func (h *FactoryCtrl) List(c echo.Context) error {
	farmID, _ := strconv.Atoi(c.QueryParam("farm_id"))
	list, err := h.svc.List(uint(farmID))
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, list)
}

func (h *FactoryCtrl) Process(c echo.Context) error {
	var req processReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	id, _ := strconv.Atoi(c.Param("id"))
	out, err := h.coord.RunFactory(uint(id), req.Inputs)
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FactoryCtrl) SetOperational(c echo.Context) error {
	var req operationalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.svc.SetOperational(uint(id), req.Operational); err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
