package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/JoeDalton318/farming-simulator/pkg/fault"
	farm "github.com/JoeDalton318/farming-simulator/pkg/farm/service"
	"github.com/JoeDalton318/farming-simulator/pkg/field/service"
)

type FieldCtrl struct {
	svc   service.FieldService
	coord farm.Coordinator
}

func New(svc service.FieldService, coord farm.Coordinator) *FieldCtrl {
	return &FieldCtrl{svc: svc, coord: coord}
}

type createReq struct {
	FarmID uint `json:"farm_id"`
}

type plantReq struct {
	Crop string `json:"crop"`
}

func (h *FieldCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	f, err := h.svc.CreateField(req.FarmID)
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *FieldCtrl) Status(c echo.Context) error {
	st, err := h.svc.Status(paramID(c))
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, st)
}

func (h *FieldCtrl) History(c echo.Context) error {
	hist, err := h.svc.History(paramID(c))
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, hist)
}

func (h *FieldCtrl) Plow(c echo.Context) error {
	f, err := h.svc.Plow(paramID(c))
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FieldCtrl) Plant(c echo.Context) error {
	var req plantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	f, err := h.svc.Plant(paramID(c), req.Crop)
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FieldCtrl) Fertilize(c echo.Context) error {
	f, err := h.svc.Fertilize(paramID(c))
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FieldCtrl) Harvest(c echo.Context) error {
	res, err := h.coord.Harvest(paramID(c))
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

func paramID(c echo.Context) uint {
	id, _ := strconv.Atoi(c.Param("id"))
	return uint(id)
}
