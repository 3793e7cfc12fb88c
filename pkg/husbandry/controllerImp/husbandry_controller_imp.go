package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	farm "github.com/JoeDalton318/farming-simulator/pkg/farm/service"
	"github.com/JoeDalton318/farming-simulator/pkg/fault"
	"github.com/JoeDalton318/farming-simulator/pkg/husbandry/service"
)

type HusbandryCtrl struct {
	svc   service.HusbandryService
	coord farm.Coordinator
}

func New(svc service.HusbandryService, coord farm.Coordinator) *HusbandryCtrl {
	return &HusbandryCtrl{svc: svc, coord: coord}
}

type buyReq struct {
	FarmID  uint   `json:"farm_id"`
	Species string `json:"species"`
	Name    string `json:"name"`
}

type feedReq struct {
	Amount int `json:"amount"`
}

type feedAllReq struct {
	FarmID uint `json:"farm_id"`
	Amount int  `json:"amount"`
}

type tankReq struct {
	TankID uint `json:"tank_id"`
}

func (h *HusbandryCtrl) Buy(c echo.Context) error {
	var req buyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	a, err := h.svc.BuyAnimal(req.FarmID, req.Species, req.Name)
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *HusbandryCtrl) Feed(c echo.Context) error {
	var req feedReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	a, err := h.svc.Feed(paramID(c), req.Amount)
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, a)
}

func (h *HusbandryCtrl) FeedAll(c echo.Context) error {
	var req feedAllReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	outcomes, err := h.svc.FeedAll(req.FarmID, req.Amount)
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, outcomes)
}

func (h *HusbandryCtrl) Collect(c echo.Context) error {
	var req tankReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	res, err := h.coord.CollectAnimal(paramID(c), req.TankID)
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

func (h *HusbandryCtrl) Health(c echo.Context) error {
	rep, err := h.svc.Health(paramID(c))
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *HusbandryCtrl) ActivateGreenhouse(c echo.Context) error {
	var req tankReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	gh, err := h.svc.ActivateGreenhouse(paramID(c), req.TankID)
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, gh)
}

func (h *HusbandryCtrl) DeactivateGreenhouse(c echo.Context) error {
	gh, err := h.svc.DeactivateGreenhouse(paramID(c))
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, gh)
}

func (h *HusbandryCtrl) Produce(c echo.Context) error {
	var req tankReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	res, err := h.coord.ProduceGreenhouse(paramID(c), req.TankID)
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

func paramID(c echo.Context) uint {
	id, _ := strconv.Atoi(c.Param("id"))
	return uint(id)
}
