package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/JoeDalton318/farming-simulator/pkg/equipment/service"
	"github.com/JoeDalton318/farming-simulator/pkg/fault"
)

type EquipmentCtrl struct{ svc service.EquipmentService }

func New(svc service.EquipmentService) *EquipmentCtrl { return &EquipmentCtrl{svc} }

type leaseReq struct {
	FarmID       uint                  `json:"farm_id"`
	Requirements []service.Requirement `json:"requirements"`
	Holder       string                `json:"holder"`
}

func (h *EquipmentCtrl) Fleet(c echo.Context) error {
	farmID, _ := strconv.Atoi(c.QueryParam("farm_id"))
	fleet, err := h.svc.Fleet(uint(farmID))
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, fleet)
}

func (h *EquipmentCtrl) Leases(c echo.Context) error {
	farmID, _ := strconv.Atoi(c.QueryParam("farm_id"))
	leases, err := h.svc.Leases(uint(farmID))
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, leases)
}

func (h *EquipmentCtrl) Lease(c echo.Context) error {
	var req leaseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	ids, err := h.svc.Lease(req.FarmID, req.Requirements, req.Holder)
	if err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"unit_ids": ids})
}

func (h *EquipmentCtrl) Release(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.svc.Release(uint(id)); err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EquipmentCtrl) MarkMaintenance(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.svc.MarkMaintenance(uint(id)); err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EquipmentCtrl) ClearMaintenance(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.svc.ClearMaintenance(uint(id)); err != nil {
		return c.JSON(fault.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
