package api

import (
	"context"
	"net/http"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/service/fleet"
	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	service fleet.FleetUseCase
}

func NewVehicleHandler(service fleet.FleetUseCase) *VehicleHandler {
	return &VehicleHandler{service: service}
}

func (h *VehicleHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
	router.POST("/:id/maintenance", h.setMaintenance)
	router.POST("/:id/available", h.setAvailable)
	router.POST("/:id/toggle", h.toggle)
}

func (h *VehicleHandler) list(c *gin.Context) {
	vehicles, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func (h *VehicleHandler) get(c *gin.Context) {
	vehicle, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandler) create(c *gin.Context) {
	var req fleet.VehicleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	vehicle, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func (h *VehicleHandler) update(c *gin.Context) {
	var req fleet.VehicleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	vehicle, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *VehicleHandler) setMaintenance(c *gin.Context) {
	h.changeStatus(c, h.service.SetMaintenance)
}

func (h *VehicleHandler) setAvailable(c *gin.Context) {
	h.changeStatus(c, h.service.SetAvailable)
}

func (h *VehicleHandler) toggle(c *gin.Context) {
	h.changeStatus(c, h.service.ToggleStatus)
}

func (h *VehicleHandler) changeStatus(c *gin.Context, action func(ctx context.Context, id string) (*domain.Vehicle, error)) {
	vehicle, err := action(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}
