package api

import (
	"net/http"

	"github.com/Domenick1991/carrental/internal/service/dashboard"
	"github.com/gin-gonic/gin"
)

const defaultActivityLimit = 20

type DashboardHandler struct {
	service dashboard.DashboardUseCase
}

func NewDashboardHandler(service dashboard.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Register(router *gin.RouterGroup) {
	router.GET("/stats", h.stats)
	router.GET("/activity", h.activity)
}

func (h *DashboardHandler) stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) activity(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		badRequest(c, err)
		return
	}
	if limit == 0 {
		limit = defaultActivityLimit
	}

	items, err := h.service.Activity(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
