package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Domenick1991/carrental/internal/service/fleet"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public vehicle catalog.
type CatalogHandler struct {
	service fleet.FleetUseCase
}

func NewCatalogHandler(service fleet.FleetUseCase) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/categories", h.categories)
}

func (h *CatalogHandler) list(c *gin.Context) {
	filter := fleet.CatalogFilter{
		Search:       c.Query("search"),
		Category:     c.Query("category"),
		Transmission: c.Query("transmission"),
	}
	if raw := c.Query("max_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			badRequest(c, fmt.Errorf("invalid max_price %q", raw))
			return
		}
		filter.MaxPrice = price
	}

	vehicles, err := h.service.Catalog(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func (h *CatalogHandler) categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
