package api

import (
	"net/http"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/service/expenses"
	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	service expenses.ExpenseUseCase
}

func NewExpenseHandler(service expenses.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

func (h *ExpenseHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/totals", h.totals)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func expenseFilter(c *gin.Context) expenses.ExpenseFilter {
	return expenses.ExpenseFilter{
		VehicleID: c.Query("vehicle_id"),
		Category:  domain.ExpenseCategory(c.Query("category")),
	}
}

func (h *ExpenseHandler) list(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), expenseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ExpenseHandler) totals(c *gin.Context) {
	totals, err := h.service.Totals(c.Request.Context(), expenseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *ExpenseHandler) get(c *gin.Context) {
	expense, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) create(c *gin.Context) {
	var req expenses.ExpenseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	expense, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *ExpenseHandler) update(c *gin.Context) {
	var req expenses.ExpenseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	expense, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
