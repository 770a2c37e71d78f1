package api

import (
	"github.com/Domenick1991/carrental/internal/service/booking"
	"github.com/Domenick1991/carrental/internal/service/clients"
	"github.com/Domenick1991/carrental/internal/service/dashboard"
	"github.com/Domenick1991/carrental/internal/service/expenses"
	"github.com/Domenick1991/carrental/internal/service/fleet"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Fleet     fleet.FleetUseCase
	Bookings  booking.BookingUseCase
	Clients   clients.ClientUseCase
	Expenses  expenses.ExpenseUseCase
	Dashboard dashboard.DashboardUseCase
}

// NewRouter mounts every handler on a fresh gin engine with request logging
// and panic recovery.
func NewRouter(s Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	NewCatalogHandler(s.Fleet).Register(router.Group("/catalog"))

	vehicles := router.Group("/vehicles")
	NewVehicleHandler(s.Fleet).Register(vehicles)
	NewAvailabilityHandler(s.Bookings).Register(vehicles)

	NewBookingHandler(s.Bookings).Register(router.Group("/bookings"))
	NewClientHandler(s.Clients).Register(router.Group("/clients"))
	NewExpenseHandler(s.Expenses).Register(router.Group("/expenses"))
	NewDashboardHandler(s.Dashboard).Register(router.Group("/dashboard"))

	return router
}
