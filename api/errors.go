package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/Domenick1991/carrental/internal/availability"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/Domenick1991/carrental/internal/service/booking"
	"github.com/Domenick1991/carrental/internal/service/clients"
	"github.com/Domenick1991/carrental/internal/service/expenses"
	"github.com/Domenick1991/carrental/internal/service/fleet"
	"github.com/gin-gonic/gin"
)

var conflictErrors = []error{
	availability.ErrOverlap,
	repository.ErrBookingOverlap,
	booking.ErrVehicleLocked,
	booking.ErrVehicleInMaintenance,
	booking.ErrBookingCancelled,
}

var badRequestErrors = []error{
	availability.ErrDatesNotSelected,
	availability.ErrPastDate,
	availability.ErrEndBeforeStart,
	booking.ErrVehicleRequired,
	booking.ErrCustomerRequired,
	booking.ErrInvalidStatus,
	booking.ErrNegativeKm,
	booking.ErrEndingKmRequired,
	booking.ErrEndingKmBelowStart,
	fleet.ErrBrandRequired,
	fleet.ErrModelRequired,
	fleet.ErrPlateRequired,
	fleet.ErrInvalidPrice,
	fleet.ErrNegativeMileage,
	fleet.ErrInvalidStatus,
	clients.ErrNameRequired,
	clients.ErrEmailRequired,
	clients.ErrPhoneRequired,
	expenses.ErrVehicleRequired,
	expenses.ErrInvalidCategory,
	expenses.ErrInvalidAmount,
	expenses.ErrDateRequired,
}

func statusFor(err error) int {
	if errors.Is(err, repository.ErrNotFound) {
		return http.StatusNotFound
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return http.StatusConflict
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
