package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/carrental/internal/availability"
	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/service/booking"
	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes the blocked days of a vehicle and range checks
// against them. It mounts on the vehicles group.
type AvailabilityHandler struct {
	service booking.BookingUseCase
}

// validateRangeRequest keeps the dates as text so a malformed date is
// reported as an invalid range rather than a bad request.
type validateRangeRequest struct {
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	ExcludeBookingID string `json:"exclude_booking_id"`
}

type pickRequest struct {
	Start            domain.Date `json:"start"`
	End              domain.Date `json:"end"`
	Day              domain.Date `json:"day"`
	ExcludeBookingID string      `json:"exclude_booking_id"`
}

type validationResponse struct {
	Valid    bool                      `json:"valid"`
	Error    string                    `json:"error,omitempty"`
	Conflict *availability.BlockedDate `json:"conflict,omitempty"`
}

type pickResponse struct {
	Selection availability.Selection `json:"selection"`
	validationResponse
}

func NewAvailabilityHandler(service booking.BookingUseCase) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

func (h *AvailabilityHandler) Register(router *gin.RouterGroup) {
	router.GET("/:id/blocked-dates", h.blockedDates)
	router.GET("/:id/calendar", h.calendar)
	router.POST("/:id/calendar/pick", h.pick)
	router.POST("/:id/validate-range", h.validateRange)
}

func (h *AvailabilityHandler) blockedDates(c *gin.Context) {
	blocked, err := h.service.BlockedDates(c.Request.Context(), c.Param("id"), c.Query("exclude"))
	if err != nil {
		respondError(c, err)
		return
	}
	if blocked == nil {
		blocked = []availability.BlockedDate{}
	}
	c.JSON(http.StatusOK, blocked)
}

// calendar takes month=YYYY-MM (default: current month) and an optional
// start/end selection to highlight.
func (h *AvailabilityHandler) calendar(c *gin.Context) {
	var (
		year  int
		month time.Month
	)
	if raw := c.Query("month"); raw != "" {
		t, err := time.Parse("2006-01", raw)
		if err != nil {
			badRequest(c, fmt.Errorf("invalid month %q, want YYYY-MM", raw))
			return
		}
		year, month = t.Year(), t.Month()
	}

	start, err := queryDate(c, "start")
	if err != nil {
		badRequest(c, err)
		return
	}
	end, err := queryDate(c, "end")
	if err != nil {
		badRequest(c, err)
		return
	}

	cal, err := h.service.Calendar(c.Request.Context(), c.Param("id"), c.Query("exclude"), year, month, availability.Selection{Start: start, End: end})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}

func (h *AvailabilityHandler) pick(c *gin.Context) {
	var req pickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sel := availability.Selection{Start: req.Start, End: req.End}
	next, v, err := h.service.PickDate(c.Request.Context(), c.Param("id"), req.ExcludeBookingID, sel, req.Day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pickResponse{Selection: next, validationResponse: toValidationResponse(v)})
}

// validateRange always answers 200; an invalid range is reported in the body.
func (h *AvailabilityHandler) validateRange(c *gin.Context) {
	var req validateRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	start, err := domain.ParseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusOK, validationResponse{Error: err.Error()})
		return
	}
	end, err := domain.ParseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusOK, validationResponse{Error: err.Error()})
		return
	}

	v, err := h.service.ValidateRange(c.Request.Context(), c.Param("id"), req.ExcludeBookingID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toValidationResponse(v))
}

func toValidationResponse(v availability.Validation) validationResponse {
	return validationResponse{Valid: v.Valid, Error: v.Message(), Conflict: v.Conflict}
}

func queryDate(c *gin.Context, key string) (domain.Date, error) {
	raw := c.Query(key)
	if raw == "" {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return domain.Date{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
