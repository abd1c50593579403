package handlers

import (
	"errors"
	"net/http"
	"strconv"

	bookingRepo "bookhive/database/repository/booking"
	"bookhive/models"
	"bookhive/services/booking"
	"bookhive/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler maps the booking service onto the HTTP surface.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// respondError translates domain errors into HTTP status codes.
func respondError(c *gin.Context, err error) {
	var validationErr *booking.ValidationError
	var conflictErr *booking.ConflictError
	var stateErr *booking.InvalidStateError
	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", validationErr.Message)
	case errors.As(err, &conflictErr):
		utils.JSONError(c, http.StatusConflict, "Booking conflict", conflictErr.Error())
	case errors.As(err, &stateErr):
		utils.JSONError(c, http.StatusConflict, "Invalid booking state", stateErr.Error())
	case errors.Is(err, bookingRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
	}
}

// CheckAvailability handles GET /api/services/:serviceId/availability.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	serviceID := c.Param("serviceId")
	checkIn := c.Query("checkIn")
	checkOut := c.Query("checkOut")

	result, err := h.Service.CheckAvailability(c.Request.Context(), serviceID, checkIn, checkOut)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CheckTimeSlotAvailability handles GET /api/services/:serviceId/timeslot-availability.
func (h *BookingHandler) CheckTimeSlotAvailability(c *gin.Context) {
	serviceID := c.Param("serviceId")
	slot := models.TimeSlot{
		Date:      c.Query("date"),
		StartTime: c.Query("startTime"),
		EndTime:   c.Query("endTime"),
	}

	result, err := h.Service.CheckTimeSlotAvailability(c.Request.Context(), serviceID, slot)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBookedDates handles GET /api/services/:serviceId/booked-dates.
func (h *BookingHandler) GetBookedDates(c *gin.Context) {
	serviceID := c.Param("serviceId")

	dates, err := h.Service.GetBookedDates(c.Request.Context(), serviceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookedDates": dates})
}

// GetCalendarData handles GET /api/services/:serviceId/calendar?year=&month=.
func (h *BookingHandler) GetCalendarData(c *gin.Context) {
	serviceID := c.Param("serviceId")
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "year must be an integer")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "month must be an integer")
		return
	}

	data, err := h.Service.GetCalendarData(c.Request.Context(), serviceID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.Service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	h.Logger.Info("booking created via API", zap.String("bookingID", created.ID))
	c.JSON(http.StatusCreated, created)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	result, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListUserBookings handles GET /api/bookings/user/:userId.
func (h *BookingHandler) ListUserBookings(c *gin.Context) {
	result, err := h.Service.ListUserBookings(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": result})
}

// ListProviderBookings handles GET /api/bookings/provider/:providerId.
func (h *BookingHandler) ListProviderBookings(c *gin.Context) {
	result, err := h.Service.ListProviderBookings(c.Request.Context(), c.Param("providerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": result})
}

type cancelBookingInput struct {
	CancelledBy models.CancelActor `json:"cancelledBy"`
	Reason      string             `json:"reason"`
}

// CancelBooking handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var input cancelBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	cancelled, err := h.Service.CancelBooking(c.Request.Context(), c.Param("id"), input.CancelledBy, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelled)
}

// CompleteBooking handles POST /api/bookings/:id/complete.
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	completed, err := h.Service.CompleteBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, completed)
}

type cancellationRequestInput struct {
	RequestedBy models.CancelActor `json:"requestedBy"`
	Reason      string             `json:"reason"`
}

// RequestCancellation handles POST /api/bookings/:id/cancellation-request.
func (h *BookingHandler) RequestCancellation(c *gin.Context) {
	var input cancellationRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.Service.RequestCancellation(c.Request.Context(), c.Param("id"), input.RequestedBy, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type processRequestInput struct {
	Approve    bool   `json:"approve"`
	AdminNotes string `json:"adminNotes"`
}

// ProcessCancellationRequest handles POST /api/bookings/:id/cancellation-request/process.
// The admin identity comes from the authenticated caller.
func (h *BookingHandler) ProcessCancellationRequest(c *gin.Context) {
	var input processRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	adminID := c.GetString("callerID")

	result, err := h.Service.ProcessCancellationRequest(c.Request.Context(), c.Param("id"), input.Approve, adminID, input.AdminNotes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
