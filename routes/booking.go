package routes

import (
	"bookhive/handlers"
	"bookhive/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	// Availability reads are public.
	services := r.Group("/api/services")
	{
		services.GET("/:serviceId/availability", h.CheckAvailability)
		services.GET("/:serviceId/timeslot-availability", h.CheckTimeSlotAvailability)
		services.GET("/:serviceId/booked-dates", h.GetBookedDates)
		services.GET("/:serviceId/calendar", h.GetCalendarData)
	}

	bookings := r.Group("/api/bookings")
	bookings.Use(middleware.JWTAuthMiddleware())
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id", h.GetBooking)
		bookings.GET("/user/:userId", h.ListUserBookings)
		bookings.GET("/provider/:providerId", h.ListProviderBookings)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.POST("/:id/complete", h.CompleteBooking)
		bookings.POST("/:id/cancellation-request", h.RequestCancellation)
		bookings.POST("/:id/cancellation-request/process",
			middleware.RequireRole("admin"), h.ProcessCancellationRequest)
	}
}
