package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nattapon-dev/learnhub_backend/handlers"
	"github.com/nattapon-dev/learnhub_backend/middleware"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	bookings := api.Group("/bookings", middleware.Protected())
	bookings.Post("", handlers.CreateBooking)
	bookings.Get("/user/:userId", handlers.GetBookingsByUser)
	bookings.Get("/schedule/:scheduleId/stats", handlers.GetBookingStats)
	bookings.Get("/schedule/:scheduleId", handlers.GetBookingsBySchedule)
	bookings.Get("/:id", handlers.GetBooking)
	bookings.Put("/:id/confirm", handlers.ConfirmBooking)
	bookings.Put("/:id/cancel", handlers.CancelBooking)
	bookings.Put("/:id/complete", middleware.InstructorRequired(), handlers.CompleteBooking)
}
