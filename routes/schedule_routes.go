package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nattapon-dev/learnhub_backend/handlers"
	"github.com/nattapon-dev/learnhub_backend/middleware"
)

func ScheduleRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	schedules := api.Group("/schedules", middleware.Protected())
	schedules.Post("", middleware.InstructorRequired(), handlers.CreateSchedule)
	schedules.Get("/course/:courseId", handlers.GetSchedulesByCourse)
	schedules.Get("/:id", handlers.GetSchedule)
	schedules.Put("/:id", middleware.InstructorRequired(), handlers.UpdateSchedule)
}
