package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nattapon-dev/learnhub_backend/handlers"
	"github.com/nattapon-dev/learnhub_backend/middleware"
)

func CourseRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	courses := api.Group("/courses", middleware.Protected())
	courses.Get("", handlers.GetAllCourses)
	courses.Post("", middleware.InstructorRequired(), handlers.CreateCourse)

	// Lesson lookups come before /:id so "lessons" is not swallowed as a
	// course id.
	courses.Get("/lessons/:lessonId", handlers.GetLesson)
	courses.Put("/lessons/:lessonId", middleware.InstructorRequired(), handlers.UpdateLesson)

	courses.Get("/:id", handlers.GetCourse)
	courses.Put("/:id", middleware.InstructorRequired(), handlers.UpdateCourse)
	courses.Post("/:id/activate", middleware.InstructorRequired(), handlers.ActivateCourse)
	courses.Post("/:id/deactivate", middleware.InstructorRequired(), handlers.DeactivateCourse)

	courses.Post("/:courseId/lessons", middleware.InstructorRequired(), handlers.CreateLesson)
	courses.Get("/:courseId/lessons", handlers.GetLessonsByCourse)
}
