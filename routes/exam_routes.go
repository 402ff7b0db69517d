package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nattapon-dev/learnhub_backend/handlers"
	"github.com/nattapon-dev/learnhub_backend/middleware"
)

func ExamRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	exams := api.Group("/exams", middleware.Protected())
	exams.Post("", middleware.InstructorRequired(), handlers.CreateExam)
	exams.Get("/course/:courseId", handlers.GetExamsByCourse)
	exams.Get("/results/me", handlers.GetMyExamResults)

	exams.Get("/question/:questionId", handlers.GetQuestion)
	exams.Post("/question/:questionId/choices", middleware.InstructorRequired(), handlers.CreateChoice)
	exams.Get("/question/:questionId/choices", handlers.GetChoicesByQuestion)

	exams.Get("/:id", handlers.GetFullExam)
	exams.Post("/:examId/questions", middleware.InstructorRequired(), handlers.CreateQuestion)
	exams.Get("/:examId/questions", handlers.GetQuestionsByExam)
	exams.Post("/:examId/submit", handlers.SubmitExam)
}
