package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/nattapon-dev/learnhub_backend/database"
	"github.com/nattapon-dev/learnhub_backend/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupTestApp opens the integration database and mounts the handlers under
// the routes they serve in production, without the auth middleware: the
// middleware is not what these tests exercise.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration tests")
	}

	var err error
	database.DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction:   true,
		DisableNestedTransaction: true,
		TranslateError:           true,
	})
	require.NoError(t, err)

	require.NoError(t, database.DB.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Course{},
		&models.Lesson{},
		&models.Schedule{},
		&models.Booking{},
		&models.Exam{},
		&models.Question{},
		&models.Choice{},
		&models.ExamResult{},
		&models.Certificate{},
	))

	require.NoError(t, database.DB.Exec(
		"TRUNCATE bookings, certificates, exam_results, choices, questions, exams, schedules, lessons, courses, profiles, users CASCADE",
	).Error)

	app := fiber.New()

	app.Post("/api/v1/auth/register", RegisterUser)
	app.Post("/api/v1/auth/login", LoginUser)

	app.Post("/api/v1/bookings", CreateBooking)
	app.Get("/api/v1/bookings/user/:userId", GetBookingsByUser)
	app.Get("/api/v1/bookings/schedule/:scheduleId/stats", GetBookingStats)
	app.Get("/api/v1/bookings/schedule/:scheduleId", GetBookingsBySchedule)
	app.Get("/api/v1/bookings/:id", GetBooking)
	app.Put("/api/v1/bookings/:id/confirm", ConfirmBooking)
	app.Put("/api/v1/bookings/:id/cancel", CancelBooking)
	app.Put("/api/v1/bookings/:id/complete", CompleteBooking)

	app.Post("/api/v1/exams", CreateExam)
	app.Get("/api/v1/exams/course/:courseId", GetExamsByCourse)
	app.Get("/api/v1/exams/question/:questionId/choices", GetChoicesByQuestion)
	app.Get("/api/v1/exams/:id", GetFullExam)
	app.Post("/api/v1/exams/:examId/questions", CreateQuestion)
	app.Get("/api/v1/exams/:examId/questions", GetQuestionsByExam)
	app.Post("/api/v1/exams/question/:questionId/choices", CreateChoice)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func createTestUser(t *testing.T, email string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleStudent,
		IsActive:     true,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createTestCourse(t *testing.T, title string) models.Course {
	t.Helper()

	course := models.Course{Title: title, IsActive: true}
	require.NoError(t, database.DB.Create(&course).Error)
	return course
}

func createTestSchedule(t *testing.T, courseID uuid.UUID, maxOnsiteSeats *int) models.Schedule {
	t.Helper()

	schedule := models.Schedule{
		CourseID:       courseID,
		StartTime:      time.Now().Add(24 * time.Hour),
		EndTime:        time.Now().Add(26 * time.Hour),
		MaxOnsiteSeats: maxOnsiteSeats,
	}
	require.NoError(t, database.DB.Create(&schedule).Error)
	return schedule
}

func createBookingRequest(userID, scheduleID uuid.UUID, mode string) map[string]interface{} {
	return map[string]interface{}{
		"user_id":       userID.String(),
		"schedule_id":   scheduleID.String(),
		"learning_mode": mode,
	}
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.NewString()[:8])
}
