package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nattapon-dev/learnhub_backend/database"
	"github.com/nattapon-dev/learnhub_backend/models"
)

type ScheduleRequest struct {
	CourseID       string  `json:"course_id" validate:"required,uuid"`
	StartTime      string  `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime        string  `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	MaxOnsiteSeats *int    `json:"max_onsite_seats" validate:"omitempty,gt=0"`
	RoomLocation   *string `json:"room_location"`
}

func CreateSchedule(c *fiber.Ctx) error {
	var req ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	courseID, _ := uuid.Parse(req.CourseID)
	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	startTime, _ := time.Parse(time.RFC3339, req.StartTime)
	endTime, _ := time.Parse(time.RFC3339, req.EndTime)
	if !endTime.After(startTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_time must be after start_time"})
	}

	schedule := models.Schedule{
		CourseID:       courseID,
		StartTime:      startTime,
		EndTime:        endTime,
		MaxOnsiteSeats: req.MaxOnsiteSeats,
		RoomLocation:   req.RoomLocation,
	}
	if err := database.DB.Create(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create schedule"})
	}

	return c.Status(fiber.StatusCreated).JSON(schedule)
}

func GetSchedule(c *fiber.Ctx) error {
	scheduleID := c.Params("id")
	var schedule models.Schedule
	if err := database.DB.First(&schedule, "id = ?", scheduleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
	}
	return c.JSON(schedule)
}

func GetSchedulesByCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var schedules []models.Schedule
	database.DB.Where("course_id = ?", courseID).Order("start_time asc").Find(&schedules)

	return c.JSON(fiber.Map{
		"data":      schedules,
		"total":     len(schedules),
		"course_id": courseID,
	})
}

type UpdateScheduleRequest struct {
	StartTime      *string `json:"start_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime        *string `json:"end_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	MaxOnsiteSeats *int    `json:"max_onsite_seats" validate:"omitempty,gt=0"`
	RoomLocation   *string `json:"room_location"`
}

func UpdateSchedule(c *fiber.Ctx) error {
	scheduleID := c.Params("id")
	var schedule models.Schedule
	if err := database.DB.First(&schedule, "id = ?", scheduleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
	}

	var req UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.StartTime != nil {
		t, _ := time.Parse(time.RFC3339, *req.StartTime)
		schedule.StartTime = t
	}
	if req.EndTime != nil {
		t, _ := time.Parse(time.RFC3339, *req.EndTime)
		schedule.EndTime = t
	}
	if !schedule.EndTime.After(schedule.StartTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_time must be after start_time"})
	}
	if req.MaxOnsiteSeats != nil {
		schedule.MaxOnsiteSeats = req.MaxOnsiteSeats
	}
	if req.RoomLocation != nil {
		schedule.RoomLocation = req.RoomLocation
	}
	database.DB.Save(&schedule)

	return c.JSON(schedule)
}
