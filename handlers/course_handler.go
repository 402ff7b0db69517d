package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nattapon-dev/learnhub_backend/database"
	"github.com/nattapon-dev/learnhub_backend/models"
)

type CourseRequest struct {
	Title        string  `json:"title" validate:"required"`
	Description  *string `json:"description"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

type LessonRequest struct {
	TopicName     string  `json:"topic_name" validate:"required"`
	Content       *string `json:"content"`
	VideoURL      *string `json:"video_url"`
	SequenceOrder *int    `json:"sequence_order"`
}

func CreateCourse(c *fiber.Ctx) error {
	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	course := models.Course{
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		IsActive:     true,
	}
	if err := database.DB.Create(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create course"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":        course.ID,
		"title":     course.Title,
		"is_active": course.IsActive,
		"message":   "Course created successfully",
	})
}

func GetAllCourses(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	offset := c.QueryInt("offset", 0)

	var courses []models.Course
	var total int64
	database.DB.Model(&models.Course{}).Where("is_active = ?", true).Count(&total)
	database.DB.Where("is_active = ?", true).
		Order("created_at desc").Limit(limit).Offset(offset).Find(&courses)

	return c.JSON(fiber.Map{
		"data":   courses,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func GetCourse(c *fiber.Ctx) error {
	courseID := c.Params("id")
	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	return c.JSON(course)
}

func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Params("id")
	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Title != "" {
		course.Title = req.Title
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.ThumbnailURL != nil {
		course.ThumbnailURL = req.ThumbnailURL
	}
	database.DB.Save(&course)

	return c.JSON(fiber.Map{
		"id":      course.ID,
		"title":   course.Title,
		"message": "Course updated successfully",
	})
}

func setCourseActive(c *fiber.Ctx, active bool) error {
	courseID := c.Params("id")
	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	course.IsActive = active
	database.DB.Save(&course)

	msg := "Course deactivated"
	if active {
		msg = "Course activated"
	}
	return c.JSON(fiber.Map{"is_active": course.IsActive, "message": msg})
}

func ActivateCourse(c *fiber.Ctx) error {
	return setCourseActive(c, true)
}

func DeactivateCourse(c *fiber.Ctx) error {
	return setCourseActive(c, false)
}

func CreateLesson(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var req LessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lesson := models.Lesson{
		CourseID:      courseID,
		TopicName:     req.TopicName,
		Content:       req.Content,
		VideoURL:      req.VideoURL,
		SequenceOrder: req.SequenceOrder,
	}
	if err := database.DB.Create(&lesson).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create lesson"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":         lesson.ID,
		"topic_name": lesson.TopicName,
		"message":    "Lesson created successfully",
	})
}

func GetLessonsByCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var lessons []models.Lesson
	var total int64
	database.DB.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&total)
	database.DB.Where("course_id = ?", courseID).
		Order("sequence_order asc").Limit(limit).Offset(offset).Find(&lessons)

	return c.JSON(fiber.Map{
		"data":      lessons,
		"total":     total,
		"course_id": courseID,
	})
}

func GetLesson(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")
	var lesson models.Lesson
	if err := database.DB.First(&lesson, "id = ?", lessonID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson not found"})
	}
	return c.JSON(lesson)
}

func UpdateLesson(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")
	var lesson models.Lesson
	if err := database.DB.First(&lesson, "id = ?", lessonID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson not found"})
	}

	var req LessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.TopicName != "" {
		lesson.TopicName = req.TopicName
	}
	if req.Content != nil {
		lesson.Content = req.Content
	}
	if req.VideoURL != nil {
		lesson.VideoURL = req.VideoURL
	}
	if req.SequenceOrder != nil {
		lesson.SequenceOrder = req.SequenceOrder
	}
	database.DB.Save(&lesson)

	return c.JSON(fiber.Map{
		"id":         lesson.ID,
		"topic_name": lesson.TopicName,
		"message":    "Lesson updated successfully",
	})
}
