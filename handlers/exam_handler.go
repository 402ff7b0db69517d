package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nattapon-dev/learnhub_backend/database"
	"github.com/nattapon-dev/learnhub_backend/models"
)

type ExamRequest struct {
	CourseID    string  `json:"course_id" validate:"required,uuid"`
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Type        string  `json:"type" validate:"required,oneof=PRETEST POSTTEST MIDTERM FINAL QUIZ"`
	TotalScore  *int    `json:"total_score" validate:"omitempty,gt=0"`
	StartTime   *string `json:"start_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime     *string `json:"end_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type QuestionRequest struct {
	LessonID      *string `json:"lesson_id" validate:"omitempty,uuid"`
	QuestionText  string  `json:"question_text" validate:"required"`
	Type          string  `json:"type" validate:"required,oneof=MULTIPLE_CHOICE TRUE_FALSE SHORT_ANSWER ESSAY"`
	ScorePoints   *int    `json:"score_points" validate:"omitempty,gt=0"`
	SequenceOrder *int    `json:"sequence_order"`
}

type ChoiceRequest struct {
	ChoiceLabel string `json:"choice_label" validate:"required,len=1"`
	ChoiceText  string `json:"choice_text" validate:"required"`
	IsCorrect   bool   `json:"is_correct"`
}

func CreateExam(c *fiber.Ctx) error {
	var req ExamRequest
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

	exam := models.Exam{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		TotalScore:  100,
	}
	if req.TotalScore != nil {
		exam.TotalScore = *req.TotalScore
	}
	if req.StartTime != nil {
		t, _ := time.Parse(time.RFC3339, *req.StartTime)
		exam.StartTime = &t
	}
	if req.EndTime != nil {
		t, _ := time.Parse(time.RFC3339, *req.EndTime)
		exam.EndTime = &t
	}

	if err := database.DB.Create(&exam).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create exam"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      exam.ID,
		"title":   exam.Title,
		"type":    exam.Type,
		"message": "Exam created successfully",
	})
}

func GetExamsByCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var exams []models.Exam
	database.DB.Where("course_id = ?", courseID).Order("created_at desc").Find(&exams)

	return c.JSON(fiber.Map{
		"data":  exams,
		"total": len(exams),
	})
}

// GetFullExam assembles the exam with its questions and choices in three
// queries: the exam, all of its questions, and one IN query for every choice
// of those questions.
func GetFullExam(c *fiber.Ctx) error {
	examID := c.Params("id")

	var exam models.Exam
	if err := database.DB.First(&exam, "id = ?", examID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
	}

	var questions []models.Question
	database.DB.Where("exam_id = ?", examID).
		Order("sequence_order asc").Order("created_at asc").
		Find(&questions)

	questionIDs := make([]uuid.UUID, 0, len(questions))
	for _, q := range questions {
		questionIDs = append(questionIDs, q.ID)
	}

	choicesByQuestion := make(map[uuid.UUID][]models.Choice)
	if len(questionIDs) > 0 {
		var choices []models.Choice
		database.DB.Where("question_id IN ?", questionIDs).Find(&choices)
		for _, ch := range choices {
			choicesByQuestion[ch.QuestionID] = append(choicesByQuestion[ch.QuestionID], ch)
		}
	}

	questionData := make([]fiber.Map, 0, len(questions))
	for _, q := range questions {
		choices := choicesByQuestion[q.ID]
		if choices == nil {
			choices = []models.Choice{}
		}
		questionData = append(questionData, fiber.Map{
			"id":             q.ID,
			"question_text":  q.QuestionText,
			"type":           q.Type,
			"score_points":   q.ScorePoints,
			"sequence_order": q.SequenceOrder,
			"choices":        choices,
		})
	}

	return c.JSON(fiber.Map{
		"id":          exam.ID,
		"title":       exam.Title,
		"description": exam.Description,
		"type":        exam.Type,
		"total_score": exam.TotalScore,
		"questions":   questionData,
	})
}

func CreateQuestion(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("examId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exam id"})
	}

	var exam models.Exam
	if err := database.DB.First(&exam, "id = ?", examID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
	}

	var req QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	question := models.Question{
		ExamID:        examID,
		QuestionText:  req.QuestionText,
		Type:          req.Type,
		ScorePoints:   1,
		SequenceOrder: req.SequenceOrder,
	}
	if req.ScorePoints != nil {
		question.ScorePoints = *req.ScorePoints
	}
	if req.LessonID != nil {
		lessonID, _ := uuid.Parse(*req.LessonID)
		var lesson models.Lesson
		if err := database.DB.First(&lesson, "id = ?", lessonID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson not found"})
		}
		question.LessonID = &lessonID
	}

	if err := database.DB.Create(&question).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create question"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":            question.ID,
		"question_text": question.QuestionText,
		"type":          question.Type,
		"message":       "Question created successfully",
	})
}

func GetQuestionsByExam(c *fiber.Ctx) error {
	examID := c.Params("examId")

	var exam models.Exam
	if err := database.DB.First(&exam, "id = ?", examID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
	}

	var questions []models.Question
	database.DB.Where("exam_id = ?", examID).
		Order("sequence_order asc").Order("created_at asc").
		Find(&questions)

	return c.JSON(fiber.Map{
		"data":    questions,
		"total":   len(questions),
		"exam_id": examID,
	})
}

func GetQuestion(c *fiber.Ctx) error {
	questionID := c.Params("questionId")

	var question models.Question
	if err := database.DB.First(&question, "id = ?", questionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}

	var choices []models.Choice
	database.DB.Where("question_id = ?", questionID).Find(&choices)

	return c.JSON(fiber.Map{
		"id":            question.ID,
		"question_text": question.QuestionText,
		"type":          question.Type,
		"score_points":  question.ScorePoints,
		"choices":       choices,
	})
}

func CreateChoice(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("questionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question id"})
	}

	var question models.Question
	if err := database.DB.First(&question, "id = ?", questionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}

	var req ChoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	choice := models.Choice{
		QuestionID:  questionID,
		ChoiceLabel: req.ChoiceLabel,
		ChoiceText:  req.ChoiceText,
		IsCorrect:   req.IsCorrect,
	}
	if err := database.DB.Create(&choice).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create choice"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":           choice.ID,
		"choice_label": choice.ChoiceLabel,
		"message":      "Choice created successfully",
	})
}

func GetChoicesByQuestion(c *fiber.Ctx) error {
	questionID := c.Params("questionId")

	var question models.Question
	if err := database.DB.First(&question, "id = ?", questionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}

	var choices []models.Choice
	database.DB.Where("question_id = ?", questionID).Find(&choices)

	return c.JSON(fiber.Map{
		"data":        choices,
		"total":       len(choices),
		"question_id": questionID,
	})
}
