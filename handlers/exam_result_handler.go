package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/nattapon-dev/learnhub_backend/database"
	"github.com/nattapon-dev/learnhub_backend/models"
	"github.com/nattapon-dev/learnhub_backend/services"
)

type SubmittedAnswer struct {
	QuestionID string `json:"question_id" validate:"required,uuid"`
	ChoiceID   string `json:"choice_id" validate:"required,uuid"`
}

type SubmitExamRequest struct {
	Answers          []SubmittedAnswer `json:"answers" validate:"required,min=1,dive"`
	StartedAt        *string           `json:"started_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	TimeSpentSeconds *int              `json:"time_spent_seconds" validate:"omitempty,gte=0"`
}

func SubmitExam(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	examID, err := uuid.Parse(c.Params("examId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exam id"})
	}

	var req SubmitExamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var exam models.Exam
	if err := database.DB.First(&exam, "id = ?", examID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
	}

	var questions []models.Question
	database.DB.Where("exam_id = ?", examID).Find(&questions)
	if len(questions) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Exam has no questions"})
	}

	questionByID := make(map[uuid.UUID]models.Question, len(questions))
	questionIDs := make([]uuid.UUID, 0, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
		questionIDs = append(questionIDs, q.ID)
	}

	var correctChoices []models.Choice
	database.DB.Where("question_id IN ? AND is_correct = ?", questionIDs, true).Find(&correctChoices)

	correctByQuestion := make(map[uuid.UUID]uuid.UUID, len(correctChoices))
	for _, ch := range correctChoices {
		correctByQuestion[ch.QuestionID] = ch.ID
	}

	score := 0
	correct := 0
	var weakLessons []uuid.UUID
	// Only the first answer per question counts; repeated question ids must
	// not inflate the score past the exam's maximum.
	answered := make(map[uuid.UUID]struct{}, len(req.Answers))
	for _, ans := range req.Answers {
		questionID, _ := uuid.Parse(ans.QuestionID)
		choiceID, _ := uuid.Parse(ans.ChoiceID)

		q, ok := questionByID[questionID]
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Answer references a question outside this exam"})
		}
		if _, dup := answered[questionID]; dup {
			continue
		}
		answered[questionID] = struct{}{}

		if correctByQuestion[questionID] == choiceID {
			score += q.ScorePoints
			correct++
		} else if q.LessonID != nil {
			weakLessons = append(weakLessons, *q.LessonID)
		}
	}

	maxScore := 0
	for _, q := range questions {
		maxScore += q.ScorePoints
	}
	percentage := 0.0
	if maxScore > 0 {
		percentage = float64(score) / float64(maxScore) * 100
	}

	var weakPointsLog *string
	if len(weakLessons) > 0 {
		raw, _ := json.Marshal(weakLessons)
		s := string(raw)
		weakPointsLog = &s
	}

	now := time.Now()
	result := models.ExamResult{
		UserID:           userID,
		ExamID:           examID,
		TotalScore:       score,
		Percentage:       percentage,
		WeakPointsLog:    weakPointsLog,
		TotalQuestions:   len(questions),
		CorrectAnswers:   correct,
		WrongAnswers:     len(answered) - correct,
		TimeSpentSeconds: req.TimeSpentSeconds,
		CompletedAt:      &now,
	}
	if req.StartedAt != nil {
		t, _ := time.Parse(time.RFC3339, *req.StartedAt)
		result.StartedAt = &t
	}

	if err := database.DB.Create(&result).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save exam result"})
	}

	if exam.Type == models.ExamFinal {
		go services.CheckAndGenerateCertificate(result, exam)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":              result.ID,
		"total_score":     result.TotalScore,
		"percentage":      result.Percentage,
		"total_questions": result.TotalQuestions,
		"correct_answers": result.CorrectAnswers,
		"wrong_answers":   result.WrongAnswers,
		"message":         "Exam submitted successfully",
	})
}

func GetMyExamResults(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var results []models.ExamResult
	database.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&results)

	return c.JSON(fiber.Map{
		"data":  results,
		"total": len(results),
	})
}
