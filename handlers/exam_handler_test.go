package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/nattapon-dev/learnhub_backend/database"
	"github.com/nattapon-dev/learnhub_backend/models"
)

func TestCreateExamCourseNotFound(t *testing.T) {
	app := setupTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/exams", map[string]interface{}{
		"course_id": uuid.NewString(),
		"title":     "Final Exam",
		"type":      models.ExamFinal,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateExamInvalidType(t *testing.T) {
	app := setupTestApp(t)

	course := createTestCourse(t, "Go Basics")

	resp := doRequest(t, app, http.MethodPost, "/api/v1/exams", map[string]interface{}{
		"course_id": course.ID.String(),
		"title":     "Pop Quiz",
		"type":      "SURPRISE",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetFullExam(t *testing.T) {
	app := setupTestApp(t)

	course := createTestCourse(t, "Go Basics")

	resp := doRequest(t, app, http.MethodPost, "/api/v1/exams", map[string]interface{}{
		"course_id": course.ID.String(),
		"title":     "Midterm",
		"type":      models.ExamMidterm,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	examID := decodeBody(t, resp)["id"].(string)

	// Create the second question first so the response order proves the
	// sequence_order sort, not insertion order.
	labels := []string{"A", "B", "C", "D"}
	for _, seq := range []int{2, 1} {
		resp := doRequest(t, app, http.MethodPost,
			fmt.Sprintf("/api/v1/exams/%s/questions", examID), map[string]interface{}{
				"question_text":  fmt.Sprintf("Question %d", seq),
				"type":           models.QuestionMultipleChoice,
				"sequence_order": seq,
			})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		questionID := decodeBody(t, resp)["id"].(string)

		for i, label := range labels {
			resp := doRequest(t, app, http.MethodPost,
				fmt.Sprintf("/api/v1/exams/question/%s/choices", questionID), map[string]interface{}{
					"choice_label": label,
					"choice_text":  "Answer " + label,
					"is_correct":   i == 0,
				})
			require.Equal(t, http.StatusCreated, resp.StatusCode)
		}
	}

	resp = doRequest(t, app, http.MethodGet, "/api/v1/exams/"+examID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)

	questions, ok := body["questions"].([]interface{})
	require.True(t, ok)
	require.Len(t, questions, 2)

	for i, raw := range questions {
		q := raw.(map[string]interface{})
		assert.EqualValues(t, i+1, q["sequence_order"])
		assert.Equal(t, fmt.Sprintf("Question %d", i+1), q["question_text"])

		choices := q["choices"].([]interface{})
		assert.Len(t, choices, 4)
		for _, rawChoice := range choices {
			choice := rawChoice.(map[string]interface{})
			// Correct answers must never leak to exam takers.
			_, leaked := choice["is_correct"]
			assert.False(t, leaked)
		}
	}
}

func TestGetFullExamNoQuestions(t *testing.T) {
	app := setupTestApp(t)

	course := createTestCourse(t, "Go Basics")
	exam := models.Exam{CourseID: course.ID, Title: "Empty", Type: models.ExamQuiz, TotalScore: 100}
	require.NoError(t, database.DB.Create(&exam).Error)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/exams/"+exam.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)

	questions, ok := body["questions"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, questions)
}

func TestGetFullExamNotFound(t *testing.T) {
	app := setupTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/exams/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateQuestionExamNotFound(t *testing.T) {
	app := setupTestApp(t)

	resp := doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/api/v1/exams/%s/questions", uuid.NewString()), map[string]interface{}{
			"question_text": "Orphaned question",
			"type":          models.QuestionTrueFalse,
		})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateChoiceQuestionNotFound(t *testing.T) {
	app := setupTestApp(t)

	resp := doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/api/v1/exams/question/%s/choices", uuid.NewString()), map[string]interface{}{
			"choice_label": "A",
			"choice_text":  "Orphaned choice",
		})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
