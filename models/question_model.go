package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	QuestionMultipleChoice = "MULTIPLE_CHOICE"
	QuestionTrueFalse      = "TRUE_FALSE"
	QuestionShortAnswer    = "SHORT_ANSWER"
	QuestionEssay          = "ESSAY"
)

type Question struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ExamID        uuid.UUID  `gorm:"type:uuid;not null" json:"exam_id"`
	LessonID      *uuid.UUID `gorm:"type:uuid" json:"lesson_id"`
	QuestionText  string     `gorm:"type:text;not null" json:"question_text"`
	Type          string     `gorm:"size:20;not null;default:'MULTIPLE_CHOICE'" json:"type"`
	ScorePoints   int        `gorm:"default:1" json:"score_points"`
	SequenceOrder *int       `json:"sequence_order"`

	Exam   Exam    `gorm:"foreignkey:ExamID;constraint:OnDelete:CASCADE" json:"-"`
	Lesson *Lesson `gorm:"foreignkey:LessonID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
