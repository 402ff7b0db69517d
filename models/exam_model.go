package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExamPretest  = "PRETEST"
	ExamPosttest = "POSTTEST"
	ExamMidterm  = "MIDTERM"
	ExamFinal    = "FINAL"
	ExamQuiz     = "QUIZ"
)

type Exam struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID    uuid.UUID  `gorm:"type:uuid;not null" json:"course_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Type        string     `gorm:"size:20;not null;default:'QUIZ'" json:"type"`
	TotalScore  int        `gorm:"default:100" json:"total_score"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`

	Course Course `gorm:"foreignkey:CourseID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
