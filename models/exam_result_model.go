package models

import (
	"time"

	"github.com/google/uuid"
)

type ExamResult struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	ExamID           uuid.UUID  `gorm:"type:uuid;not null" json:"exam_id"`
	TotalScore       int        `gorm:"default:0" json:"total_score"`
	Percentage       float64    `gorm:"default:0" json:"percentage"`
	WeakPointsLog    *string    `gorm:"type:text" json:"weak_points_log"`
	TotalQuestions   int        `gorm:"default:0" json:"total_questions"`
	CorrectAnswers   int        `gorm:"default:0" json:"correct_answers"`
	WrongAnswers     int        `gorm:"default:0" json:"wrong_answers"`
	TimeSpentSeconds *int       `json:"time_spent_seconds"`
	StartedAt        *time.Time `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at"`

	User User `gorm:"foreignkey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Exam Exam `gorm:"foreignkey:ExamID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
