package models

import (
	"time"

	"github.com/google/uuid"
)

type Choice struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuestionID  uuid.UUID `gorm:"type:uuid;not null" json:"question_id"`
	ChoiceLabel string    `gorm:"size:1;not null" json:"choice_label"`
	ChoiceText  string    `gorm:"type:text;not null" json:"choice_text"`
	IsCorrect   bool      `gorm:"default:false" json:"-"`

	Question Question `gorm:"foreignkey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
