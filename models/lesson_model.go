package models

import (
	"time"

	"github.com/google/uuid"
)

type Lesson struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID      uuid.UUID `gorm:"type:uuid;not null" json:"course_id"`
	TopicName     string    `gorm:"size:255;not null" json:"topic_name"`
	Content       *string   `gorm:"type:text" json:"content"`
	VideoURL      *string   `gorm:"size:500" json:"video_url"`
	SequenceOrder *int      `json:"sequence_order"`

	Course Course `gorm:"foreignkey:CourseID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
