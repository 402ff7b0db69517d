package models

import (
	"time"

	"github.com/google/uuid"
)

type Certificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	CourseID       uuid.UUID `gorm:"type:uuid;not null" json:"course_id"`
	ExamResultID   uuid.UUID `gorm:"type:uuid;not null" json:"exam_result_id"`
	CourseTitle    string    `gorm:"size:255;not null" json:"course_title"`
	CompletionDate time.Time `json:"completion_date"`
	CertificateURL string    `gorm:"size:500" json:"certificate_url"`

	User   User   `gorm:"foreignkey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course Course `gorm:"foreignkey:CourseID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
