package models

import (
	"time"

	"github.com/google/uuid"
)

type Schedule struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID       uuid.UUID `gorm:"type:uuid;not null" json:"course_id"`
	StartTime      time.Time `gorm:"not null" json:"start_time"`
	EndTime        time.Time `gorm:"not null" json:"end_time"`
	MaxOnsiteSeats *int      `json:"max_onsite_seats"`
	RoomLocation   *string   `gorm:"size:255" json:"room_location"`

	Course Course `gorm:"foreignkey:CourseID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
