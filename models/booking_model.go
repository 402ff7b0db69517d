package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	LearningModeOnline = "ONLINE"
	LearningModeOnsite = "ONSITE"
	LearningModeHybrid = "HYBRID"
)

const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
	BookingCompleted = "COMPLETED"
)

type Booking struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_user_schedule" json:"user_id"`
	ScheduleID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_user_schedule" json:"schedule_id"`
	LearningMode string     `gorm:"size:20;not null;default:'ONLINE'" json:"learning_mode"`
	Status       string     `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	BookingDate  *time.Time `json:"booking_date"`
	Notes        *string    `gorm:"type:text" json:"notes"`

	User     User     `gorm:"foreignkey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Schedule Schedule `gorm:"foreignkey:ScheduleID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
