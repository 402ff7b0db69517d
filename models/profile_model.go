package models

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;unique" json:"user_id"`
	FirstName *string   `gorm:"size:100" json:"first_name"`
	LastName  *string   `gorm:"size:100" json:"last_name"`
	Phone     *string   `gorm:"size:20" json:"phone"`
	StudentID *string   `gorm:"size:50;unique" json:"student_id"`
	AvatarURL *string   `gorm:"size:500" json:"avatar_url"`
	Bio       *string   `gorm:"type:text" json:"bio"`

	User User `gorm:"foreignkey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
