package models

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityBlock is one recurring weekly window a mentor is bookable in.
// The clock fields are minutes since midnight, interpreted in UTC; the wire
// format is "HH:MM" (see scheduling.ParseClock).
type AvailabilityBlock struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MentorID uuid.UUID `gorm:"not null;index" json:"-"`

	DayOfWeek   int  `gorm:"not null" json:"day_of_week"` // 0=Sunday .. 6=Saturday
	StartMinute int  `gorm:"not null" json:"-"`
	EndMinute   int  `gorm:"not null" json:"-"`
	IsActive    bool `gorm:"not null;default:true" json:"is_active"`

	Mentor User `gorm:"foreignkey:MentorID" json:"-"`

	CreatedAt time.Time `json:"-"`
}
