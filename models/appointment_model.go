package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// AppointmentSlot is one concrete, dated session between a mentor and a
// mentee. Slots are never physically deleted; cancellation is a status.
type AppointmentSlot struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MentorID uuid.UUID `gorm:"not null;index" json:"mentor_id"`
	MenteeID uuid.UUID `gorm:"not null;index" json:"mentee_id"`

	StartAt time.Time `gorm:"not null" json:"start_at"`
	EndAt   time.Time `gorm:"not null" json:"end_at"`
	Status  string    `gorm:"size:20;not null;default:'pending'" json:"status"`

	MeetingLink *string `gorm:"size:255" json:"meeting_link,omitempty"`

	Mentor User `gorm:"foreignkey:MentorID" json:"mentor,omitempty"`
	Mentee User `gorm:"foreignkey:MenteeID" json:"mentee,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
