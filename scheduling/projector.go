package scheduling

import (
	"time"

	"github.com/google/uuid"
	"github.com/mentorhub/mentor_platform/models"
	"gorm.io/gorm"
)

// DaySchedule is the projector output for one calendar date: the recurring
// blocks for that weekday and the slots already booked against them. The
// caller renders "available minus booked"; no conflict resolution happens
// here — booking always goes through Reserve.
type DaySchedule struct {
	Date        string                   `json:"date"`
	Blocks      []BlockView              `json:"blocks"`
	BookedSlots []models.AppointmentSlot `json:"booked_slots"`
}

// Project composes the mentor's schedule for one UTC date. Pure read side;
// identical inputs with no intervening writes yield identical output.
func Project(db *gorm.DB, mentorID uuid.UUID, date time.Time) (DaySchedule, error) {
	date = date.UTC()
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	blocks, err := GetBlocksForDay(db, mentorID, int(dayStart.Weekday()))
	if err != nil {
		return DaySchedule{}, err
	}
	slots, err := GetSlots(db, mentorID, dayStart, dayEnd, ActiveStatuses)
	if err != nil {
		return DaySchedule{}, err
	}

	views := make([]BlockView, 0, len(blocks))
	for _, b := range blocks {
		views = append(views, ViewOf(b))
	}
	return DaySchedule{
		Date:        dayStart.Format("2006-01-02"),
		Blocks:      views,
		BookedSlots: slots,
	}, nil
}
