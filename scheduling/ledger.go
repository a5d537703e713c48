package scheduling

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mentorhub/mentor_platform/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingRequest is one mentee's attempt to reserve a concrete session window.
type BookingRequest struct {
	MentorID uuid.UUID
	MenteeID uuid.UUID
	StartAt  time.Time
	EndAt    time.Time
}

// ActiveStatuses are the statuses that occupy a mentor's calendar.
var ActiveStatuses = []string{models.AppointmentPending, models.AppointmentConfirmed}

// ValidateRequest runs the time-shape checks that need no store access:
// ordering, past start, maximum span, minute alignment, midnight crossing.
func ValidateRequest(req BookingRequest, now time.Time, maxSession time.Duration) error {
	if !req.StartAt.Before(req.EndAt) {
		return &ValidationError{Reason: "start time must be before end time"}
	}
	if req.StartAt.Before(now) {
		return &ValidationError{Reason: "cannot book a session in the past"}
	}
	if req.EndAt.Sub(req.StartAt) > maxSession {
		return &ValidationError{Reason: "session exceeds the maximum allowed length"}
	}
	if req.StartAt.Second() != 0 || req.StartAt.Nanosecond() != 0 ||
		req.EndAt.Second() != 0 || req.EndAt.Nanosecond() != 0 {
		return &ValidationError{Reason: "session times must be aligned to whole minutes"}
	}
	startMin := MinuteOfDay(req.StartAt)
	endMin := startMin + int(req.EndAt.Sub(req.StartAt)/time.Minute)
	if endMin > MinutesPerDay {
		return &ValidationError{Reason: "sessions may not cross midnight UTC"}
	}
	return nil
}

// WithinBlocks reports whether the minute window is fully contained in at
// least one of the blocks. Mere overlap is not enough.
func WithinBlocks(startMin, endMin int, blocks []models.AvailabilityBlock) bool {
	for _, b := range blocks {
		if MinutesContain(b.StartMinute, b.EndMinute, startMin, endMin) {
			return true
		}
	}
	return false
}

// GetSlots returns the mentor's slots in the given statuses that touch
// [from, to), ordered by start time ascending.
func GetSlots(db *gorm.DB, mentorID uuid.UUID, from, to time.Time, statuses []string) ([]models.AppointmentSlot, error) {
	var slots []models.AppointmentSlot
	err := db.Where("mentor_id = ? AND status IN ? AND start_at < ? AND end_at > ?",
		mentorID, statuses, to, from).
		Order("start_at asc").
		Find(&slots).Error
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return slots, nil
}

// Reserve validates the request and, in a single transaction, re-checks the
// window and inserts the slot. The SELECT ... FOR UPDATE on the mentor's user
// row serializes competing reservations, so at most one of N concurrent
// requests for overlapping windows can commit; the rest get ConflictError.
func Reserve(db *gorm.DB, req BookingRequest, now time.Time, maxSession time.Duration) (models.AppointmentSlot, error) {
	var slot models.AppointmentSlot
	if err := ValidateRequest(req, now, maxSession); err != nil {
		return slot, err
	}

	startMin := MinuteOfDay(req.StartAt)
	endMin := startMin + int(req.EndAt.Sub(req.StartAt)/time.Minute)
	dayOfWeek := int(req.StartAt.UTC().Weekday())

	err := db.Transaction(func(tx *gorm.DB) error {
		var mentor models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&mentor, "id = ? AND role = ?", req.MentorID, models.RoleMentor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "mentor"}
			}
			return &StorageError{Err: err}
		}

		blocks, err := GetBlocksForDay(tx, req.MentorID, dayOfWeek)
		if err != nil {
			return err
		}
		if !WithinBlocks(startMin, endMin, blocks) {
			return &ValidationError{Reason: "requested time is outside the mentor's availability"}
		}

		existing, err := GetSlots(tx, req.MentorID, req.StartAt, req.EndAt, ActiveStatuses)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return &ConflictError{Reason: "the requested time overlaps an existing appointment"}
		}

		slot = models.AppointmentSlot{
			ID:       uuid.New(),
			MentorID: req.MentorID,
			MenteeID: req.MenteeID,
			StartAt:  req.StartAt.UTC(),
			EndAt:    req.EndAt.UTC(),
			Status:   models.AppointmentPending,
		}
		return tx.Create(&slot).Error
	})
	if err != nil {
		return models.AppointmentSlot{}, wrapStorage(err)
	}
	return slot, nil
}

// Transition applies one state-machine action on behalf of an actor, locking
// the slot row so concurrent transitions serialize.
func Transition(db *gorm.DB, slotID, actorID uuid.UUID, action Action, now time.Time) (models.AppointmentSlot, error) {
	var slot models.AppointmentSlot
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot, "id = ?", slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "appointment"}
			}
			return &StorageError{Err: err}
		}

		if err := authorizeAction(slot, actorID, action); err != nil {
			return err
		}
		next, err := NextStatus(slot.Status, action)
		if err != nil {
			return err
		}
		if action == ActionComplete && slot.EndAt.After(now) {
			return &ValidationError{Reason: "cannot complete a session before it has ended"}
		}

		slot.Status = next
		return tx.Save(&slot).Error
	})
	if err != nil {
		return models.AppointmentSlot{}, wrapStorage(err)
	}
	return slot, nil
}

func authorizeAction(slot models.AppointmentSlot, actorID uuid.UUID, action Action) error {
	switch action {
	case ActionAccept, ActionComplete:
		if slot.MentorID != actorID {
			return &UnauthorizedError{Reason: "only the mentor may perform this action"}
		}
	case ActionCancel:
		if slot.MentorID != actorID && slot.MenteeID != actorID {
			return &UnauthorizedError{Reason: "you are not a participant in this appointment"}
		}
	default:
		return &ValidationError{Reason: "unknown action"}
	}
	return nil
}

// wrapStorage keeps taxonomy errors as-is and wraps anything else (driver
// failures, commit aborts) as StorageError.
func wrapStorage(err error) error {
	var (
		ve *ValidationError
		ce *ConflictError
		nf *NotFoundError
		ua *UnauthorizedError
		se *StorageError
	)
	if errors.As(err, &ve) || errors.As(err, &ce) || errors.As(err, &nf) ||
		errors.As(err, &ua) || errors.As(err, &se) {
		return err
	}
	return &StorageError{Err: err}
}
