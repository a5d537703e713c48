package scheduling_test

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/mentorhub/mentor_platform/models"
	"github.com/mentorhub/mentor_platform/scheduling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction:   true,
		DisableNestedTransaction: true,
		Logger:                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

const maxSession = 3 * time.Hour

func mentorRows(mentorID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "role"}).AddRow(mentorID.String(), models.RoleMentor)
}

func blockRows(mentorID uuid.UUID, startMin, endMin int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "mentor_id", "day_of_week", "start_minute", "end_minute", "is_active"}).
		AddRow(uuid.New().String(), mentorID.String(), 1, startMin, endMin, true)
}

func emptySlotRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "mentor_id", "mentee_id", "start_at", "end_at", "status"})
}

func TestReserve(t *testing.T) {
	now := monday.Add(-24 * time.Hour)

	t.Run("accepts a contained conflict-free window", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mentorID, menteeID := uuid.New(), uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "users"(.+)FOR UPDATE`).
			WillReturnRows(mentorRows(mentorID))
		mock.ExpectQuery(`SELECT (.+) FROM "availability_blocks"`).
			WillReturnRows(blockRows(mentorID, 540, 720)) // Monday 09:00-12:00
		mock.ExpectQuery(`SELECT (.+) FROM "appointment_slots"`).
			WillReturnRows(emptySlotRows())
		mock.ExpectExec(`INSERT INTO "appointment_slots"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		slot, err := scheduling.Reserve(db, scheduling.BookingRequest{
			MentorID: mentorID,
			MenteeID: menteeID,
			StartAt:  mondayAt(9, 0),
			EndAt:    mondayAt(10, 0),
		}, now, maxSession)
		require.NoError(t, err)

		assert.Equal(t, models.AppointmentPending, slot.Status)
		assert.Equal(t, mentorID, slot.MentorID)
		assert.Equal(t, menteeID, slot.MenteeID)
		assert.NotEqual(t, uuid.Nil, slot.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a window not contained in any block", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mentorID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "users"(.+)FOR UPDATE`).
			WillReturnRows(mentorRows(mentorID))
		mock.ExpectQuery(`SELECT (.+) FROM "availability_blocks"`).
			WillReturnRows(blockRows(mentorID, 540, 720))
		mock.ExpectRollback()

		// 08:30-09:30 overlaps the block but pokes out of it.
		_, err := scheduling.Reserve(db, scheduling.BookingRequest{
			MentorID: mentorID,
			MenteeID: uuid.New(),
			StartAt:  mondayAt(8, 30),
			EndAt:    mondayAt(9, 30),
		}, now, maxSession)

		var validation *scheduling.ValidationError
		require.True(t, errors.As(err, &validation), "got %v", err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a window overlapping an existing slot", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mentorID := uuid.New()

		existing := emptySlotRows().
			AddRow(uuid.New().String(), mentorID.String(), uuid.New().String(),
				mondayAt(9, 0), mondayAt(10, 0), models.AppointmentPending)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "users"(.+)FOR UPDATE`).
			WillReturnRows(mentorRows(mentorID))
		mock.ExpectQuery(`SELECT (.+) FROM "availability_blocks"`).
			WillReturnRows(blockRows(mentorID, 540, 720))
		mock.ExpectQuery(`SELECT (.+) FROM "appointment_slots"`).
			WillReturnRows(existing)
		mock.ExpectRollback()

		_, err := scheduling.Reserve(db, scheduling.BookingRequest{
			MentorID: mentorID,
			MenteeID: uuid.New(),
			StartAt:  mondayAt(9, 30),
			EndAt:    mondayAt(10, 30),
		}, now, maxSession)

		var conflict *scheduling.ConflictError
		require.True(t, errors.As(err, &conflict), "got %v", err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown mentor", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "users"(.+)FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "role"}))
		mock.ExpectRollback()

		_, err := scheduling.Reserve(db, scheduling.BookingRequest{
			MentorID: uuid.New(),
			MenteeID: uuid.New(),
			StartAt:  mondayAt(9, 0),
			EndAt:    mondayAt(10, 0),
		}, now, maxSession)

		var notFound *scheduling.NotFoundError
		require.True(t, errors.As(err, &notFound), "got %v", err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid request never reaches the store", func(t *testing.T) {
		db, mock := setupMockDB(t)

		_, err := scheduling.Reserve(db, scheduling.BookingRequest{
			MentorID: uuid.New(),
			MenteeID: uuid.New(),
			StartAt:  mondayAt(10, 0),
			EndAt:    mondayAt(9, 0),
		}, now, maxSession)

		var validation *scheduling.ValidationError
		require.True(t, errors.As(err, &validation))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func slotRow(id, mentorID, menteeID uuid.UUID, start, end time.Time, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "mentor_id", "mentee_id", "start_at", "end_at", "status"}).
		AddRow(id.String(), mentorID.String(), menteeID.String(), start, end, status)
}

func TestTransition(t *testing.T) {
	now := mondayAt(12, 0)
	slotID, mentorID, menteeID := uuid.New(), uuid.New(), uuid.New()

	t.Run("mentor accepts a pending slot", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "appointment_slots"(.+)FOR UPDATE`).
			WillReturnRows(slotRow(slotID, mentorID, menteeID, mondayAt(9, 0), mondayAt(10, 0), models.AppointmentPending))
		mock.ExpectExec(`UPDATE "appointment_slots" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		slot, err := scheduling.Transition(db, slotID, mentorID, scheduling.ActionAccept, now)
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentConfirmed, slot.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mentee cancels a confirmed slot", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "appointment_slots"(.+)FOR UPDATE`).
			WillReturnRows(slotRow(slotID, mentorID, menteeID, mondayAt(9, 0), mondayAt(10, 0), models.AppointmentConfirmed))
		mock.ExpectExec(`UPDATE "appointment_slots" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		slot, err := scheduling.Transition(db, slotID, menteeID, scheduling.ActionCancel, now)
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentCancelled, slot.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("completing before the session ends is rejected", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "appointment_slots"(.+)FOR UPDATE`).
			WillReturnRows(slotRow(slotID, mentorID, menteeID, mondayAt(13, 0), mondayAt(14, 0), models.AppointmentConfirmed))
		mock.ExpectRollback()

		_, err := scheduling.Transition(db, slotID, mentorID, scheduling.ActionComplete, now)
		var validation *scheduling.ValidationError
		require.True(t, errors.As(err, &validation), "got %v", err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cancelling a completed slot is rejected", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "appointment_slots"(.+)FOR UPDATE`).
			WillReturnRows(slotRow(slotID, mentorID, menteeID, mondayAt(9, 0), mondayAt(10, 0), models.AppointmentCompleted))
		mock.ExpectRollback()

		_, err := scheduling.Transition(db, slotID, mentorID, scheduling.ActionCancel, now)
		var validation *scheduling.ValidationError
		require.True(t, errors.As(err, &validation), "got %v", err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("outsiders cannot touch the slot", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "appointment_slots"(.+)FOR UPDATE`).
			WillReturnRows(slotRow(slotID, mentorID, menteeID, mondayAt(9, 0), mondayAt(10, 0), models.AppointmentPending))
		mock.ExpectRollback()

		_, err := scheduling.Transition(db, slotID, uuid.New(), scheduling.ActionCancel, now)
		var unauthorized *scheduling.UnauthorizedError
		require.True(t, errors.As(err, &unauthorized), "got %v", err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mentee cannot accept", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "appointment_slots"(.+)FOR UPDATE`).
			WillReturnRows(slotRow(slotID, mentorID, menteeID, mondayAt(9, 0), mondayAt(10, 0), models.AppointmentPending))
		mock.ExpectRollback()

		_, err := scheduling.Transition(db, slotID, menteeID, scheduling.ActionAccept, now)
		var unauthorized *scheduling.UnauthorizedError
		require.True(t, errors.As(err, &unauthorized), "got %v", err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown slot", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "appointment_slots"(.+)FOR UPDATE`).
			WillReturnRows(emptySlotRows())
		mock.ExpectRollback()

		_, err := scheduling.Transition(db, uuid.New(), mentorID, scheduling.ActionCancel, now)
		var notFound *scheduling.NotFoundError
		require.True(t, errors.As(err, &notFound), "got %v", err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReplaceBlocksIsAtomic(t *testing.T) {
	db, mock := setupMockDB(t)
	mentorID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "availability_blocks"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO "availability_blocks"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := scheduling.ReplaceBlocks(db, mentorID, []models.AvailabilityBlock{
		{DayOfWeek: 1, StartMinute: 540, EndMinute: 720, IsActive: true},
		{DayOfWeek: 3, StartMinute: 840, EndMinute: 1020, IsActive: true},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectIsIdempotent(t *testing.T) {
	db, mock := setupMockDB(t)
	mentorID, menteeID := uuid.New(), uuid.New()
	slotID := uuid.New()

	expectDay := func() {
		mock.ExpectQuery(`SELECT (.+) FROM "availability_blocks"`).
			WillReturnRows(blockRows(mentorID, 540, 720))
		mock.ExpectQuery(`SELECT (.+) FROM "appointment_slots"`).
			WillReturnRows(slotRow(slotID, mentorID, menteeID, mondayAt(9, 0), mondayAt(10, 0), models.AppointmentPending))
	}

	expectDay()
	first, err := scheduling.Project(db, mentorID, monday)
	require.NoError(t, err)

	expectDay()
	second, err := scheduling.Project(db, mentorID, monday)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "2025-06-02", first.Date)
	require.Len(t, first.Blocks, 1)
	assert.Equal(t, scheduling.BlockView{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true}, first.Blocks[0])
	require.Len(t, first.BookedSlots, 1)
	assert.Equal(t, slotID, first.BookedSlots[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
