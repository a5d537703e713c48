package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/mentorhub/mentor_platform/database"
	"github.com/mentorhub/mentor_platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDatabase(t *testing.T) sqlmock.Sqlmock {
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

	previous := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = previous })
	return mock
}

// nextMonday returns the upcoming Monday so requests are always in the future.
func nextMonday() time.Time {
	now := time.Now().UTC()
	days := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
}

func TestCreateAppointment(t *testing.T) {
	t.Run("rejects end before start", func(t *testing.T) {
		app := setupApp(t)
		token := signToken(t, uuid.New(), models.RoleMentee)
		start := nextMonday().Add(10 * time.Hour)

		req := jsonRequest(t, http.MethodPost, "/api/v1/appointments", token, map[string]any{
			"mentor_id": uuid.New().String(),
			"start_at":  start.Format(time.RFC3339),
			"end_at":    start.Add(-time.Hour).Format(time.RFC3339),
		})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects a start in the past", func(t *testing.T) {
		app := setupApp(t)
		token := signToken(t, uuid.New(), models.RoleMentee)
		start := time.Now().UTC().Add(-2 * time.Hour).Truncate(time.Minute)

		req := jsonRequest(t, http.MethodPost, "/api/v1/appointments", token, map[string]any{
			"mentor_id": uuid.New().String(),
			"start_at":  start.Format(time.RFC3339),
			"end_at":    start.Add(time.Hour).Format(time.RFC3339),
		})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects a malformed mentor id", func(t *testing.T) {
		app := setupApp(t)
		token := signToken(t, uuid.New(), models.RoleMentee)
		start := nextMonday().Add(9 * time.Hour)

		req := jsonRequest(t, http.MethodPost, "/api/v1/appointments", token, map[string]any{
			"mentor_id": "not-a-uuid",
			"start_at":  start.Format(time.RFC3339),
			"end_at":    start.Add(time.Hour).Format(time.RFC3339),
		})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("reserves a valid window", func(t *testing.T) {
		app := setupApp(t)
		mock := setupMockDatabase(t)
		mentorID := uuid.New()
		token := signToken(t, uuid.New(), models.RoleMentee)
		start := nextMonday().Add(9 * time.Hour) // Monday 09:00Z

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "users"(.+)FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "role"}).AddRow(mentorID.String(), models.RoleMentor))
		mock.ExpectQuery(`SELECT (.+) FROM "availability_blocks"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "mentor_id", "day_of_week", "start_minute", "end_minute", "is_active"}).
				AddRow(uuid.New().String(), mentorID.String(), 1, 540, 720, true))
		mock.ExpectQuery(`SELECT (.+) FROM "appointment_slots"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "mentor_id", "mentee_id", "start_at", "end_at", "status"}))
		mock.ExpectExec(`INSERT INTO "appointment_slots"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		req := jsonRequest(t, http.MethodPost, "/api/v1/appointments", token, map[string]any{
			"mentor_id": mentorID.String(),
			"start_at":  start.Format(time.RFC3339),
			"end_at":    start.Add(time.Hour).Format(time.RFC3339),
		})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body struct {
			Message     string                 `json:"message"`
			Appointment models.AppointmentSlot `json:"appointment"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, models.AppointmentPending, body.Appointment.Status)
		assert.Equal(t, mentorID, body.Appointment.MentorID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("requires a token", func(t *testing.T) {
		app := setupApp(t)
		start := nextMonday().Add(9 * time.Hour)

		req := jsonRequest(t, http.MethodPost, "/api/v1/appointments", "", map[string]any{
			"mentor_id": uuid.New().String(),
			"start_at":  start.Format(time.RFC3339),
			"end_at":    start.Add(time.Hour).Format(time.RFC3339),
		})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
