package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	config "github.com/mentorhub/mentor_platform/configs"
	"github.com/mentorhub/mentor_platform/database"
	"github.com/mentorhub/mentor_platform/meetings"
	"github.com/mentorhub/mentor_platform/models"
	"github.com/mentorhub/mentor_platform/notifications"
	"github.com/mentorhub/mentor_platform/scheduling"
)

type CreateAppointmentRequest struct {
	MentorID string `json:"mentor_id" validate:"required,uuid"`
	StartAt  string `json:"start_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndAt    string `json:"end_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

func maxSessionLength() time.Duration {
	return time.Duration(config.ConfigInt("MAX_SESSION_MINUTES", 180)) * time.Minute
}

func CreateAppointment(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	menteeID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	mentorID, _ := uuid.Parse(req.MentorID)
	startAt, _ := time.Parse(time.RFC3339, req.StartAt)
	endAt, _ := time.Parse(time.RFC3339, req.EndAt)

	slot, err := scheduling.Reserve(database.DB, scheduling.BookingRequest{
		MentorID: mentorID,
		MenteeID: menteeID,
		StartAt:  startAt,
		EndAt:    endAt,
	}, time.Now().UTC(), maxSessionLength())
	if err != nil {
		return fail(c, err)
	}

	go func() {
		var mentor, mentee models.User
		if database.DB.First(&mentor, "id = ?", slot.MentorID).Error != nil ||
			database.DB.First(&mentee, "id = ?", slot.MenteeID).Error != nil {
			return
		}
		when := slot.StartAt.Format("Mon, 02 Jan 2006 15:04 MST")
		notifications.SendEmail(mentor.FullName, mentor.Email, "New Session Request",
			fmt.Sprintf("<h1>New Session Request</h1><p>%s requested a session on %s. Accept it from your dashboard.</p>", mentee.FullName, when))
		notifications.SendEmail(mentee.FullName, mentee.Email, "Session Requested",
			fmt.Sprintf("<h1>Request Sent</h1><p>Your session request for %s is pending the mentor's confirmation.</p>", when))
	}()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Session requested successfully. You will be notified when the mentor confirms.",
		"appointment": slot,
	})
}

func listAppointments(c *fiber.Ctx, column string, userID uuid.UUID) error {
	query := database.DB.
		Preload("Mentor").
		Preload("Mentee").
		Where(column+" = ? AND status IN ?", userID,
			[]string{models.AppointmentPending, models.AppointmentConfirmed, models.AppointmentCompleted}).
		Order("start_at asc")

	if date := c.Query("date"); date != "" {
		dayStart, err := time.Parse("2006-01-02", date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
		}
		query = query.Where("start_at >= ? AND start_at < ?", dayStart, dayStart.Add(24*time.Hour))
	}

	var slots []models.AppointmentSlot
	if err := query.Find(&slots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve appointments"})
	}
	return c.JSON(slots)
}

func GetMyMentorAppointments(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))
	return listAppointments(c, "mentor_id", mentorID)
}

func GetMyMenteeAppointments(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	menteeID, _ := uuid.Parse(claims["user_id"].(string))
	return listAppointments(c, "mentee_id", menteeID)
}

func transitionAppointment(c *fiber.Ctx, action scheduling.Action) (models.AppointmentSlot, error) {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	actorID, _ := uuid.Parse(claims["user_id"].(string))

	slotID, err := uuid.Parse(c.Params("appointmentId"))
	if err != nil {
		return models.AppointmentSlot{}, &scheduling.ValidationError{Reason: "invalid appointment id"}
	}

	return scheduling.Transition(database.DB, slotID, actorID, action, time.Now().UTC())
}

// AcceptAppointment confirms a pending slot and provisions the meeting room.
func AcceptAppointment(c *fiber.Ctx) error {
	slot, err := transitionAppointment(c, scheduling.ActionAccept)
	if err != nil {
		return fail(c, err)
	}

	link, err := meetings.CreateMeetingLink(slot.ID)
	if err == nil {
		slot.MeetingLink = &link
		database.DB.Model(&models.AppointmentSlot{}).Where("id = ?", slot.ID).Update("meeting_link", link)
	}

	go func() {
		var mentee models.User
		if database.DB.First(&mentee, "id = ?", slot.MenteeID).Error != nil {
			return
		}
		body := "<h1>Session Confirmed</h1><p>Your mentor confirmed the session.</p>"
		if slot.MeetingLink != nil {
			body += fmt.Sprintf("<p><b>Meeting Link:</b> <a href='%s'>Join Session</a></p>", *slot.MeetingLink)
		}
		notifications.SendEmail(mentee.FullName, mentee.Email, "Your Session is Confirmed!", body)
	}()

	return c.JSON(fiber.Map{"message": "Appointment confirmed", "appointment": slot})
}

func CancelAppointment(c *fiber.Ctx) error {
	slot, err := transitionAppointment(c, scheduling.ActionCancel)
	if err != nil {
		return fail(c, err)
	}

	go func() {
		var mentor, mentee models.User
		if database.DB.First(&mentor, "id = ?", slot.MentorID).Error != nil ||
			database.DB.First(&mentee, "id = ?", slot.MenteeID).Error != nil {
			return
		}
		body := fmt.Sprintf("<h1>Session Cancelled</h1><p>The session on %s has been cancelled. The window is open for booking again.</p>",
			slot.StartAt.Format("Mon, 02 Jan 2006 15:04 MST"))
		notifications.SendEmail(mentor.FullName, mentor.Email, "Session Cancelled", body)
		notifications.SendEmail(mentee.FullName, mentee.Email, "Session Cancelled", body)
	}()

	return c.JSON(fiber.Map{"message": "Appointment cancelled", "appointment": slot})
}

func CompleteAppointment(c *fiber.Ctx) error {
	slot, err := transitionAppointment(c, scheduling.ActionComplete)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Appointment marked as completed", "appointment": slot})
}
