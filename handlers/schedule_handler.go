package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mentorhub/mentor_platform/database"
	"github.com/mentorhub/mentor_platform/models"
	"github.com/mentorhub/mentor_platform/scheduling"
)

// GetMentorSchedule returns the day's availability blocks alongside the
// already-booked slots so the client can render "available minus booked".
func GetMentorSchedule(c *fiber.Ctx) error {
	mentorID, err := uuid.Parse(c.Params("mentorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid mentor id"})
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A date query parameter is required, expected YYYY-MM-DD"})
	}

	var mentor models.User
	if err := database.DB.First(&mentor, "id = ? AND role = ?", mentorID, models.RoleMentor).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor not found"})
	}

	schedule, err := scheduling.Project(database.DB, mentorID, date)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(schedule)
}
