package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mentorhub/mentor_platform/database"
	"github.com/mentorhub/mentor_platform/models"
	"github.com/mentorhub/mentor_platform/scheduling"
)

type AvailabilityBlockRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

type ReplaceAvailabilitiesRequest struct {
	Blocks []AvailabilityBlockRequest `json:"blocks" validate:"dive"`
}

// ReplaceMyAvailabilities is a wholesale replace: the submitted set
// supersedes every previous block for the mentor in one atomic step.
func ReplaceMyAvailabilities(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	var req ReplaceAvailabilitiesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	blocks := make([]models.AvailabilityBlock, 0, len(req.Blocks))
	for _, b := range req.Blocks {
		startMinute, err := scheduling.ParseClock(b.StartTime)
		if err != nil {
			return fail(c, err)
		}
		endMinute, err := scheduling.ParseClock(b.EndTime)
		if err != nil {
			return fail(c, err)
		}
		isActive := true
		if b.IsActive != nil {
			isActive = *b.IsActive
		}
		blocks = append(blocks, models.AvailabilityBlock{
			DayOfWeek:   b.DayOfWeek,
			StartMinute: startMinute,
			EndMinute:   endMinute,
			IsActive:    isActive,
		})
	}

	if err := scheduling.ReplaceBlocks(database.DB, mentorID, blocks); err != nil {
		return fail(c, err)
	}

	views := make([]scheduling.BlockView, 0, len(blocks))
	for _, b := range blocks {
		views = append(views, scheduling.ViewOf(b))
	}
	return c.JSON(fiber.Map{
		"message":        "Availability updated successfully",
		"availabilities": views,
	})
}

func GetMentorAvailabilities(c *fiber.Ctx) error {
	mentorID, err := uuid.Parse(c.Params("mentorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid mentor id"})
	}

	var mentor models.User
	if err := database.DB.First(&mentor, "id = ? AND role = ?", mentorID, models.RoleMentor).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor not found"})
	}

	blocks, err := scheduling.GetBlocks(database.DB, mentorID)
	if err != nil {
		return fail(c, err)
	}

	views := make([]scheduling.BlockView, 0, len(blocks))
	for _, b := range blocks {
		views = append(views, scheduling.ViewOf(b))
	}
	return c.JSON(views)
}
