package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mentorhub/mentor_platform/database"
	"github.com/mentorhub/mentor_platform/models"
	"gorm.io/gorm"
)

type MentorApplicationRequest struct {
	Headline    string  `json:"headline" validate:"required"`
	Bio         string  `json:"bio" validate:"required"`
	SessionRate float64 `json:"session_rate" validate:"gte=0"`
}

func ApplyToBeAMentor(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req MentorApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existingMentor models.Mentor
	err := database.DB.Where("user_id = ?", userID).First(&existingMentor).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You already have a mentor profile."})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var newMentor models.Mentor
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		newMentor = models.Mentor{
			UserID:      userID,
			Headline:    &req.Headline,
			Bio:         &req.Bio,
			SessionRate: req.SessionRate,
		}
		if err := tx.Create(&newMentor).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Update("role", models.RoleMentor).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create mentor profile"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Mentor profile created. Log in again to refresh your role.",
		"mentor":  newMentor,
	})
}

func ListMentors(c *fiber.Ctx) error {
	var mentors []models.Mentor
	query := database.DB.Preload("User").Where("status = ?", "active")

	if maxRate := c.Query("max_rate"); maxRate != "" {
		query = query.Where("session_rate <= ?", maxRate)
	}

	if err := query.Find(&mentors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve mentors"})
	}

	return c.JSON(mentors)
}

func GetMentorProfile(c *fiber.Ctx) error {
	mentorID := c.Params("mentorId")

	var mentor models.Mentor
	if err := database.DB.Preload("User").First(&mentor, "user_id = ? AND status = ?", mentorID, "active").Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Active mentor not found"})
	}

	return c.JSON(mentor)
}

func GetMyMentorProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	var mentor models.Mentor
	if err := database.DB.Preload("User").First(&mentor, "user_id = ?", mentorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor profile not found"})
	}
	return c.JSON(mentor)
}

func UpdateMyMentorProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	var req MentorApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var mentor models.Mentor
	if err := database.DB.First(&mentor, "user_id = ?", mentorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor profile not found"})
	}

	mentor.Headline = &req.Headline
	mentor.Bio = &req.Bio
	mentor.SessionRate = req.SessionRate
	database.DB.Save(&mentor)

	return c.JSON(mentor)
}
