package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/mentorhub/mentor_platform/scheduling"
)

// fail maps the scheduling error taxonomy onto HTTP statuses. Store-level
// failures are logged and surfaced as 500, never dressed up as 4xx.
func fail(c *fiber.Ctx, err error) error {
	var (
		validation   *scheduling.ValidationError
		conflict     *scheduling.ConflictError
		notFound     *scheduling.NotFoundError
		unauthorized *scheduling.UnauthorizedError
	)
	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Reason})
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": conflict.Reason})
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFound.Error()})
	case errors.As(err, &unauthorized):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": unauthorized.Reason})
	}

	log.Printf("🔥 %s %s failed: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong, please try again."})
}
