package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mentorhub/mentor_platform/handlers"
	"github.com/mentorhub/mentor_platform/middleware"
)

func AppointmentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	appointments := api.Group("/appointments", middleware.Protected())
	appointments.Post("", handlers.CreateAppointment)
	appointments.Post("/:appointmentId/accept", handlers.AcceptAppointment)
	appointments.Post("/:appointmentId/cancel", handlers.CancelAppointment)
	appointments.Post("/:appointmentId/complete", handlers.CompleteAppointment)

	api.Get("/mentees/me/appointments", middleware.Protected(), handlers.GetMyMenteeAppointments)
}
