package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mentorhub/mentor_platform/handlers"
	"github.com/mentorhub/mentor_platform/middleware"
)

func MentorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Own-resource routes are registered before the :mentorId ones.
	api.Patch("/mentors/me/availabilities", middleware.Protected(), middleware.MentorRequired(), handlers.ReplaceMyAvailabilities)
	api.Get("/mentors/me/appointments", middleware.Protected(), middleware.MentorRequired(), handlers.GetMyMentorAppointments)

	api.Get("/mentors", handlers.ListMentors)
	api.Get("/mentors/:mentorId", handlers.GetMentorProfile)
	api.Get("/mentors/:mentorId/availabilities", handlers.GetMentorAvailabilities)
	api.Get("/mentors/:mentorId/schedules", handlers.GetMentorSchedule)

	mentor := api.Group("/mentor", middleware.Protected())
	mentor.Post("/apply", handlers.ApplyToBeAMentor)

	profile := mentor.Group("/profile", middleware.MentorRequired())
	profile.Get("/me", handlers.GetMyMentorProfile)
	profile.Put("/me", handlers.UpdateMyMentorProfile)
}
