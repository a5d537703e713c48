package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/mentorhub/mentor_platform/database"
	"github.com/mentorhub/mentor_platform/models"
	"github.com/mentorhub/mentor_platform/notifications"
)

func SendSessionReminders() {
	log.Println("Running job: SendSessionReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcoming []models.AppointmentSlot
	err := database.DB.
		Preload("Mentor").
		Preload("Mentee").
		Where("status = ? AND start_at BETWEEN ? AND ?", models.AppointmentConfirmed, lowerBound, upperBound).
		Find(&upcoming).Error
	if err != nil {
		log.Printf("Error checking for upcoming sessions: %v", err)
		return
	}

	for _, slot := range upcoming {
		log.Printf("Sending reminder for appointment ID: %s", slot.ID)

		emailSubject := "Reminder: Your Session Starts in 1 Hour!"
		emailBody := fmt.Sprintf(
			"<h1>Session Reminder</h1><p>Hi there,</p><p>Your session is scheduled to start in one hour at %s.</p>",
			slot.StartAt.Format(time.Kitchen),
		)
		if slot.MeetingLink != nil {
			emailBody += fmt.Sprintf("<p><b>Meeting Link:</b> <a href='%s'>Join Session</a></p>", *slot.MeetingLink)
		}

		go notifications.SendEmail(slot.Mentee.FullName, slot.Mentee.Email, emailSubject, emailBody)
		go notifications.SendEmail(slot.Mentor.FullName, slot.Mentor.Email, emailSubject, emailBody)
	}
}
