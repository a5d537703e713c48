package jobs

import (
	"log"
	"time"

	config "github.com/mentorhub/mentor_platform/configs"
	"github.com/mentorhub/mentor_platform/database"
	"github.com/mentorhub/mentor_platform/models"
)

// ExpireStalePendingAppointments cancels pending slots the mentor never
// confirmed, so an abandoned request cannot hold a window indefinitely.
func ExpireStalePendingAppointments() {
	log.Println("Running job: ExpireStalePendingAppointments...")

	expiryMinutes := config.ConfigInt("PENDING_EXPIRY_MINUTES", 30)
	cutoff := time.Now().Add(-time.Duration(expiryMinutes) * time.Minute)

	result := database.DB.Model(&models.AppointmentSlot{}).
		Where("status = ? AND created_at < ?", models.AppointmentPending, cutoff).
		Update("status", models.AppointmentCancelled)

	if result.Error != nil {
		log.Printf("Error expiring stale pending appointments: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Expired %d stale pending appointment(s)", result.RowsAffected)
	}
}
