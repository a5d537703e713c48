package meetings

import (
	"fmt"

	"github.com/google/uuid"
	config "github.com/mentorhub/mentor_platform/configs"
	"github.com/mentorhub/mentor_platform/utils"
)

// CreateMeetingLink provisions a video room for a confirmed appointment.
// Rooms are namespaced by appointment so a leaked link is single-purpose.
func CreateMeetingLink(appointmentID uuid.UUID) (string, error) {
	base := config.Config("MEETING_BASE_URL")
	if base == "" {
		base = "https://meet.jit.si"
	}

	slug, err := utils.GenerateRoomSlug()
	if err != nil {
		return "", fmt.Errorf("failed to generate room slug: %v", err)
	}

	return fmt.Sprintf("%s/mentorhub-%s-%s", base, appointmentID.String()[:8], slug), nil
}
