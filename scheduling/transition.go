package scheduling

import (
	"fmt"

	"github.com/mentorhub/mentor_platform/models"
)

type Action string

const (
	ActionAccept   Action = "accept"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

type transitionKey struct {
	status string
	action Action
}

// The whole state machine. Pairs not in this table are illegal; cancelled and
// completed are terminal.
var transitions = map[transitionKey]string{
	{models.AppointmentPending, ActionAccept}:     models.AppointmentConfirmed,
	{models.AppointmentPending, ActionCancel}:     models.AppointmentCancelled,
	{models.AppointmentConfirmed, ActionCancel}:   models.AppointmentCancelled,
	{models.AppointmentConfirmed, ActionComplete}: models.AppointmentCompleted,
}

// NextStatus resolves the status an appointment moves to for the given action.
func NextStatus(current string, action Action) (string, error) {
	next, ok := transitions[transitionKey{status: current, action: action}]
	if !ok {
		return "", &ValidationError{Reason: fmt.Sprintf("cannot %s an appointment in status %q", action, current)}
	}
	return next, nil
}
