package appointment

import (
	"time"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)
	ap.DecidedAt = &now
	return nil
}
