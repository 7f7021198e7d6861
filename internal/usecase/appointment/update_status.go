package appointment

import (
	"context"
	"time"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/audit"
	domain "github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/appointment"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/metrics"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
)

type UpdateStatusInput struct {
	BusinessID    uint
	UserID        uint
	AppointmentID uint
	Status        string
}

// UpdateStatus applies a staff decision. Rejecting frees the slot for new
// bookings right away.
type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	now func() time.Time,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: audit,
		now:   now,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.BusinessID, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	from := domain.Status(ap.Status)
	if err := domain.Transition(ap, to, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, ap, from); err != nil {
		return nil, err
	}

	metrics.IncStatusDecision(string(to))

	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		UserID:     &in.UserID,
		Action:     "appointment_" + string(to),
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata:   map[string]string{"from": string(from)},
	})

	return ap, nil
}
