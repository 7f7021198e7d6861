package appointment

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/audit"
	domain "github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/appointment"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/availability"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/metrics"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BusinessID uint
	ServiceID  uint

	Date string
	Time string

	ClientName  string
	ClientPhone string
	Notes       string

	// HoldToken releases the caller's own temporary hold on success.
	HoldToken string

	// StaffID is set for bookings made from the dashboard. They skip the
	// business minimum notice and are accepted on creation.
	StaffID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	resolver *availability.Resolver
	audit    *audit.Dispatcher
	log      zerolog.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	resolver *availability.Resolver,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		resolver: resolver,
		audit:    audit,
		log:      log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Client data
	// --------------------------------------------------
	name, err := validators.NormalizeName(in.ClientName)
	if err != nil {
		return nil, err
	}
	phone, err := validators.NormalizePhone(in.ClientPhone)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Business, service and candidate slot
	// --------------------------------------------------
	b, err := prepareBooking(ctx, uc.repo, in.BusinessID, in.ServiceID, in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	byStaff := in.StaffID != nil
	minAdvance := b.business.MinAdvanceMinutes
	if byStaff {
		minAdvance = 0
	}

	ap := &models.Appointment{
		BusinessID:  b.business.ID,
		ServiceID:   b.service.ID,
		ClientName:  name,
		ClientPhone: phone,
		Date:        availability.FormatDate(b.date),
		StartTime:   availability.FormatClock(b.slot.Start),
		EndTime:     availability.FormatClock(b.slot.End),
		Status:      string(domain.InitialStatus(byStaff)),
		Notes:       in.Notes,
		CreatedBy:   in.StaffID,
	}

	// --------------------------------------------------
	// 3. Admission + insert in one transaction
	// --------------------------------------------------
	scope := domain.ReserveScope{
		BusinessID: b.business.ID,
		Date:       b.date,
		HoldToken:  in.HoldToken,
	}

	err = uc.repo.Reserve(ctx, scope, func(tx domain.Tx) error {
		if err := uc.resolver.Admit(ctx, tx, availability.AdmissionQuery{
			BusinessID:        b.business.ID,
			Date:              b.date,
			Slot:              b.slot,
			MinAdvanceMinutes: minAdvance,
		}); err != nil {
			return err
		}

		client, err := tx.GetOrCreateClient(ctx, b.business.ID, name, phone)
		if err != nil {
			return err
		}
		ap.ClientID = &client.ID

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		if in.HoldToken != "" {
			return tx.ReleaseHold(ctx, b.business.ID, in.HoldToken)
		}
		return nil
	})

	metrics.IncAdmission("appointment", outcome(err))
	if err != nil {
		if errors.Is(err, availability.ErrSlotNoLongerAvailable) {
			uc.log.Info().
				Uint("business_id", b.business.ID).
				Str("date", ap.Date).
				Str("slot", b.slot.String()).
				Msg("booking lost the race for its slot")
		}
		return nil, err
	}

	ap.Service = *b.service

	// --------------------------------------------------
	// 4. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BusinessID: b.business.ID,
		UserID:     in.StaffID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]string{
			"date":   ap.Date,
			"start":  ap.StartTime,
			"status": ap.Status,
		},
	})

	return ap, nil
}
