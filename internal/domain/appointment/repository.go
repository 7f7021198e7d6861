package appointment

import (
	"context"
	"time"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/availability"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/httperr"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
)

var (
	ErrBusinessNotFound    = httperr.ErrBusiness("business_not_found")
	ErrServiceNotFound     = httperr.ErrBusiness("service_not_found")
	ErrAppointmentNotFound = httperr.ErrBusiness("appointment_not_found")
	ErrHoldNotFound        = httperr.ErrBusiness("hold_not_found")
)

// ReserveScope identifies what a reservation transaction serializes on.
type ReserveScope struct {
	BusinessID uint
	Date       time.Time
	// HoldToken, when set, excludes the caller's own hold from occupancy.
	HoldToken string
}

// Tx is the view of a single write transaction opened by Reserve. Reads
// observe every booking committed before the transaction took its lock.
type Tx interface {
	availability.Snapshot

	GetOrCreateClient(ctx context.Context, businessID uint, name, phone string) (*models.Client, error)
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	CreateHold(ctx context.Context, h *models.TemporaryHold) error
	ReleaseHold(ctx context.Context, businessID uint, token string) error
}

type Repository interface {
	// -------- Business --------
	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	GetBusinessBySlug(
		ctx context.Context,
		slug string,
	) (*models.Business, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		businessID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Reservation --------

	// Reserve runs fn in one write transaction. Concurrent calls for the same
	// business and date are serialized; fn returning an error rolls back.
	Reserve(
		ctx context.Context,
		scope ReserveScope,
		fn func(tx Tx) error,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		businessID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	// UpdateStatus persists ap.Status and ap.DecidedAt only if the stored
	// status is still from.
	UpdateStatus(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) error

	// -------- Listing --------

	// ListAppointmentsForPeriod returns appointments with from <= date < to,
	// ordered by date and start.
	ListAppointmentsForPeriod(
		ctx context.Context,
		businessID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	// -------- Holds --------
	ReleaseHold(
		ctx context.Context,
		businessID uint,
		token string,
	) error

	DeleteExpiredHolds(
		ctx context.Context,
		now time.Time,
	) (int64, error)
}
