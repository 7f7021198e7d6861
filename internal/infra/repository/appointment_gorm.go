package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/appointment"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/availability"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/httperr"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
)

type AppointmentGormRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAppointmentGormRepository(db *gorm.DB, now func() time.Time) *AppointmentGormRepository {
	if now == nil {
		now = time.Now
	}
	return &AppointmentGormRepository{db: db, now: now}
}

func notFound(err error, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var business models.Business
	if err := r.db.WithContext(ctx).First(&business, id).Error; err != nil {
		return nil, notFound(err, domain.ErrBusinessNotFound)
	}
	return &business, nil
}

func (r *AppointmentGormRepository) GetBusinessBySlug(
	ctx context.Context,
	slug string,
) (*models.Business, error) {

	var business models.Business
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&business).Error; err != nil {
		return nil, notFound(err, domain.ErrBusinessNotFound)
	}
	return &business, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	businessID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&service).Error; err != nil {
		return nil, notFound(err, domain.ErrServiceNotFound)
	}
	return &service, nil
}

// --------------------------------------------------
// Reservation
// --------------------------------------------------

func (r *AppointmentGormRepository) Reserve(
	ctx context.Context,
	scope domain.ReserveScope,
	fn func(tx domain.Tx) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serializes writers of the same business day until commit. Other
		// dialects rely on their own write locking and the unique index.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec(
				"SELECT pg_advisory_xact_lock(?, ?)",
				int32(scope.BusinessID),
				dayKey(scope.Date),
			).Error; err != nil {
				return fmt.Errorf("advisory lock: %w", err)
			}
		}

		return fn(&gormTx{
			db:                tx,
			ScheduleGormStore: NewScheduleGormStore(tx),
			ExceptionGormStore: &ExceptionGormStore{
				db:        tx,
				now:       r.now,
				forUpdate: true,
				skipHold:  scope.HoldToken,
			},
		})
	})
}

func dayKey(d time.Time) int32 {
	return int32(d.Year()*10000 + int(d.Month())*100 + d.Day())
}

type gormTx struct {
	*ScheduleGormStore
	*ExceptionGormStore
	db *gorm.DB
}

func (t *gormTx) GetOrCreateClient(
	ctx context.Context,
	businessID uint,
	name string,
	phone string,
) (*models.Client, error) {

	var client models.Client
	err := t.db.WithContext(ctx).
		Where("business_id = ? AND phone = ?", businessID, phone).
		First(&client).Error

	if err == nil {
		if client.Name != name && name != "" {
			client.Name = name
			if err := t.db.WithContext(ctx).Model(&client).Update("name", name).Error; err != nil {
				return nil, err
			}
		}
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		BusinessID: businessID,
		Name:       name,
		Phone:      phone,
	}

	if err := t.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func (t *gormTx) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if err := t.db.WithContext(ctx).Create(ap).Error; err != nil {
		if httperr.IsExclusionConflict(err) {
			return availability.ErrSlotNoLongerAvailable
		}
		return err
	}
	return nil
}

func (t *gormTx) CreateHold(
	ctx context.Context,
	h *models.TemporaryHold,
) error {
	return t.db.WithContext(ctx).Create(h).Error
}

func (t *gormTx) ReleaseHold(
	ctx context.Context,
	businessID uint,
	token string,
) error {
	return t.db.WithContext(ctx).
		Where("business_id = ? AND token = ?", businessID, token).
		Delete(&models.TemporaryHold{}).Error
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	businessID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("id = ? AND business_id = ?", appointmentID, businessID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, domain.ErrAppointmentNotFound)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND business_id = ? AND status = ?", ap.ID, ap.BusinessID, string(from)).
		Updates(map[string]any{
			"status":     ap.Status,
			"decided_at": ap.DecidedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvalidState
	}
	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	businessID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"business_id = ? AND date >= ? AND date < ?",
			businessID,
			availability.FormatDate(from),
			availability.FormatDate(to),
		).
		Order("date ASC, start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Holds
// --------------------------------------------------

func (r *AppointmentGormRepository) ReleaseHold(
	ctx context.Context,
	businessID uint,
	token string,
) error {

	res := r.db.WithContext(ctx).
		Where("business_id = ? AND token = ?", businessID, token).
		Delete(&models.TemporaryHold{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrHoldNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteExpiredHolds(
	ctx context.Context,
	now time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", now.UTC()).
		Delete(&models.TemporaryHold{})
	return res.RowsAffected, res.Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
