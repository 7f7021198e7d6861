package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/appointment"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/availability"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
)

// span is the projection shared by every interval-bearing table.
type span struct {
	StartTime string
	EndTime   string
}

func toIntervals(rows []span) ([]availability.Interval, error) {
	out := make([]availability.Interval, 0, len(rows))
	for _, r := range rows {
		iv, err := availability.ParseInterval(r.StartTime, r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("stored interval %s-%s: %w", r.StartTime, r.EndTime, err)
		}
		out = append(out, iv)
	}
	return out, nil
}

// --------------------------------------------------
// Weekly schedule
// --------------------------------------------------

type ScheduleGormStore struct {
	db *gorm.DB
}

func NewScheduleGormStore(db *gorm.DB) *ScheduleGormStore {
	return &ScheduleGormStore{db: db}
}

func (s *ScheduleGormStore) WeeklyWindows(
	ctx context.Context,
	businessID uint,
	weekday time.Weekday,
) ([]availability.Interval, error) {

	var rows []span
	if err := s.db.WithContext(ctx).
		Model(&models.WeeklyHours{}).
		Select("start_time", "end_time").
		Where("business_id = ? AND weekday = ?", businessID, int(weekday)).
		Order("start_time ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	return toIntervals(rows)
}

// --------------------------------------------------
// Exceptions (blocked + occupied)
// --------------------------------------------------

// ExceptionGormStore reads the one-off data of a date. Inside a reservation
// transaction it locks the rows it reads and skips the caller's own hold.
type ExceptionGormStore struct {
	db        *gorm.DB
	now       func() time.Time
	forUpdate bool
	skipHold  string
}

func NewExceptionGormStore(db *gorm.DB, now func() time.Time) *ExceptionGormStore {
	if now == nil {
		now = time.Now
	}
	return &ExceptionGormStore{db: db, now: now}
}

func (s *ExceptionGormStore) query(ctx context.Context) *gorm.DB {
	q := s.db.WithContext(ctx)
	if s.forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

func (s *ExceptionGormStore) BlockedIntervals(
	ctx context.Context,
	businessID uint,
	date time.Time,
) ([]availability.Interval, error) {

	var rows []span
	if err := s.query(ctx).
		Model(&models.BlockedInterval{}).
		Select("start_time", "end_time").
		Where("business_id = ? AND date = ?", businessID, availability.FormatDate(date)).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	return toIntervals(rows)
}

func (s *ExceptionGormStore) OccupiedIntervals(
	ctx context.Context,
	businessID uint,
	date time.Time,
) ([]availability.Interval, error) {

	day := availability.FormatDate(date)

	var booked []span
	if err := s.query(ctx).
		Model(&models.Appointment{}).
		Select("start_time", "end_time").
		Where("business_id = ? AND date = ? AND status IN ?", businessID, day, domain.LiveStatuses).
		Scan(&booked).Error; err != nil {
		return nil, err
	}

	holds := s.query(ctx).
		Model(&models.TemporaryHold{}).
		Select("start_time", "end_time").
		Where("business_id = ? AND date = ? AND expires_at > ?", businessID, day, s.now().UTC())
	if s.skipHold != "" {
		holds = holds.Where("token <> ?", s.skipHold)
	}

	var held []span
	if err := holds.Scan(&held).Error; err != nil {
		return nil, err
	}

	return toIntervals(append(booked, held...))
}

var (
	_ availability.ScheduleStore  = (*ScheduleGormStore)(nil)
	_ availability.ExceptionStore = (*ExceptionGormStore)(nil)
)
