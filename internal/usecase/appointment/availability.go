package appointment

import (
	"context"
	"time"

	domain "github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/appointment"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/availability"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/metrics"
)

// ======================================================
// AVAILABLE DAYS
// ======================================================

type ListAvailableDaysInput struct {
	BusinessID uint
	ServiceID  uint
	Year       int
	Month      int
}

type ListAvailableDays struct {
	repo     domain.Repository
	resolver *availability.Resolver
}

func NewListAvailableDays(
	repo domain.Repository,
	resolver *availability.Resolver,
) *ListAvailableDays {
	return &ListAvailableDays{
		repo:     repo,
		resolver: resolver,
	}
}

// Execute returns the bookable days of the month as sorted YYYY-MM-DD strings.
func (uc *ListAvailableDays) Execute(
	ctx context.Context,
	in ListAvailableDaysInput,
) ([]string, error) {

	defer metrics.ObserveAvailability("days", time.Now())

	business, service, err := loadBookable(ctx, uc.repo, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	days, err := uc.resolver.AvailableDays(ctx, availability.DayQuery{
		BusinessID:        business.ID,
		Year:              in.Year,
		Month:             time.Month(in.Month),
		DurationMinutes:   service.DurationMinutes,
		MinAdvanceMinutes: business.MinAdvanceMinutes,
	})
	if err != nil {
		return nil, err
	}

	return days.Sorted(), nil
}

// ======================================================
// SLOTS
// ======================================================

type ListSlotsInput struct {
	BusinessID uint
	ServiceID  uint
	Date       string
}

type ListSlots struct {
	repo     domain.Repository
	resolver *availability.Resolver
}

func NewListSlots(
	repo domain.Repository,
	resolver *availability.Resolver,
) *ListSlots {
	return &ListSlots{
		repo:     repo,
		resolver: resolver,
	}
}

func (uc *ListSlots) Execute(
	ctx context.Context,
	in ListSlotsInput,
) ([]availability.Slot, error) {

	defer metrics.ObserveAvailability("slots", time.Now())

	date, err := availability.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	business, service, err := loadBookable(ctx, uc.repo, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	return uc.resolver.Slots(ctx, availability.SlotQuery{
		BusinessID:        business.ID,
		Date:              date,
		DurationMinutes:   service.DurationMinutes,
		StepMinutes:       business.SlotStepMinutes,
		MinAdvanceMinutes: business.MinAdvanceMinutes,
	})
}
