package appointment

import (
	"context"
	"time"

	domain "github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/appointment"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/availability"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/httperr"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
)

// booking is a validated candidate slot for one service.
type booking struct {
	business *models.Business
	service  *models.Service
	date     time.Time
	slot     availability.Interval
}

// loadBookable returns the business and an active service of it.
func loadBookable(
	ctx context.Context,
	repo domain.Repository,
	businessID uint,
	serviceID uint,
) (*models.Business, *models.Service, error) {

	business, err := repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, nil, err
	}

	service, err := repo.GetService(ctx, businessID, serviceID)
	if err != nil {
		return nil, nil, err
	}
	if !service.Active {
		return nil, nil, domain.ErrServiceNotFound
	}
	if service.DurationMinutes <= 0 {
		return nil, nil, availability.ErrInvalidDuration
	}

	return business, service, nil
}

func prepareBooking(
	ctx context.Context,
	repo domain.Repository,
	businessID uint,
	serviceID uint,
	date string,
	clock string,
) (*booking, error) {

	business, service, err := loadBookable(ctx, repo, businessID, serviceID)
	if err != nil {
		return nil, err
	}

	day, err := availability.ParseDate(date)
	if err != nil {
		return nil, err
	}

	start, err := availability.ParseClock(clock)
	if err != nil {
		return nil, err
	}

	end := start + service.DurationMinutes
	if end > availability.MinutesPerDay {
		return nil, availability.ErrOutsideSchedule
	}

	slot, err := availability.NewInterval(start, end)
	if err != nil {
		return nil, err
	}

	return &booking{
		business: business,
		service:  service,
		date:     day,
		slot:     slot,
	}, nil
}

// outcome labels an admission result for metrics.
func outcome(err error) string {
	if err == nil {
		return "admitted"
	}
	if code := httperr.CodeOf(err); code != "" {
		return code
	}
	return "error"
}
