package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/appointment"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/availability"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/metrics"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
)

type PlaceHoldInput struct {
	BusinessID uint
	ServiceID  uint
	Date       string
	Time       string
}

// PlaceHold reserves a slot for a short time while the client completes the
// booking form. It runs the same admission as a booking.
type PlaceHold struct {
	repo     domain.Repository
	resolver *availability.Resolver
	ttl      time.Duration
}

func NewPlaceHold(
	repo domain.Repository,
	resolver *availability.Resolver,
	ttl time.Duration,
) *PlaceHold {
	return &PlaceHold{
		repo:     repo,
		resolver: resolver,
		ttl:      ttl,
	}
}

func (uc *PlaceHold) Execute(
	ctx context.Context,
	in PlaceHoldInput,
) (*models.TemporaryHold, error) {

	b, err := prepareBooking(ctx, uc.repo, in.BusinessID, in.ServiceID, in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	hold := &models.TemporaryHold{
		Token:      uuid.NewString(),
		BusinessID: b.business.ID,
		ServiceID:  b.service.ID,
		Date:       availability.FormatDate(b.date),
		StartTime:  availability.FormatClock(b.slot.Start),
		EndTime:    availability.FormatClock(b.slot.End),
		ExpiresAt:  uc.resolver.Now().UTC().Add(uc.ttl),
	}

	scope := domain.ReserveScope{BusinessID: b.business.ID, Date: b.date}
	err = uc.repo.Reserve(ctx, scope, func(tx domain.Tx) error {
		if err := uc.resolver.Admit(ctx, tx, availability.AdmissionQuery{
			BusinessID:        b.business.ID,
			Date:              b.date,
			Slot:              b.slot,
			MinAdvanceMinutes: b.business.MinAdvanceMinutes,
		}); err != nil {
			return err
		}
		return tx.CreateHold(ctx, hold)
	})

	metrics.IncAdmission("hold", outcome(err))
	if err != nil {
		return nil, err
	}
	return hold, nil
}

type ReleaseHold struct {
	repo domain.Repository
}

func NewReleaseHold(repo domain.Repository) *ReleaseHold {
	return &ReleaseHold{repo: repo}
}

func (uc *ReleaseHold) Execute(ctx context.Context, businessID uint, token string) error {
	if token == "" {
		return domain.ErrHoldNotFound
	}
	return uc.repo.ReleaseHold(ctx, businessID, token)
}
