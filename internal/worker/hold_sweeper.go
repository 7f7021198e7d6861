package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/metrics"
)

// HoldStore deletes temporary holds whose expiry is at or before now.
type HoldStore interface {
	DeleteExpiredHolds(ctx context.Context, now time.Time) (int64, error)
}

// HoldSweeper periodically removes expired holds. Reads already ignore them,
// so sweeping only keeps the table small.
type HoldSweeper struct {
	store    HoldStore
	interval time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

func NewHoldSweeper(store HoldStore, interval time.Duration, now func() time.Time, log zerolog.Logger) *HoldSweeper {
	if now == nil {
		now = time.Now
	}
	return &HoldSweeper{
		store:    store,
		interval: interval,
		now:      now,
		log:      log.With().Str("component", "hold_sweeper").Logger(),
	}
}

// Run sweeps once immediately and then every interval until ctx is done.
func (s *HoldSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.SweepOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("hold sweeper stopped")
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

func (s *HoldSweeper) SweepOnce(ctx context.Context) int64 {
	n, err := s.store.DeleteExpiredHolds(ctx, s.now())
	if err != nil {
		if ctx.Err() == nil {
			s.log.Error().Err(err).Msg("sweep expired holds")
		}
		return 0
	}

	metrics.AddHoldsExpired(n)
	if n > 0 {
		s.log.Debug().Int64("deleted", n).Msg("expired holds swept")
	}
	return n
}
