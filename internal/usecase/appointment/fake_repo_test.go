package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/appointment"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/availability"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(s string) *testClock {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return &testClock{now: t}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// memRepo is an in-memory Repository. Reserve holds a per-repo lock for the
// whole callback, standing in for the advisory lock.
type memRepo struct {
	reserveMu sync.Mutex

	mu           sync.Mutex
	clock        *testClock
	businesses   map[uint]*models.Business
	services     map[uint]*models.Service
	weekly       map[time.Weekday][]availability.Interval
	blocked      map[string][]availability.Interval
	appointments []*models.Appointment
	holds        []*models.TemporaryHold
	clients      map[string]*models.Client
	nextID       uint
}

func newMemRepo(clock *testClock) *memRepo {
	return &memRepo{
		clock:      clock,
		businesses: map[uint]*models.Business{},
		services:   map[uint]*models.Service{},
		weekly:     map[time.Weekday][]availability.Interval{},
		blocked:    map[string][]availability.Interval{},
		clients:    map[string]*models.Client{},
	}
}

func (r *memRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *memRepo) GetBusinessByID(_ context.Context, id uint) (*models.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.businesses[id]
	if !ok {
		return nil, domain.ErrBusinessNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memRepo) GetBusinessBySlug(_ context.Context, slug string) (*models.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.businesses {
		if b.Slug == slug {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.ErrBusinessNotFound
}

func (r *memRepo) GetService(_ context.Context, businessID, serviceID uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[serviceID]
	if !ok || s.BusinessID != businessID {
		return nil, domain.ErrServiceNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memRepo) WeeklyWindows(_ context.Context, _ uint, wd time.Weekday) ([]availability.Interval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.weekly[wd], nil
}

func (r *memRepo) BlockedIntervals(_ context.Context, _ uint, date time.Time) ([]availability.Interval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blocked[availability.FormatDate(date)], nil
}

func (r *memRepo) OccupiedIntervals(ctx context.Context, businessID uint, date time.Time) ([]availability.Interval, error) {
	return r.occupied(businessID, date, "")
}

func (r *memRepo) occupied(businessID uint, date time.Time, skipHold string) ([]availability.Interval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := availability.FormatDate(date)
	var out []availability.Interval
	for _, ap := range r.appointments {
		if ap.BusinessID != businessID || ap.Date != day || !domain.Status(ap.Status).Occupies() {
			continue
		}
		iv, err := availability.ParseInterval(ap.StartTime, ap.EndTime)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	now := r.clock.Now().UTC()
	for _, h := range r.holds {
		if h.BusinessID != businessID || h.Date != day || !h.ExpiresAt.After(now) || h.Token == skipHold {
			continue
		}
		iv, err := availability.ParseInterval(h.StartTime, h.EndTime)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, nil
}

func (r *memRepo) Reserve(ctx context.Context, scope domain.ReserveScope, fn func(tx domain.Tx) error) error {
	r.reserveMu.Lock()
	defer r.reserveMu.Unlock()

	tx := &memTx{repo: r, skipHold: scope.HoldToken}
	if err := fn(tx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range tx.clients {
		r.clients[c.Phone] = c
	}
	for _, ap := range tx.appointments {
		cp := *ap
		r.appointments = append(r.appointments, &cp)
	}
	r.holds = append(r.holds, tx.holds...)
	for _, token := range tx.released {
		r.deleteHold(token)
	}
	return nil
}

func (r *memRepo) deleteHold(token string) bool {
	for i, h := range r.holds {
		if h.Token == token {
			r.holds = append(r.holds[:i], r.holds[i+1:]...)
			return true
		}
	}
	return false
}

func (r *memRepo) GetAppointment(_ context.Context, businessID, appointmentID uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range r.appointments {
		if ap.ID == appointmentID && ap.BusinessID == businessID {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, domain.ErrAppointmentNotFound
}

func (r *memRepo) UpdateStatus(_ context.Context, ap *models.Appointment, from domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.appointments {
		if stored.ID == ap.ID && stored.BusinessID == ap.BusinessID && stored.Status == string(from) {
			stored.Status = ap.Status
			stored.DecidedAt = ap.DecidedAt
			return nil
		}
	}
	return domain.ErrInvalidState
}

func (r *memRepo) ListAppointmentsForPeriod(_ context.Context, businessID uint, from, to time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lo, hi := availability.FormatDate(from), availability.FormatDate(to)
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BusinessID == businessID && ap.Date >= lo && ap.Date < hi {
			cp := *ap
			cp.Service = *r.services[ap.ServiceID]
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (r *memRepo) ReleaseHold(_ context.Context, _ uint, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.deleteHold(token) {
		return domain.ErrHoldNotFound
	}
	return nil
}

func (r *memRepo) DeleteExpiredHolds(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.holds[:0]
	var n int64
	for _, h := range r.holds {
		if h.ExpiresAt.After(now) {
			kept = append(kept, h)
			continue
		}
		n++
	}
	r.holds = kept
	return n, nil
}

// memTx buffers writes until Reserve commits.
type memTx struct {
	repo         *memRepo
	skipHold     string
	clients      []*models.Client
	appointments []*models.Appointment
	holds        []*models.TemporaryHold
	released     []string
}

func (t *memTx) WeeklyWindows(ctx context.Context, businessID uint, wd time.Weekday) ([]availability.Interval, error) {
	return t.repo.WeeklyWindows(ctx, businessID, wd)
}

func (t *memTx) BlockedIntervals(ctx context.Context, businessID uint, date time.Time) ([]availability.Interval, error) {
	return t.repo.BlockedIntervals(ctx, businessID, date)
}

func (t *memTx) OccupiedIntervals(_ context.Context, businessID uint, date time.Time) ([]availability.Interval, error) {
	return t.repo.occupied(businessID, date, t.skipHold)
}

func (t *memTx) GetOrCreateClient(_ context.Context, businessID uint, name, phone string) (*models.Client, error) {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	if c, ok := t.repo.clients[phone]; ok {
		return c, nil
	}
	c := &models.Client{ID: t.repo.id(), BusinessID: businessID, Name: name, Phone: phone}
	t.clients = append(t.clients, c)
	return c, nil
}

func (t *memTx) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	for _, other := range t.repo.appointments {
		if other.BusinessID == ap.BusinessID && other.Date == ap.Date && other.StartTime == ap.StartTime &&
			domain.Status(other.Status).Occupies() {
			return availability.ErrSlotNoLongerAvailable
		}
	}
	ap.ID = t.repo.id()
	t.appointments = append(t.appointments, ap)
	return nil
}

func (t *memTx) CreateHold(_ context.Context, h *models.TemporaryHold) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	h.ID = t.repo.id()
	t.holds = append(t.holds, h)
	return nil
}

func (t *memTx) ReleaseHold(_ context.Context, _ uint, token string) error {
	t.released = append(t.released, token)
	return nil
}

var (
	_ domain.Repository = (*memRepo)(nil)
	_ domain.Tx         = (*memTx)(nil)
)
