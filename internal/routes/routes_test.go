package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/audit"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/config"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/db/dbtest"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/middleware"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Monday 2025-06-02, 08:00 business time.
var now = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

type app struct {
	t     *testing.T
	r     *gin.Engine
	db    *gorm.DB
	token string
}

func newApp(t *testing.T, limiter middleware.Limiter) *app {
	t.Helper()

	gdb := dbtest.Open(t)

	cfg := &config.Config{JWTSecret: "secreto", CORSOrigins: []string{"*"}}
	cfg.Booking.HorizonMonths = 2
	cfg.Booking.HoldTTL = 5 * time.Minute

	dispatcher := audit.NewDispatcher(audit.New(gdb), zerolog.Nop())
	t.Cleanup(dispatcher.Close)

	r := gin.New()
	RegisterRoutes(r, gdb, cfg, Deps{
		Log:     zerolog.Nop(),
		Audit:   dispatcher,
		Limiter: limiter,
		Clock:   func() time.Time { return now },
	})

	return &app{t: t, r: r, db: gdb}
}

func (a *app) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" && strings.HasPrefix(path, "/api/me") {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

type slotBody struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

type slotsBody struct {
	Date  string     `json:"date"`
	Slots []slotBody `json:"slots"`
}

// setupBusiness registers an owner and opens Mondays 09:00-12:00 with a
// 30 minute service. It returns the service id.
func (a *app) setupBusiness() uint {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/auth/register", gin.H{
		"business_name": "Peluquería Ana",
		"business_slug": "peluqueria-ana",
		"name":          "Ana",
		"email":         "ana@example.com",
		"password":      "secreto123",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	a.token = decode[struct {
		Token string `json:"token"`
	}](a.t, w).Token
	require.NotEmpty(a.t, a.token)

	w = a.do(http.MethodPut, "/api/me/working-hours", gin.H{
		"windows": []gin.H{
			{"weekday": "lunes", "start_time": "09:00", "end_time": "12:00"},
		},
	})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/api/me/services", gin.H{
		"name":             "Corte",
		"duration_minutes": 30,
		"price":            150,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Service](a.t, w).ID
}

func (a *app) slots(serviceID uint, date string) []slotBody {
	a.t.Helper()
	w := a.do(http.MethodGet, "/api/public/peluqueria-ana/slots?service_id="+itoa(serviceID)+"&date="+date, nil)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return decode[slotsBody](a.t, w).Slots
}

func itoa(n uint) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func slotAt(slots []slotBody, start string) slotBody {
	for _, s := range slots {
		if s.Start == start {
			return s
		}
	}
	return slotBody{}
}

func TestHealthAndMetrics(t *testing.T) {
	a := newApp(t, nil)

	w := a.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	w = a.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaffRoutesRequireToken(t *testing.T) {
	a := newApp(t, nil)

	w := a.do(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	a := newApp(t, nil)
	a.setupBusiness()

	w := a.do(http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"peluqueria-ana"`)

	w = a.do(http.MethodPost, "/api/auth/login", gin.H{"email": "ANA@example.com", "password": "secreto123"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodPost, "/api/auth/login", gin.H{"email": "ana@example.com", "password": "otra"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/api/auth/register", gin.H{
		"business_name": "Otra",
		"business_slug": "peluqueria-ana",
		"name":          "Luz",
		"email":         "luz@example.com",
		"password":      "secreto123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slug_already_exists", decode[errorBody](t, w).Code)
}

func TestPublicBookingFlow(t *testing.T) {
	a := newApp(t, nil)
	serviceID := a.setupBusiness()

	// Monday 09:00-12:00 with a 30 minute service offers six slots.
	slots := a.slots(serviceID, "2025-06-09")
	require.Len(t, slots, 6)
	for _, s := range slots {
		assert.True(t, s.Available, s.Start)
	}

	booking := gin.H{
		"service_id":   serviceID,
		"date":         "2025-06-09",
		"time":         "10:00",
		"client_name":  "Luis Pérez",
		"client_phone": "+52 55 1234 5678",
	}

	w := a.do(http.MethodPost, "/api/public/peluqueria-ana/appointments", booking)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Appointment](t, w)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "10:30", created.EndTime)

	// The same slot cannot be booked twice.
	booking["client_phone"] = "5512349999"
	w = a.do(http.MethodPost, "/api/public/peluqueria-ana/appointments", booking)
	require.Equal(t, http.StatusConflict, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, "slot_no_longer_available", body.Code)
	assert.Equal(t, "El horario ya no está disponible, elige otro.", body.Message)

	assert.False(t, slotAt(a.slots(serviceID, "2025-06-09"), "10:00").Available)

	// Rejecting frees the slot.
	w = a.do(http.MethodPatch, "/api/me/appointments/"+itoa(created.ID)+"/status", gin.H{"status": "rejected"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, slotAt(a.slots(serviceID, "2025-06-09"), "10:00").Available)

	// Rejected is terminal.
	w = a.do(http.MethodPatch, "/api/me/appointments/"+itoa(created.ID)+"/status", gin.H{"status": "accepted"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_state", decode[errorBody](t, w).Code)

	// Outside the schedule and in the past.
	booking["time"] = "11:45"
	w = a.do(http.MethodPost, "/api/public/peluqueria-ana/appointments", booking)
	assert.Equal(t, "outside_working_hours", decode[errorBody](t, w).Code)

	booking["date"] = "2025-05-26"
	booking["time"] = "09:00"
	w = a.do(http.MethodPost, "/api/public/peluqueria-ana/appointments", booking)
	assert.Equal(t, "slot_in_past", decode[errorBody](t, w).Code)

	// The client was created once and listed for staff.
	w = a.do(http.MethodGet, "/api/me/clients", nil)
	require.Equal(t, http.StatusOK, w.Code)
	clients := decode[struct {
		Data  []models.Client `json:"data"`
		Total int             `json:"total"`
	}](t, w)
	assert.Equal(t, 1, clients.Total)
	assert.Equal(t, "+525512345678", clients.Data[0].Phone)

	w = a.do(http.MethodGet, "/api/me/appointments?date=2025-06-09", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"rejected"`)
}

func TestStaffBookingIsAccepted(t *testing.T) {
	a := newApp(t, nil)
	serviceID := a.setupBusiness()

	// Today 08:00; staff may book 09:00 even with a long public notice.
	w := a.do(http.MethodPatch, "/api/me/business", gin.H{"min_advance_minutes": 240})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	booking := gin.H{
		"service_id":   serviceID,
		"date":         "2025-06-02",
		"time":         "09:00",
		"client_name":  "Luis",
		"client_phone": "5512345678",
	}

	w = a.do(http.MethodPost, "/api/public/peluqueria-ana/appointments", booking)
	assert.Equal(t, "slot_in_past", decode[errorBody](t, w).Code)

	w = a.do(http.MethodPost, "/api/me/appointments", booking)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "accepted", decode[models.Appointment](t, w).Status)

	w = a.do(http.MethodGet, "/api/me/appointments/month?year=2025&month=6", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"by_staff":true`)
}

func TestAvailableDaysAndBlockedIntervals(t *testing.T) {
	a := newApp(t, nil)
	serviceID := a.setupBusiness()

	days := func() []string {
		w := a.do(http.MethodGet, "/api/public/peluqueria-ana/available-days?service_id="+itoa(serviceID)+"&year=2025&month=6", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return decode[struct {
			Days []string `json:"days"`
		}](t, w).Days
	}

	assert.Equal(t, []string{"2025-06-02", "2025-06-09", "2025-06-16", "2025-06-23", "2025-06-30"}, days())

	// A whole-day block removes the Monday.
	w := a.do(http.MethodPost, "/api/me/blocked-intervals", gin.H{"date": "2025-06-16", "reason": "Feriado"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	block := decode[models.BlockedInterval](t, w)
	assert.Equal(t, "24:00", block.EndTime)

	assert.Equal(t, []string{"2025-06-02", "2025-06-09", "2025-06-23", "2025-06-30"}, days())

	for _, s := range a.slots(serviceID, "2025-06-16") {
		assert.False(t, s.Available, s.Start)
	}

	w = a.do(http.MethodGet, "/api/me/blocked-intervals?from=2025-06-01&to=2025-06-30", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = a.do(http.MethodDelete, "/api/me/blocked-intervals/"+itoa(block.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, days(), "2025-06-16")

	w = a.do(http.MethodDelete, "/api/me/blocked-intervals/"+itoa(block.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Deactivated services are no longer bookable.
	w = a.do(http.MethodDelete, "/api/me/services/"+itoa(serviceID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(http.MethodGet, "/api/public/peluqueria-ana/available-days?service_id="+itoa(serviceID)+"&year=2025&month=6", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHoldFlow(t *testing.T) {
	a := newApp(t, nil)
	serviceID := a.setupBusiness()

	w := a.do(http.MethodPost, "/api/public/peluqueria-ana/holds", gin.H{
		"service_id": serviceID,
		"date":       "2025-06-09",
		"time":       "11:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	hold := decode[models.TemporaryHold](t, w)
	require.NotEmpty(t, hold.Token)
	assert.True(t, hold.ExpiresAt.Equal(now.Add(5*time.Minute)))

	assert.False(t, slotAt(a.slots(serviceID, "2025-06-09"), "11:00").Available)

	booking := gin.H{
		"service_id":   serviceID,
		"date":         "2025-06-09",
		"time":         "11:00",
		"client_name":  "Marta",
		"client_phone": "5511112222",
	}

	// Someone else cannot take the held slot.
	w = a.do(http.MethodPost, "/api/public/peluqueria-ana/appointments", booking)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The holder can, and the hold is consumed.
	booking["hold_token"] = hold.Token
	w = a.do(http.MethodPost, "/api/public/peluqueria-ana/appointments", booking)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodDelete, "/api/public/peluqueria-ana/holds/"+hold.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkingHoursValidation(t *testing.T) {
	a := newApp(t, nil)
	a.setupBusiness()

	w := a.do(http.MethodPut, "/api/me/working-hours", gin.H{
		"windows": []gin.H{
			{"weekday": 1, "start_time": "09:00", "end_time": "12:00"},
			{"weekday": "lunes", "start_time": "11:00", "end_time": "13:00"},
		},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "overlapping_windows", decode[errorBody](t, w).Code)

	w = a.do(http.MethodPut, "/api/me/working-hours", gin.H{
		"windows": []gin.H{{"weekday": "funday", "start_time": "09:00", "end_time": "12:00"}},
	})
	assert.Equal(t, "invalid_weekday", decode[errorBody](t, w).Code)

	// The previous schedule survives rejected updates.
	w = a.do(http.MethodGet, "/api/me/working-hours", nil)
	require.Equal(t, http.StatusOK, w.Code)
	hours := decode[[]models.WeeklyHours](t, w)
	require.Len(t, hours, 1)
	assert.Equal(t, "09:00", hours[0].StartTime)
}

func TestAuditTrail(t *testing.T) {
	a := newApp(t, nil)
	a.setupBusiness()

	require.Eventually(t, func() bool {
		w := a.do(http.MethodGet, "/api/me/audit-logs?entity=service", nil)
		var page struct {
			Total int64 `json:"total"`
		}
		if w.Code != http.StatusOK || json.Unmarshal(w.Body.Bytes(), &page) != nil {
			return false
		}
		return page.Total == 1
	}, 2*time.Second, 20*time.Millisecond)
}

func TestPublicRateLimit(t *testing.T) {
	a := newApp(t, middleware.NewLocalLimiter(2))
	a.setupBusiness()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, a.do(http.MethodGet, "/api/public/peluqueria-ana/services", nil).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Staff routes are not limited.
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/me", nil).Code)
}
