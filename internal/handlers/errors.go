package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/httperr"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/middleware"
)

// ======================================================
// BUSINESS ERROR → HTTP
// ======================================================

type errorMapping struct {
	status  int
	message string
}

var businessErrors = map[string]errorMapping{
	"slot_no_longer_available": {http.StatusConflict, "El horario ya no está disponible, elige otro."},
	"invalid_state":            {http.StatusConflict, "La cita ya no admite ese cambio de estado."},
	"slug_already_exists":      {http.StatusConflict, "Ese identificador de negocio ya está en uso."},
	"email_already_exists":     {http.StatusConflict, "Ya existe una cuenta con ese correo."},

	"business_not_found":    {http.StatusNotFound, "Negocio no encontrado."},
	"service_not_found":     {http.StatusNotFound, "Servicio no encontrado."},
	"appointment_not_found": {http.StatusNotFound, "Cita no encontrada."},
	"hold_not_found":        {http.StatusNotFound, "La reserva temporal no existe o ya expiró."},
	"blocked_not_found":     {http.StatusNotFound, "Bloqueo no encontrado."},

	"slot_in_past":            {http.StatusBadRequest, "Ese horario ya pasó o no respeta la antelación mínima."},
	"outside_working_hours":   {http.StatusBadRequest, "Fuera del horario de atención."},
	"outside_booking_horizon": {http.StatusBadRequest, "Esa fecha todavía no está abierta para reservas."},
	"invalid_time":            {http.StatusBadRequest, "Hora inválida, usa el formato HH:MM."},
	"invalid_time_range":      {http.StatusBadRequest, "La hora de inicio debe ser anterior a la de fin."},
	"invalid_date":            {http.StatusBadRequest, "Fecha inválida, usa el formato AAAA-MM-DD."},
	"invalid_duration":        {http.StatusBadRequest, "La duración del servicio debe ser positiva."},
	"invalid_status":          {http.StatusBadRequest, "Estado inválido."},
	"invalid_weekday":         {http.StatusBadRequest, "Día de la semana inválido."},
	"overlapping_windows":     {http.StatusBadRequest, "Los horarios de un mismo día no pueden solaparse."},
	"invalid_client_name":     {http.StatusBadRequest, "Nombre inválido."},
	"invalid_client_phone":    {http.StatusBadRequest, "Teléfono inválido."},
	"invalid_slug":            {http.StatusBadRequest, "Identificador inválido, usa minúsculas, números y guiones."},
}

var (
	errOverlappingWindows = httperr.ErrBusiness("overlapping_windows")
	errInvalidWeekday     = httperr.ErrBusiness("invalid_weekday")
	errBlockedNotFound    = httperr.ErrBusiness("blocked_not_found")
	errSlugExists         = httperr.ErrBusiness("slug_already_exists")
	errEmailExists        = httperr.ErrBusiness("email_already_exists")
)

// writeError answers with the status of a known business code, or 500 for
// anything else. Infrastructure errors are logged, never echoed.
func writeError(c *gin.Context, log zerolog.Logger, fallback string, err error) {
	code := httperr.CodeOf(err)
	if m, ok := businessErrors[code]; ok {
		httperr.Write(c, m.status, code, m.message)
		return
	}
	if code != "" {
		httperr.BadRequest(c, code, "Solicitud inválida.")
		return
	}

	log.Error().
		Err(err).
		Str("path", c.FullPath()).
		Str("request_id", c.GetString(middleware.ContextRequestID)).
		Msg(fallback)
	httperr.Internal(c, fallback, "Error interno, inténtalo de nuevo.")
}

func invalidRequest(c *gin.Context) {
	httperr.BadRequest(c, "invalid_request", "Datos inválidos en la solicitud.")
}

// ======================================================
// CONTEXT
// ======================================================

func businessIDFrom(c *gin.Context) uint {
	return c.MustGet(middleware.ContextBusinessID).(uint)
}

func userIDFrom(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}
