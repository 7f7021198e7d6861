package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/availability"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/httperr"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create      *appointment.CreateAppointment
	listByDate  *appointment.ListAppointmentsByDate
	listByMonth *appointment.ListAppointmentsByMonth
	status      *appointment.UpdateStatus
	log         zerolog.Logger
}

func NewAppointmentHandler(
	create *appointment.CreateAppointment,
	listByDate *appointment.ListAppointmentsByDate,
	listByMonth *appointment.ListAppointmentsByMonth,
	status *appointment.UpdateStatus,
	log zerolog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:      create,
		listByDate:  listByDate,
		listByMonth: listByMonth,
		status:      status,
		log:         log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:MM
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	Notes       string `json:"notes" binding:"max=255"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE (STAFF)
// ======================================================

// Create books on behalf of a client, e.g. a phone call. The appointment is
// accepted right away.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	staffID := userIDFrom(c)

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		BusinessID:  businessIDFrom(c),
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Notes:       req.Notes,
		StaffID:     &staffID,
	})
	if err != nil {
		writeError(c, h.log, "failed_to_create_appointment", err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_params", "La fecha es obligatoria.")
		return
	}

	date, err := availability.ParseDate(dateStr)
	if err != nil {
		writeError(c, h.log, "invalid_request", err)
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), businessIDFrom(c), date)
	if err != nil {
		writeError(c, h.log, "failed_to_list_appointments", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         availability.FormatDate(date),
		"appointments": list,
	})
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "missing_params", "Año y mes son obligatorios.")
		return
	}

	list, err := h.listByMonth.Execute(c.Request.Context(), businessIDFrom(c), year, month)
	if err != nil {
		writeError(c, h.log, "failed_to_list_appointments", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": list,
	})
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	ap, err := h.status.Execute(c.Request.Context(), appointment.UpdateStatusInput{
		BusinessID:    businessIDFrom(c),
		UserID:        userIDFrom(c),
		AppointmentID: id,
		Status:        req.Status,
	})
	if err != nil {
		writeError(c, h.log, "failed_to_update_status", err)
		return
	}

	c.JSON(http.StatusOK, ap)
}
