package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	domain "github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/appointment"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/httperr"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the booking page of a business, addressed by slug.
// Clients never log in.
type PublicHandler struct {
	db          *gorm.DB
	repo        domain.Repository
	days        *appointment.ListAvailableDays
	slots       *appointment.ListSlots
	placeHold   *appointment.PlaceHold
	releaseHold *appointment.ReleaseHold
	create      *appointment.CreateAppointment
	log         zerolog.Logger
}

func NewPublicHandler(
	db *gorm.DB,
	repo domain.Repository,
	days *appointment.ListAvailableDays,
	slots *appointment.ListSlots,
	placeHold *appointment.PlaceHold,
	releaseHold *appointment.ReleaseHold,
	create *appointment.CreateAppointment,
	log zerolog.Logger,
) *PublicHandler {
	return &PublicHandler{
		db:          db,
		repo:        repo,
		days:        days,
		slots:       slots,
		placeHold:   placeHold,
		releaseHold: releaseHold,
		create:      create,
		log:         log,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicHoldRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:MM
}

type PublicCreateAppointmentRequest struct {
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	Notes       string `json:"notes" binding:"max=255"`
	HoldToken   string `json:"hold_token"`
}

func (h *PublicHandler) business(c *gin.Context) (*models.Business, bool) {
	business, err := h.repo.GetBusinessBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, h.log, "failed_to_get_business", err)
		return nil, false
	}
	return business, true
}

func serviceIDQuery(c *gin.Context) (uint, bool) {
	raw := c.Query("service_id")
	if raw == "" {
		httperr.BadRequest(c, "missing_params", "El servicio es obligatorio.")
		return 0, false
	}
	id, ok := parseUintParam(raw)
	if !ok {
		httperr.BadRequest(c, "invalid_service_id", "Servicio inválido.")
		return 0, false
	}
	return id, true
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	business, ok := h.business(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("business_id = ? AND active = ?", business.ID, true).
		Order("name ASC").
		Find(&services).Error; err != nil {

		writeError(c, h.log, "failed_to_list_services", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business": businessView(business),
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) AvailableDays(c *gin.Context) {
	business, ok := h.business(c)
	if !ok {
		return
	}
	serviceID, ok := serviceIDQuery(c)
	if !ok {
		return
	}

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Año o mes inválido.")
		return
	}

	days, err := h.days.Execute(c.Request.Context(), appointment.ListAvailableDaysInput{
		BusinessID: business.ID,
		ServiceID:  serviceID,
		Year:       year,
		Month:      month,
	})
	if err != nil {
		writeError(c, h.log, "availability_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"days":  days,
	})
}

func (h *PublicHandler) Slots(c *gin.Context) {
	business, ok := h.business(c)
	if !ok {
		return
	}
	serviceID, ok := serviceIDQuery(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_params", "La fecha es obligatoria.")
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), appointment.ListSlotsInput{
		BusinessID: business.ID,
		ServiceID:  serviceID,
		Date:       date,
	})
	if err != nil {
		writeError(c, h.log, "availability_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// HOLDS
////////////////////////////////////////////////////////

func (h *PublicHandler) PlaceHold(c *gin.Context) {
	business, ok := h.business(c)
	if !ok {
		return
	}

	var req PublicHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	hold, err := h.placeHold.Execute(c.Request.Context(), appointment.PlaceHoldInput{
		BusinessID: business.ID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Time:       req.Time,
	})
	if err != nil {
		writeError(c, h.log, "failed_to_place_hold", err)
		return
	}

	c.JSON(http.StatusCreated, hold)
}

func (h *PublicHandler) ReleaseHold(c *gin.Context) {
	business, ok := h.business(c)
	if !ok {
		return
	}

	if err := h.releaseHold.Execute(c.Request.Context(), business.ID, c.Param("token")); err != nil {
		writeError(c, h.log, "failed_to_release_hold", err)
		return
	}

	c.Status(http.StatusNoContent)
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	business, ok := h.business(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		BusinessID:  business.ID,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Notes:       req.Notes,
		HoldToken:   req.HoldToken,
	})
	if err != nil {
		writeError(c, h.log, "failed_to_create_appointment", err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}
