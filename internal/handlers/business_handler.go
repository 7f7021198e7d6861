package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/audit"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/availability"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/httperr"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
)

type BusinessHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewBusinessHandler(db *gorm.DB, audit *audit.Dispatcher, log zerolog.Logger) *BusinessHandler {
	return &BusinessHandler{db: db, audit: audit, log: log}
}

type UpdateBusinessRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
	SlotStepMinutes   *int    `json:"slot_step_minutes"`
}

func (h *BusinessHandler) load(c *gin.Context) (*models.Business, bool) {
	var business models.Business
	if err := h.db.WithContext(c.Request.Context()).First(&business, businessIDFrom(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "business_not_found", "Negocio no encontrado.")
			return nil, false
		}
		writeError(c, h.log, "failed_to_get_business", err)
		return nil, false
	}
	return &business, true
}

func (h *BusinessHandler) Get(c *gin.Context) {
	business, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, business)
}

func (h *BusinessHandler) Update(c *gin.Context) {
	business, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	changes := map[string]any{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "El nombre del negocio no puede estar vacío.")
			return
		}
		changes["name"] = name
	}
	if req.Phone != nil {
		changes["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		changes["address"] = strings.TrimSpace(*req.Address)
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 || *req.MinAdvanceMinutes > availability.MinutesPerDay {
			httperr.BadRequest(c, "invalid_min_advance", "La antelación mínima debe estar entre 0 y 1440 minutos.")
			return
		}
		changes["min_advance_minutes"] = *req.MinAdvanceMinutes
	}
	if req.SlotStepMinutes != nil {
		if *req.SlotStepMinutes < 0 || *req.SlotStepMinutes > availability.MinutesPerDay {
			httperr.BadRequest(c, "invalid_slot_step", "El intervalo entre horarios debe estar entre 0 y 1440 minutos.")
			return
		}
		changes["slot_step_minutes"] = *req.SlotStepMinutes
	}

	if len(changes) > 0 {
		if err := h.db.WithContext(c.Request.Context()).
			Model(business).
			Updates(changes).Error; err != nil {
			writeError(c, h.log, "failed_to_update_business", err)
			return
		}
		writeAudit(h.audit, c, "business_updated", "business", &business.ID, changes)
	}

	business, ok = h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, business)
}
