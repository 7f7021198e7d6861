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

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher, log zerolog.Logger) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit, log: log}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=1,max=1440"`
	Price           float64 `json:"price" binding:"min=0"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	activeStr := strings.TrimSpace(c.Query("active")) // "true", "false" or empty
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).
		Where("business_id = ?", businessIDFrom(c))

	switch activeStr {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		writeError(c, h.log, "failed_to_list_services", err)
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		invalidRequest(c)
		return
	}

	service := models.Service{
		BusinessID:      businessIDFrom(c),
		Name:            name,
		Description:     strings.TrimSpace(req.Description),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		writeError(c, h.log, "failed_to_create_service", err)
		return
	}

	writeAudit(h.audit, c, "service_created", "service", &service.ID, gin.H{
		"name":             service.Name,
		"duration_minutes": service.DurationMinutes,
	})

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) load(c *gin.Context) (*models.Service, bool) {
	id, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return nil, false
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND business_id = ?", id, businessIDFrom(c)).
		First(&service).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
			return nil, false
		}
		writeError(c, h.log, "failed_to_get_service", err)
		return nil, false
	}
	return &service, true
}

func (h *ServiceHandler) Update(c *gin.Context) {
	service, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	changes := map[string]any{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			invalidRequest(c)
			return
		}
		changes["name"] = name
	}
	if req.Description != nil {
		changes["description"] = strings.TrimSpace(*req.Description)
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 || *req.DurationMinutes > availability.MinutesPerDay {
			writeError(c, h.log, "failed_to_update_service", availability.ErrInvalidDuration)
			return
		}
		changes["duration_minutes"] = *req.DurationMinutes
	}
	if req.Price != nil {
		if *req.Price < 0 {
			invalidRequest(c)
			return
		}
		changes["price"] = *req.Price
	}
	if req.Active != nil {
		changes["active"] = *req.Active
	}

	if len(changes) > 0 {
		if err := h.db.WithContext(c.Request.Context()).
			Model(service).
			Updates(changes).Error; err != nil {
			writeError(c, h.log, "failed_to_update_service", err)
			return
		}
		writeAudit(h.audit, c, "service_updated", "service", &service.ID, changes)
	}

	if service, ok = h.load(c); !ok {
		return
	}
	c.JSON(http.StatusOK, service)
}

// Deactivate hides the service from clients. Existing appointments keep
// referencing it, so it is never hard-deleted.
func (h *ServiceHandler) Deactivate(c *gin.Context) {
	service, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(service).
		Update("active", false).Error; err != nil {
		writeError(c, h.log, "failed_to_deactivate_service", err)
		return
	}
	service.Active = false

	writeAudit(h.audit, c, "service_deactivated", "service", &service.ID, nil)

	c.JSON(http.StatusOK, service)
}
