package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/audit"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/availability"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/httperr"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/httpresp"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
)

// BlockedIntervalHandler manages one-off closures of concrete dates.
type BlockedIntervalHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewBlockedIntervalHandler(db *gorm.DB, audit *audit.Dispatcher, log zerolog.Logger) *BlockedIntervalHandler {
	return &BlockedIntervalHandler{db: db, audit: audit, log: log}
}

// CreateBlockedIntervalRequest blocks the whole day when both times are empty.
type CreateBlockedIntervalRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

func (h *BlockedIntervalHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Where("business_id = ?", businessIDFrom(c))

	if from := c.Query("from"); from != "" {
		d, err := availability.ParseDate(from)
		if err != nil {
			writeError(c, h.log, "invalid_request", err)
			return
		}
		q = q.Where("date >= ?", availability.FormatDate(d))
	}
	if to := c.Query("to"); to != "" {
		d, err := availability.ParseDate(to)
		if err != nil {
			writeError(c, h.log, "invalid_request", err)
			return
		}
		q = q.Where("date <= ?", availability.FormatDate(d))
	}

	var blocks []models.BlockedInterval
	if err := q.Order("date ASC, start_time ASC").Find(&blocks).Error; err != nil {
		writeError(c, h.log, "failed_to_list_blocked_intervals", err)
		return
	}

	httpresp.List(c, blocks)
}

func (h *BlockedIntervalHandler) Create(c *gin.Context) {
	var req CreateBlockedIntervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	date, err := availability.ParseDate(req.Date)
	if err != nil {
		writeError(c, h.log, "invalid_request", err)
		return
	}

	startStr, endStr := strings.TrimSpace(req.StartTime), strings.TrimSpace(req.EndTime)
	if startStr == "" && endStr == "" {
		startStr, endStr = "00:00", "24:00"
	}

	_, start, end, err := normalizeRange(startStr, endStr)
	if err != nil {
		writeError(c, h.log, "invalid_request", err)
		return
	}

	block := models.BlockedInterval{
		BusinessID: businessIDFrom(c),
		Date:       availability.FormatDate(date),
		StartTime:  start,
		EndTime:    end,
		Reason:     strings.TrimSpace(req.Reason),
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&block).Error; err != nil {
		writeError(c, h.log, "failed_to_create_blocked_interval", err)
		return
	}

	writeAudit(h.audit, c, "blocked_interval_created", "blocked_interval", &block.ID, gin.H{
		"date":  block.Date,
		"start": block.StartTime,
		"end":   block.EndTime,
	})

	c.JSON(http.StatusCreated, block)
}

func (h *BlockedIntervalHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND business_id = ?", id, businessIDFrom(c)).
		Delete(&models.BlockedInterval{})
	if res.Error != nil {
		writeError(c, h.log, "failed_to_delete_blocked_interval", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		writeError(c, h.log, "failed_to_delete_blocked_interval", errBlockedNotFound)
		return
	}

	writeAudit(h.audit, c, "blocked_interval_deleted", "blocked_interval", &id, nil)

	c.Status(http.StatusNoContent)
}
