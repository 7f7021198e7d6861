package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/audit"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/availability"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/httperr"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
)

type WorkingHoursHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewWorkingHoursHandler(db *gorm.DB, audit *audit.Dispatcher, log zerolog.Logger) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, audit: audit, log: log}
}

type WorkingWindow struct {
	Weekday   *weekdayParam `json:"weekday" binding:"required"`
	StartTime string        `json:"start_time" binding:"required"`
	EndTime   string        `json:"end_time" binding:"required"`
}

// WorkingHoursUpdateRequest replaces the whole weekly schedule. A weekday
// missing from Windows is closed.
type WorkingHoursUpdateRequest struct {
	Windows []WorkingWindow `json:"windows" binding:"dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	var hours []models.WeeklyHours
	if err := h.db.WithContext(c.Request.Context()).
		Where("business_id = ?", businessIDFrom(c)).
		Order("weekday ASC, start_time ASC").
		Find(&hours).Error; err != nil {

		writeError(c, h.log, "failed_to_get_working_hours", err)
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if httperr.CodeOf(err) != "" {
			writeError(c, h.log, "invalid_request", err)
			return
		}
		invalidRequest(c)
		return
	}

	businessID := businessIDFrom(c)

	rows, err := buildWeeklyHours(businessID, req.Windows)
	if err != nil {
		writeError(c, h.log, "invalid_request", err)
		return
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_id = ?", businessID).Delete(&models.WeeklyHours{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		writeError(c, h.log, "failed_to_save_working_hours", err)
		return
	}

	writeAudit(h.audit, c, "working_hours_replaced", "working_hours", nil, gin.H{"windows": len(rows)})

	c.JSON(http.StatusOK, rows)
}

// buildWeeklyHours validates every window and rejects overlaps inside a
// weekday. Touching windows (12:00-14:00, 14:00-18:00) are allowed.
func buildWeeklyHours(businessID uint, windows []WorkingWindow) ([]models.WeeklyHours, error) {
	byDay := map[time.Weekday][]availability.Interval{}
	rows := make([]models.WeeklyHours, 0, len(windows))

	for _, w := range windows {
		iv, start, end, err := normalizeRange(w.StartTime, w.EndTime)
		if err != nil {
			return nil, err
		}

		day := time.Weekday(*w.Weekday)
		if availability.OverlapsAny(iv, byDay[day]) {
			return nil, errOverlappingWindows
		}
		byDay[day] = append(byDay[day], iv)

		rows = append(rows, models.WeeklyHours{
			BusinessID: businessID,
			Weekday:    int(day),
			StartTime:  start,
			EndTime:    end,
		})
	}
	return rows, nil
}
