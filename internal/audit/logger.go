package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
)

const writeTimeout = 5 * time.Second

// Logger persists audit events to the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

// Log stores one event. Metadata that fails to encode is stored empty.
func (l *Logger) Log(ev Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	entry := models.AuditLog{
		BusinessID: ev.BusinessID,
		UserID:     ev.UserID,
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		Metadata:   encodeMetadata(ev.Metadata),
	}
	return l.db.WithContext(ctx).Create(&entry).Error
}

func encodeMetadata(meta any) string {
	if meta == nil {
		return ""
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return ""
	}
	return string(b)
}
