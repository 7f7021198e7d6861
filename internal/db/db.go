package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/config"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
)

func NewDB(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info().Str("dialect", db.Dialector.Name()).Msg("database ready")
	return db, nil
}

// liveSlotIndex keeps two live appointments from starting at the same minute
// of the same business day, backing the transactional admission check.
const liveSlotIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_live_slot
ON appointments (business_id, date, start_time)
WHERE status IN ('pending', 'accepted')`

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(liveSlotIndex).Error; err != nil {
		return fmt.Errorf("create live slot index: %w", err)
	}

	return nil
}
