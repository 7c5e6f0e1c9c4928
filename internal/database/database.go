package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/carebook/backend/internal/config"
	"github.com/carebook/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs schema migration on the global connection.
func Migrate() error {
	return MigrateSchema(DB)
}

// MigrateSchema runs AutoMigrate for all models and creates the partial
// unique index that serializes slot bookings: at most one non-cancelled
// appointment may exist per (doctor, date, time). The index is what turns a
// concurrent double-booking into a duplicate-key error at insert time.
func MigrateSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Doctor{},
		&models.DoctorTiming{},
		&models.Appointment{},
		&models.RefreshToken{},
		&models.SystemLog{},
	); err != nil {
		return err
	}

	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_slot
		 ON appointments (doctor_id, appointment_date, appointment_time)
		 WHERE status <> 'cancelled' AND deleted_at IS NULL`,
	).Error
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
