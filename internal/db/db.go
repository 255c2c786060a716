package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Impede dois agendamentos ativos sobrepostos do mesmo profissional,
// mesmo com escritas concorrentes vindas de outra instância.
const appointmentOverlapConstraint = `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
	) THEN
		ALTER TABLE appointments
			ADD CONSTRAINT appointments_no_overlap
			EXCLUDE USING gist (
				staff_id WITH =,
				tstzrange(start_time, end_time, '[)') WITH &&
			)
			WHERE (status IN ('scheduled', 'confirmed'));
	END IF;
END
$$;`

func NewDB(dsn string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
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

	log.Info("database ready")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.User{},
		&models.Staff{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Client{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(appointmentOverlapConstraint).Error; err != nil {
		return fmt.Errorf("overlap constraint: %w", err)
	}

	return db.Exec(`
        UPDATE barbershops
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, timezone.DefaultTimezone).Error
}
