package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Logger grava os eventos na tabela audit_logs.
type Logger struct {
	db *gorm.DB
}

var _ Sink = (*Logger)(nil)

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Record(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		BarbershopID: ev.BarbershopID,
		UserID:       ev.UserID,
		Action:       ev.Action,
		Entity:       ev.Entity,
		EntityID:     ev.EntityID,
		Metadata:     metaJSON,
		RequestID:    ev.RequestID,
		CreatedAt:    ev.OccurredAt,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}
