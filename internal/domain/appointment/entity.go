package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition aplica a troca de status e carimba os horários de auditoria.
func Transition(ap *models.Appointment, next Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), next); err != nil {
		return err
	}

	ap.Status = string(next)
	switch next {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCancelled, now)
}

func Complete(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCompleted, now)
}

// CustomerCancelWindow é a antecedência mínima para o cliente cancelar.
const CustomerCancelWindow = 2 * time.Hour

// CanCustomerCancel aplica a regra do cancelamento pela página pública.
func CanCustomerCancel(ap *models.Appointment, now time.Time) bool {
	return ap.StartTime.Sub(now) > CustomerCancelWindow
}
