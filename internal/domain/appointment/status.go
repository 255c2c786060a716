package appointment

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// ActiveStatuses bloqueiam horário na agenda.
var ActiveStatuses = []string{
	string(StatusScheduled),
	string(StatusConfirmed),
}

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsActive informa se o agendamento ocupa o horário do profissional.
func (s Status) IsActive() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// ===============================
// Validations
// ===============================

// CanTransition valida a troca de status.
func CanTransition(current, next Status) error {
	if !next.Valid() {
		return httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	switch next {
	case StatusConfirmed:
		if current == StatusScheduled {
			return nil
		}
	case StatusCancelled, StatusCompleted, StatusNoShow:
		if current.IsActive() {
			return nil
		}
	}

	return httperr.ErrBusiness(httperr.CodeInvalidState)
}

func InitialStatus() Status {
	return StatusScheduled
}
