package httperr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos de negócio expostos na API
const (
	CodeInvalidRequest      = "invalid_request"
	CodeInvalidDateOrTime   = "invalid_date_or_time"
	CodeServiceNotFound     = "service_not_found"
	CodeStaffNotFound       = "staff_not_found"
	CodeBarbershopNotFound  = "barbershop_not_found"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeSlotConflict        = "slot_conflict"
	CodeInvalidState        = "invalid_state"
	CodeTooSoon             = "too_soon"
	CodeOutsideWorkingHours = "outside_working_hours"
	CodeTooLateToCancel     = "too_late_to_cancel"
	CodeInvalidPhone        = "invalid_phone"
	CodeInvalidEmail        = "invalid_email"
	CodeRepository          = "repository_error"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// RepositoryError indica falha da camada de persistência.
// Nunca deve virar "sem horários" para o cliente.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository: %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

func ErrRepository(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RepositoryError{Op: op, Err: err}
}

func IsRepository(err error) bool {
	var re *RepositoryError
	return errors.As(err, &re)
}

// IsExclusionConflict detecta violação da constraint de sobreposição (23P01).
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}
