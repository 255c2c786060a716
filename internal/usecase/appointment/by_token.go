package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// Página do cliente (acesso pelo token público)
// ======================================================

type GetByToken struct {
	repo domain.Repository
}

func NewGetByToken(repo domain.Repository) *GetByToken {
	return &GetByToken{repo: repo}
}

func (uc *GetByToken) Execute(ctx context.Context, token string) (*models.Appointment, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}

	ap, err := uc.repo.GetAppointmentByToken(ctx, token)
	if err != nil {
		return nil, notFoundOr(err, httperr.CodeAppointmentNotFound, "get_appointment_by_token")
	}
	return ap, nil
}

type CancelByToken struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCancelByToken(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelByToken {
	return &CancelByToken{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute cancela pelo link do cliente. Só com mais de 2h de antecedência.
func (uc *CancelByToken) Execute(
	ctx context.Context,
	token string,
	requestID string,
) (*models.Appointment, error) {

	ap, err := NewGetByToken(uc.repo).Execute(ctx, token)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	if !domain.Status(ap.Status).IsActive() {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	if !domain.CanCustomerCancel(ap, now) {
		return nil, httperr.ErrBusiness(httperr.CodeTooLateToCancel)
	}

	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, httperr.ErrRepository("update_appointment", err)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: ap.BarbershopID,
		Action:       "appointment_cancelled_by_client",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		RequestID:    requestID,
	})

	return ap, nil
}
