package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ChangeStatus é a troca de status feita pelo painel
// (confirmar, cancelar, concluir, não compareceu).
type ChangeStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewChangeStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ChangeStatus {
	return &ChangeStatus{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

type ChangeStatusInput struct {
	BarbershopID  uint
	AppointmentID uint
	Status        domain.Status

	ActorUserID *uint
	RequestID   string
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	in ChangeStatusInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.BarbershopID, in.AppointmentID)
	if err != nil {
		return nil, notFoundOr(err, httperr.CodeAppointmentNotFound, "get_appointment")
	}

	if err := domain.Transition(ap, in.Status, uc.now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, httperr.ErrRepository("update_appointment", err)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       in.ActorUserID,
		Action:       "appointment_" + string(in.Status),
		Entity:       "appointment",
		EntityID:     &ap.ID,
		RequestID:    in.RequestID,
	})

	return ap, nil
}
