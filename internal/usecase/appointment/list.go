package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ListAppointments alimenta o calendário do painel (dia ou mês).
type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(
	repo domain.Repository,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
	}
}

// ByDate lista o dia "2006-01-02". staffID 0 = todos os profissionais.
func (uc *ListAppointments) ByDate(
	ctx context.Context,
	barbershopID uint,
	staffID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	loc, err := uc.location(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation(domain.DateLayout, date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	start, end := domain.DayRange(day)
	return uc.period(ctx, barbershopID, staffID, start, end)
}

func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	barbershopID uint,
	staffID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 || year < 1970 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	loc, err := uc.location(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	return uc.period(ctx, barbershopID, staffID, start, end)
}

func (uc *ListAppointments) location(ctx context.Context, barbershopID uint) (*time.Location, error) {
	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, notFoundOr(err, httperr.CodeBarbershopNotFound, "get_barbershop")
	}
	return timezone.Location(shop.Timezone), nil
}

func (uc *ListAppointments) period(
	ctx context.Context,
	barbershopID uint,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]dto.AppointmentListDTO, error) {
	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, barbershopID, staffID, start, end)
	if err != nil {
		return nil, httperr.ErrRepository("list_appointments_for_period", err)
	}
	return dto.NewAppointmentList(appointments), nil
}
