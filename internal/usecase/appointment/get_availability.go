package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{
		repo: repo,
		now:  time.Now,
	}
}

// Execute devolve os horários livres ("HH:MM") em ordem crescente.
// Dia fechado ou sem expediente é lista vazia, nunca erro.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	if in.BarbershopID == 0 || in.StaffID == 0 || in.ServiceID == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}
	// formato antes de ir ao banco; o fuso só vem com a barbearia
	if _, err := time.Parse(domain.DateLayout, in.Date); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	// --------------------------------------------------
	// 1️⃣ Serviço → duração
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, notFoundOr(err, httperr.CodeServiceNotFound, "get_service")
	}
	if !service.Active || service.DurationMin <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}

	// --------------------------------------------------
	// 2️⃣ Barbearia (timezone) + profissional
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, notFoundOr(err, httperr.CodeBarbershopNotFound, "get_barbershop")
	}

	if _, err := uc.repo.GetStaff(ctx, in.BarbershopID, in.StaffID); err != nil {
		return nil, notFoundOr(err, httperr.CodeStaffNotFound, "get_staff")
	}

	date, err := timezone.ParseDate(in.Date, shop.Timezone)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	// --------------------------------------------------
	// 3️⃣ Expediente do dia
	// --------------------------------------------------
	wh, err := uc.repo.GetWorkingHours(ctx, in.BarbershopID, in.StaffID, int(date.Weekday()))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrRepository("get_working_hours", err)
	}

	day, err := domain.ResolveWorkingDay(wh)
	if err != nil {
		return nil, httperr.ErrRepository("resolve_working_hours", err)
	}
	if !day.Window.Working {
		return []string{}, nil
	}

	// --------------------------------------------------
	// 4️⃣ Agendamentos ativos do dia
	// --------------------------------------------------
	dayStart, dayEnd := domain.DayRange(date)
	booked, err := uc.repo.ListActiveAppointments(ctx, in.BarbershopID, in.StaffID, dayStart, dayEnd)
	if err != nil {
		return nil, httperr.ErrRepository("list_active_appointments", err)
	}

	// --------------------------------------------------
	// 5️⃣ Grade + filtro
	// --------------------------------------------------
	slots := availability.Slots(day.Window, service.DurationMin, day.Blocked(date, booked))

	if in.ExcludePast {
		cutoff := uc.now().In(date.Location()).Add(time.Duration(shop.MinAdvanceMinutes) * time.Minute)
		slots = availability.DropBefore(slots, date, cutoff)
	}

	return availability.Format(slots), nil
}

// notFoundOr traduz ErrNotFound no código de negócio; o resto é falha de repositório.
func notFoundOr(err error, code string, op string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(code)
	}
	return httperr.ErrRepository(op, err)
}
