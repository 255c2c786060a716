package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID uint
	StaffID      uint
	ServiceID    uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	Date  string
	Time  string
	Notes string

	// Preenchido quando o agendamento vem do painel.
	ActorUserID *uint
	RequestID   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.BarbershopID == 0 || in.StaffID == 0 || in.ServiceID == 0 ||
		strings.TrimSpace(in.ClientName) == "" {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	phone := validators.NormalizePhone(in.ClientPhone)
	if strings.TrimSpace(in.ClientPhone) != "" && phone == "" {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	// --------------------------------------------------
	// 1️⃣ Barbearia
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, notFoundOr(err, httperr.CodeBarbershopNotFound, "get_barbershop")
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no timezone da barbearia
	// --------------------------------------------------
	loc := timezone.Location(shop.Timezone)
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	// --------------------------------------------------
	// 3️⃣ Antecedência mínima
	// --------------------------------------------------
	now := uc.now().In(loc)
	if start.Before(now.Add(time.Duration(shop.MinAdvanceMinutes) * time.Minute)) {
		return nil, httperr.ErrBusiness(httperr.CodeTooSoon)
	}

	// --------------------------------------------------
	// 4️⃣ Serviço + profissional
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, notFoundOr(err, httperr.CodeServiceNotFound, "get_service")
	}
	if !service.Active || service.DurationMin <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}

	staff, err := uc.repo.GetStaff(ctx, in.BarbershopID, in.StaffID)
	if err != nil {
		return nil, notFoundOr(err, httperr.CodeStaffNotFound, "get_staff")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	// --------------------------------------------------
	// 5️⃣ Working hours + almoço
	// --------------------------------------------------
	if err := uc.assertWorkingHours(ctx, in.BarbershopID, staff.ID, start, service.DurationMin); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Cliente (get or create)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BarbershopID,
		strings.TrimSpace(in.ClientName),
		phone,
		validators.NormalizeEmail(in.ClientEmail),
	)
	if err != nil {
		return nil, httperr.ErrRepository("get_or_create_client", err)
	}

	// --------------------------------------------------
	// 7️⃣ Criação atômica (conflito → slot_conflict)
	// --------------------------------------------------
	ap := &models.Appointment{
		BarbershopID: in.BarbershopID,
		StaffID:      staff.ID,
		ClientID:     client.ID,
		ServiceID:    service.ID,
		StartTime:    start,
		EndTime:      end,
		DurationMin:  service.DurationMin,
		Status:       string(domain.InitialStatus()),
		TotalPrice:   service.Price,
		PublicToken:  uuid.NewString(),
		Notes:        strings.TrimSpace(in.Notes),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotConflict) {
			return nil, err
		}
		return nil, httperr.ErrRepository("create_appointment", err)
	}

	ap.Client = *client
	ap.Service = *service
	ap.Staff = *staff

	// --------------------------------------------------
	// 8️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       in.ActorUserID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		RequestID:    in.RequestID,
		Metadata: map[string]any{
			"staff_id":   ap.StaffID,
			"service_id": ap.ServiceID,
			"start_time": ap.StartTime,
		},
	})

	return ap, nil
}

func (uc *CreateAppointment) assertWorkingHours(
	ctx context.Context,
	barbershopID uint,
	staffID uint,
	start time.Time,
	duration int,
) error {
	wh, err := uc.repo.GetWorkingHours(ctx, barbershopID, staffID, int(start.Weekday()))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrRepository("get_working_hours", err)
	}

	day, err := domain.ResolveWorkingDay(wh)
	if err != nil {
		return httperr.ErrRepository("resolve_working_hours", err)
	}

	clock := availability.ClockOf(start, start)
	if !day.Window.Fits(clock, duration) {
		return httperr.ErrBusiness(httperr.CodeOutsideWorkingHours)
	}
	if day.Lunch != nil && availability.Overlaps(clock, clock.Add(duration), *day.Lunch) {
		return httperr.ErrBusiness(httperr.CodeOutsideWorkingHours)
	}
	return nil
}
