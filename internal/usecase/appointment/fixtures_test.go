package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type fixture struct {
	repo    *repository.MemoryRepository
	shop    models.Barbershop
	staff   models.Staff
	cut     models.Service
	combo   models.Service
	day     string // terça-feira
	sunday  string
	startOf func(h, m int) time.Time
}

// newFixture monta uma barbearia 09:00–18:00 (almoço opcional) em tz.
func newFixture(tz string, lunch bool) *fixture {
	repo := repository.NewMemoryRepository()

	shop := repo.AddBarbershop(models.Barbershop{
		Name: "Barbearia Teste", Slug: "teste", Timezone: tz,
		MinAdvanceMinutes: 120, Active: true,
	})
	staff := repo.AddStaff(models.Staff{BarbershopID: shop.ID, Name: "João", Active: true})
	cut := repo.AddService(models.Service{BarbershopID: shop.ID, Name: "Corte", DurationMin: 30, Price: 50, Active: true})
	combo := repo.AddService(models.Service{BarbershopID: shop.ID, Name: "Corte + Barba", DurationMin: 45, Price: 70, Active: true})

	wh := models.WorkingHours{BarbershopID: shop.ID, Weekday: 2, StartTime: "09:00", EndTime: "18:00", Active: true}
	if lunch {
		wh.LunchStart, wh.LunchEnd = "12:00", "13:00"
	}
	repo.AddWorkingHours(wh)
	repo.AddWorkingHours(models.WorkingHours{BarbershopID: shop.ID, Weekday: 0, Active: false})

	loc, _ := time.LoadLocation(tz)

	return &fixture{
		repo:   repo,
		shop:   shop,
		staff:  staff,
		cut:    cut,
		combo:  combo,
		day:    "2026-03-10",
		sunday: "2026-03-08",
		startOf: func(h, m int) time.Time {
			return time.Date(2026, 3, 10, h, m, 0, 0, loc)
		},
	}
}

func (f *fixture) book(serviceID uint, h, m, minutes int, status string) {
	start := f.startOf(h, m)
	f.repo.AddAppointment(models.Appointment{
		BarbershopID: f.shop.ID,
		StaffID:      f.staff.ID,
		ServiceID:    serviceID,
		StartTime:    start,
		EndTime:      start.Add(time.Duration(minutes) * time.Minute),
		DurationMin:  minutes,
		Status:       status,
	})
}

var errDatabaseDown = errors.New("database down")

// brokenRepo simula o banco fora do ar na leitura do serviço.
type brokenRepo struct {
	*repository.MemoryRepository
}

func (brokenRepo) GetService(context.Context, uint, uint) (*models.Service, error) {
	return nil, errDatabaseDown
}

// appointmentsDown falha só na leitura da agenda do dia.
type appointmentsDown struct {
	*repository.MemoryRepository
}

func (*appointmentsDown) ListActiveAppointments(context.Context, uint, uint, time.Time, time.Time) ([]models.Appointment, error) {
	return nil, errDatabaseDown
}
