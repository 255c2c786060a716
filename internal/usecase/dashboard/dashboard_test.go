package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type fakeRepo struct {
	shop         *models.Barbershop
	appointments []models.Appointment
	clients      []models.Client
	err          error
}

func (f *fakeRepo) GetBarbershopByID(context.Context, uint) (*models.Barbershop, error) {
	if f.shop == nil {
		return nil, domain.ErrNotFound
	}
	return f.shop, nil
}

func (f *fakeRepo) ListAppointments(context.Context, uint) ([]models.Appointment, error) {
	return f.appointments, f.err
}

func (f *fakeRepo) ListClients(context.Context, uint) ([]models.Client, error) {
	return f.clients, f.err
}

func TestStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	at := func(day, hour int) time.Time { return time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC) }

	repo := &fakeRepo{
		shop: &models.Barbershop{ID: 1, Timezone: "UTC"},
		clients: []models.Client{
			{ID: 1, Name: "Ana"},
			{ID: 2, Name: "Bruno"},
		},
		appointments: []models.Appointment{
			{ID: 1, ClientID: 1, StartTime: at(9, 10), Status: "completed", TotalPrice: 50, CreatedAt: at(1, 9)},
			{ID: 2, ClientID: 1, StartTime: at(10, 10), Status: "scheduled", TotalPrice: 50, CreatedAt: at(2, 9)},
			{ID: 3, ClientID: 2, StartTime: at(10, 15), Status: "cancelled", TotalPrice: 30, CreatedAt: at(3, 9)},
			{ID: 4, ClientID: 2, StartTime: at(12, 9), Status: "scheduled", TotalPrice: 30, CreatedAt: at(4, 9)},
			{ID: 5, ClientID: 2, StartTime: at(13, 9), Status: "confirmed", TotalPrice: 30, CreatedAt: at(5, 9)},
			{ID: 6, ClientID: 1, StartTime: at(8, 9), Status: "no_show", TotalPrice: 50, CreatedAt: at(6, 9)},
			{ID: 7, ClientID: 1, StartTime: at(7, 9), Status: "completed", TotalPrice: 40, CreatedAt: at(7, 9)},
		},
	}

	d := New(repo)
	d.now = func() time.Time { return now }

	s, err := d.Stats(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.TotalAppointments != 7 || s.TotalCustomers != 2 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.TotalRevenue != 90 {
		t.Fatalf("expected revenue 90, got %v", s.TotalRevenue)
	}
	if s.TodayAppointments != 2 {
		t.Fatalf("expected 2 today, got %d", s.TodayAppointments)
	}
	if s.UpcomingAppointments != 1 {
		t.Fatalf("expected 1 upcoming scheduled, got %d", s.UpcomingAppointments)
	}
	if s.CompletedAppointments != 2 || s.CancelledAppointments != 1 || s.NoShowAppointments != 1 {
		t.Fatalf("unexpected status counts: %+v", s)
	}
	if len(s.RecentAppointments) != recentLimit || s.RecentAppointments[0].ID != 7 {
		t.Fatalf("unexpected recent list: %+v", s.RecentAppointments)
	}
}

func TestStats_Errors(t *testing.T) {
	d := New(&fakeRepo{})
	if _, err := d.Stats(context.Background(), 1); !httperr.IsBusiness(err, httperr.CodeBarbershopNotFound) {
		t.Fatalf("expected barbershop_not_found, got %v", err)
	}

	d = New(&fakeRepo{shop: &models.Barbershop{ID: 1}, err: errors.New("db down")})
	if _, err := d.Stats(context.Background(), 1); !httperr.IsRepository(err) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestCustomers(t *testing.T) {
	at := func(day int) time.Time { return time.Date(2026, 3, day, 10, 0, 0, 0, time.UTC) }

	d := New(&fakeRepo{
		clients: []models.Client{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Bruno"}},
		appointments: []models.Appointment{
			{ClientID: 1, StartTime: at(3), Status: "completed", TotalPrice: 40},
			{ClientID: 1, StartTime: at(9), Status: "scheduled", TotalPrice: 40},
			{ClientID: 1, StartTime: at(5), Status: "completed", TotalPrice: 60},
		},
	})

	customers, err := d.Customers(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ana := customers[0]
	if ana.TotalAppointments != 3 || ana.TotalSpent != 100 {
		t.Fatalf("unexpected aggregate: %+v", ana)
	}
	if ana.LastAppointment == nil || !ana.LastAppointment.Equal(at(9)) {
		t.Fatalf("unexpected last appointment: %v", ana.LastAppointment)
	}

	bruno := customers[1]
	if bruno.TotalAppointments != 0 || bruno.LastAppointment != nil {
		t.Fatalf("expected empty history, got %+v", bruno)
	}
}
