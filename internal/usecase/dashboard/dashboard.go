package dashboard

import (
	"context"
	"errors"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Repository é o recorte do repositório de agenda que o painel usa.
type Repository interface {
	GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error)
	ListAppointments(ctx context.Context, barbershopID uint) ([]models.Appointment, error)
	ListClients(ctx context.Context, barbershopID uint) ([]models.Client, error)
}

const recentLimit = 5

type Stats struct {
	TotalAppointments     int     `json:"totalAppointments"`
	TotalRevenue          float64 `json:"totalRevenue"`
	TotalCustomers        int     `json:"totalCustomers"`
	TodayAppointments     int     `json:"todayAppointments"`
	UpcomingAppointments  int     `json:"upcomingAppointments"`
	CompletedAppointments int     `json:"completedAppointments"`
	CancelledAppointments int     `json:"cancelledAppointments"`
	NoShowAppointments    int     `json:"noShowAppointments"`

	RecentAppointments []dto.AppointmentListDTO `json:"recentAppointments"`
}

type Customer struct {
	models.Client
	TotalAppointments int        `json:"totalAppointments"`
	LastAppointment   *time.Time `json:"lastAppointment"`
	TotalSpent        float64    `json:"totalSpent"`
}

type Dashboard struct {
	repo Repository
	now  func() time.Time
}

func New(repo Repository) *Dashboard {
	return &Dashboard{repo: repo, now: time.Now}
}

func (d *Dashboard) Stats(ctx context.Context, barbershopID uint) (*Stats, error) {
	shop, err := d.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeBarbershopNotFound)
		}
		return nil, httperr.ErrRepository("get_barbershop", err)
	}

	appointments, err := d.repo.ListAppointments(ctx, barbershopID)
	if err != nil {
		return nil, httperr.ErrRepository("list_appointments", err)
	}
	clients, err := d.repo.ListClients(ctx, barbershopID)
	if err != nil {
		return nil, httperr.ErrRepository("list_clients", err)
	}

	today, tomorrow := domain.DayRange(d.now().In(timezone.Location(shop.Timezone)))

	s := &Stats{
		TotalAppointments: len(appointments),
		TotalCustomers:    len(clients),
	}

	for _, ap := range appointments {
		switch domain.Status(ap.Status) {
		case domain.StatusCompleted:
			s.CompletedAppointments++
			s.TotalRevenue += ap.TotalPrice
		case domain.StatusCancelled:
			s.CancelledAppointments++
		case domain.StatusNoShow:
			s.NoShowAppointments++
		}

		if !ap.StartTime.Before(today) && ap.StartTime.Before(tomorrow) {
			s.TodayAppointments++
		}
		if !ap.StartTime.Before(tomorrow) && ap.Status == string(domain.StatusScheduled) {
			s.UpcomingAppointments++
		}
	}

	recent := make([]models.Appointment, len(appointments))
	copy(recent, appointments)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	s.RecentAppointments = dto.NewAppointmentList(recent)

	return s, nil
}

// Customers devolve os clientes com histórico agregado.
func (d *Dashboard) Customers(ctx context.Context, barbershopID uint) ([]Customer, error) {
	clients, err := d.repo.ListClients(ctx, barbershopID)
	if err != nil {
		return nil, httperr.ErrRepository("list_clients", err)
	}
	appointments, err := d.repo.ListAppointments(ctx, barbershopID)
	if err != nil {
		return nil, httperr.ErrRepository("list_appointments", err)
	}

	byClient := make(map[uint]*Customer, len(clients))
	out := make([]Customer, len(clients))
	for i, c := range clients {
		out[i] = Customer{Client: c}
		byClient[c.ID] = &out[i]
	}

	for _, ap := range appointments {
		c, ok := byClient[ap.ClientID]
		if !ok {
			continue
		}
		c.TotalAppointments++
		if c.LastAppointment == nil || ap.StartTime.After(*c.LastAppointment) {
			start := ap.StartTime
			c.LastAppointment = &start
		}
		if ap.Status == string(domain.StatusCompleted) {
			c.TotalSpent += ap.TotalPrice
		}
	}

	return out, nil
}
