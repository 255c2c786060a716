package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ErrNotFound é o único erro "esperado" do repositório.
// Qualquer outro erro é falha de infraestrutura.
var ErrNotFound = errors.New("not_found")

// Repository é a fonte de dados da agenda. Existe em Postgres (gorm)
// e em memória; os use cases não sabem qual estão usando.
type Repository interface {
	// -------- Barbershop --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetBarbershopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Barbershop, error)

	// -------- Service --------
	// GetService só devolve serviços ativos da barbearia.
	GetService(
		ctx context.Context,
		barbershopID uint,
		serviceID uint,
	) (*models.Service, error)

	ListServices(
		ctx context.Context,
		barbershopID uint,
	) ([]models.Service, error)

	// -------- Staff --------
	// GetStaff só devolve profissionais ativos da barbearia.
	GetStaff(
		ctx context.Context,
		barbershopID uint,
		staffID uint,
	) (*models.Staff, error)

	ListStaff(
		ctx context.Context,
		barbershopID uint,
	) ([]models.Staff, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	ListClients(
		ctx context.Context,
		barbershopID uint,
	) ([]models.Client, error)

	// -------- Availability --------
	// GetWorkingHours prefere o expediente do profissional e cai
	// para o padrão da barbearia.
	GetWorkingHours(
		ctx context.Context,
		barbershopID uint,
		staffID uint,
		weekday int,
	) (*models.WorkingHours, error)

	// ListActiveAppointments devolve agendamentos scheduled/confirmed
	// do profissional que se sobrepõem a [start, end).
	ListActiveAppointments(
		ctx context.Context,
		barbershopID uint,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (create) --------
	// CreateAppointment grava de forma atômica: se houver agendamento
	// ativo sobreposto do mesmo profissional devolve slot_conflict.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (read / state change) --------
	GetAppointment(
		ctx context.Context,
		barbershopID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentByToken(
		ctx context.Context,
		token string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// ListAppointmentsForPeriod inclui todos os status, com cliente,
	// serviço e profissional carregados. staffID 0 = todos.
	ListAppointmentsForPeriod(
		ctx context.Context,
		barbershopID uint,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		barbershopID uint,
	) ([]models.Appointment, error)
}
