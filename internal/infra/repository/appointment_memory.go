package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// MemoryRepository guarda tudo em mapas protegidos por um mutex.
// Usado nos testes e no modo demo (STORE_DRIVER=memory).
type MemoryRepository struct {
	mu sync.RWMutex

	seq uint

	barbershops  map[uint]models.Barbershop
	services     map[uint]models.Service
	staff        map[uint]models.Staff
	clients      map[uint]models.Client
	workingHours []models.WorkingHours
	appointments map[uint]models.Appointment
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		barbershops:  map[uint]models.Barbershop{},
		services:     map[uint]models.Service{},
		staff:        map[uint]models.Staff{},
		clients:      map[uint]models.Client{},
		appointments: map[uint]models.Appointment{},
	}
}

func (r *MemoryRepository) nextID() uint {
	r.seq++
	return r.seq
}

// --------------------------------------------------
// Seed (testes / demo)
// --------------------------------------------------

func (r *MemoryRepository) AddBarbershop(shop models.Barbershop) models.Barbershop {
	r.mu.Lock()
	defer r.mu.Unlock()
	if shop.ID == 0 {
		shop.ID = r.nextID()
	}
	r.barbershops[shop.ID] = shop
	return shop
}

func (r *MemoryRepository) AddService(s models.Service) models.Service {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == 0 {
		s.ID = r.nextID()
	}
	r.services[s.ID] = s
	return s
}

func (r *MemoryRepository) AddStaff(s models.Staff) models.Staff {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == 0 {
		s.ID = r.nextID()
	}
	r.staff[s.ID] = s
	return s
}

func (r *MemoryRepository) AddWorkingHours(wh models.WorkingHours) models.WorkingHours {
	r.mu.Lock()
	defer r.mu.Unlock()
	if wh.ID == 0 {
		wh.ID = r.nextID()
	}
	r.workingHours = append(r.workingHours, wh)
	return wh
}

// AddAppointment grava sem checar conflito (fixtures).
func (r *MemoryRepository) AddAppointment(ap models.Appointment) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap.ID == 0 {
		ap.ID = r.nextID()
	}
	if ap.CreatedAt.IsZero() {
		ap.CreatedAt = time.Now()
	}
	r.appointments[ap.ID] = ap
	return ap
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *MemoryRepository) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shop, ok := r.barbershops[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &shop, nil
}

func (r *MemoryRepository) GetBarbershopBySlug(_ context.Context, slug string) (*models.Barbershop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, shop := range r.barbershops {
		if shop.Slug == slug && shop.Active {
			return &shop, nil
		}
	}
	return nil, domain.ErrNotFound
}

// --------------------------------------------------
// Service / Staff
// --------------------------------------------------

func (r *MemoryRepository) GetService(_ context.Context, barbershopID, serviceID uint) (*models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.services[serviceID]
	if !ok || s.BarbershopID != barbershopID || !s.Active {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) ListServices(_ context.Context, barbershopID uint) ([]models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Service{}
	for _, s := range r.services {
		if s.BarbershopID == barbershopID && s.Active {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) GetStaff(_ context.Context, barbershopID, staffID uint) (*models.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.staff[staffID]
	if !ok || s.BarbershopID != barbershopID || !s.Active {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) ListStaff(_ context.Context, barbershopID uint) ([]models.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Staff{}
	for _, s := range r.staff {
		if s.BarbershopID == barbershopID && s.Active {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *MemoryRepository) GetOrCreateClient(
	_ context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clients {
		if c.BarbershopID != barbershopID {
			continue
		}
		if (phone != "" && c.Phone == phone) || (phone == "" && email != "" && c.Email == email) {
			return &c, nil
		}
	}

	now := time.Now()
	c := models.Client{
		ID:           r.nextID(),
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.clients[c.ID] = c
	return &c, nil
}

func (r *MemoryRepository) ListClients(_ context.Context, barbershopID uint) ([]models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Client{}
	for _, c := range r.clients {
		if c.BarbershopID == barbershopID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *MemoryRepository) GetWorkingHours(
	_ context.Context,
	barbershopID uint,
	staffID uint,
	weekday int,
) (*models.WorkingHours, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var fallback *models.WorkingHours
	for i := range r.workingHours {
		wh := r.workingHours[i]
		if wh.BarbershopID != barbershopID || wh.Weekday != weekday {
			continue
		}
		if wh.StaffID != nil && *wh.StaffID == staffID {
			return &wh, nil
		}
		if wh.StaffID == nil && fallback == nil {
			fallback = &wh
		}
	}

	if fallback == nil {
		return nil, domain.ErrNotFound
	}
	return fallback, nil
}

func (r *MemoryRepository) ListActiveAppointments(
	_ context.Context,
	barbershopID uint,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.BarbershopID == barbershopID && ap.StaffID == staffID &&
			domain.Status(ap.Status).IsActive() &&
			ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, ap)
		}
	}
	sortByStart(out)
	return out, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

// CreateAppointment faz check-and-insert sob o mesmo lock.
func (r *MemoryRepository) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.appointments {
		if other.StaffID == ap.StaffID &&
			domain.Status(other.Status).IsActive() &&
			other.StartTime.Before(ap.EndTime) && other.EndTime.After(ap.StartTime) {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}
	}

	now := time.Now()
	ap.ID = r.nextID()
	ap.CreatedAt = now
	ap.UpdatedAt = now
	if ap.Status == "" {
		ap.Status = string(domain.InitialStatus())
	}

	stored := *ap
	stored.Barbershop = models.Barbershop{}
	stored.Client = models.Client{}
	stored.Service = models.Service{}
	stored.Staff = models.Staff{}
	r.appointments[ap.ID] = stored
	return nil
}

func (r *MemoryRepository) GetAppointment(_ context.Context, barbershopID, appointmentID uint) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ap, ok := r.appointments[appointmentID]
	if !ok || ap.BarbershopID != barbershopID {
		return nil, domain.ErrNotFound
	}
	r.hydrate(&ap)
	return &ap, nil
}

func (r *MemoryRepository) GetAppointmentByToken(_ context.Context, token string) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ap := range r.appointments {
		if ap.PublicToken != "" && ap.PublicToken == token {
			r.hydrate(&ap)
			return &ap, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryRepository) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[ap.ID]; !ok {
		return domain.ErrNotFound
	}

	stored := *ap
	stored.UpdatedAt = time.Now()
	stored.Barbershop = models.Barbershop{}
	stored.Client = models.Client{}
	stored.Service = models.Service{}
	stored.Staff = models.Staff{}
	r.appointments[ap.ID] = stored
	return nil
}

func (r *MemoryRepository) ListAppointmentsForPeriod(
	_ context.Context,
	barbershopID uint,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.BarbershopID != barbershopID {
			continue
		}
		if staffID != 0 && ap.StaffID != staffID {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		r.hydrate(&ap)
		out = append(out, ap)
	}
	sortByStart(out)
	return out, nil
}

func (r *MemoryRepository) ListAppointments(_ context.Context, barbershopID uint) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.BarbershopID == barbershopID {
			r.hydrate(&ap)
			out = append(out, ap)
		}
	}
	sortByStart(out)
	return out, nil
}

// hydrate preenche as associações como o Preload do gorm. Exige o lock.
func (r *MemoryRepository) hydrate(ap *models.Appointment) {
	ap.Barbershop = r.barbershops[ap.BarbershopID]
	ap.Client = r.clients[ap.ClientID]
	ap.Service = r.services[ap.ServiceID]
	ap.Staff = r.staff[ap.StaffID]
}

func sortByStart(aps []models.Appointment) {
	sort.Slice(aps, func(i, j int) bool {
		if aps[i].StartTime.Equal(aps[j].StartTime) {
			return aps[i].ID < aps[j].ID
		}
		return aps[i].StartTime.Before(aps[j].StartTime)
	})
}

var _ domain.Repository = (*MemoryRepository)(nil)
