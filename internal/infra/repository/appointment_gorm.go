package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// notFound troca o erro do gorm pelo erro de domínio.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetBarbershopBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND active = true", slug).
		First(&shop).Error; err != nil {
		return nil, notFound(err)
	}
	return &shop, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	barbershopID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ? AND active = true", serviceID, barbershopID).
		First(&service).Error; err != nil {
		return nil, notFound(err)
	}
	return &service, nil
}

func (r *AppointmentGormRepository) ListServices(
	ctx context.Context,
	barbershopID uint,
) ([]models.Service, error) {

	var services []models.Service
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND active = true", barbershopID).
		Order("category ASC, name ASC").
		Find(&services).Error
	return services, err
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *AppointmentGormRepository) GetStaff(
	ctx context.Context,
	barbershopID uint,
	staffID uint,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ? AND active = true", staffID, barbershopID).
		First(&staff).Error; err != nil {
		return nil, notFound(err)
	}
	return &staff, nil
}

func (r *AppointmentGormRepository) ListStaff(
	ctx context.Context,
	barbershopID uint,
) ([]models.Staff, error) {

	var staff []models.Staff
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND active = true", barbershopID).
		Order("name ASC").
		Find(&staff).Error
	return staff, err
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client

	q := r.db.WithContext(ctx).Where("barbershop_id = ?", barbershopID)
	switch {
	case phone != "":
		q = q.Where("phone = ?", phone)
	case email != "":
		q = q.Where("email = ?", email)
	default:
		q = nil
	}

	if q != nil {
		err := q.First(&client).Error
		if err == nil {
			return &client, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	client = models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *AppointmentGormRepository) ListClients(
	ctx context.Context,
	barbershopID uint,
) ([]models.Client, error) {

	var clients []models.Client
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", barbershopID).
		Order("name ASC").
		Find(&clients).Error
	return clients, err
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	barbershopID uint,
	staffID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours

	// 1️⃣ expediente próprio do profissional
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND staff_id = ? AND weekday = ?", barbershopID, staffID, weekday).
		First(&wh).Error
	if err == nil {
		return &wh, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2️⃣ padrão da barbearia
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND staff_id IS NULL AND weekday = ?", barbershopID, weekday).
		First(&wh).Error; err != nil {
		return nil, notFound(err)
	}

	return &wh, nil
}

func (r *AppointmentGormRepository) ListActiveAppointments(
	ctx context.Context,
	barbershopID uint,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "staff_id", "start_time", "end_time", "status").
		Where(
			"barbershop_id = ? AND staff_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barbershopID, staffID, domain.ActiveStatuses, end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Appointment (create)
// --------------------------------------------------

// CreateAppointment serializa as criações por profissional com um
// advisory lock de transação. A exclusion constraint cobre o resto.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(ap.StaffID)).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Appointment{}).
			Where(
				"staff_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.StaffID, domain.ActiveStatuses, ap.EndTime, ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}

		return tx.Omit(clause.Associations).Create(ap).Error
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness(httperr.CodeSlotConflict)
	}
	return err
}

// --------------------------------------------------
// Appointment (read / state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Staff").
		Where("id = ? AND barbershop_id = ?", appointmentID, barbershopID).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByToken(
	ctx context.Context,
	token string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barbershop").
		Preload("Client").
		Preload("Service").
		Preload("Staff").
		Where("public_token = ?", token).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barbershopID uint,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Staff").
		Where(
			"barbershop_id = ? AND start_time >= ? AND start_time < ?",
			barbershopID, start, end,
		)

	if staffID != 0 {
		q = q.Where("staff_id = ?", staffID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	barbershopID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Staff").
		Where("barbershop_id = ?", barbershopID).
		Order("start_time ASC").
		Find(&apps).Error
	return apps, err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
