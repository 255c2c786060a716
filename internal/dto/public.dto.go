package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Dados da página pública do agendamento. Não expõe ids internos do cliente.
type PublicAppointmentDTO struct {
	Token       string    `json:"token"`
	Status      string    `json:"status"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	ServiceName string    `json:"service_name"`
	StaffName   string    `json:"staff_name"`
	ClientName  string    `json:"client_name"`
	TotalPrice  float64   `json:"total_price"`
	Barbershop  struct {
		Name    string `json:"name"`
		Slug    string `json:"slug"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	} `json:"barbershop"`
}

func NewPublicAppointment(ap *models.Appointment) PublicAppointmentDTO {
	out := PublicAppointmentDTO{
		Token:       ap.PublicToken,
		Status:      ap.Status,
		StartTime:   ap.StartTime,
		EndTime:     ap.EndTime,
		ServiceName: ap.Service.Name,
		StaffName:   ap.Staff.Name,
		ClientName:  ap.Client.Name,
		TotalPrice:  ap.TotalPrice,
	}
	out.Barbershop.Name = ap.Barbershop.Name
	out.Barbershop.Slug = ap.Barbershop.Slug
	out.Barbershop.Phone = ap.Barbershop.Phone
	out.Barbershop.Address = ap.Barbershop.Address
	return out
}
