package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint       `gorm:"index" json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	StaffID uint  `gorm:"index" json:"staff_id"`
	Staff   Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StartTime   time.Time `gorm:"index" json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	DurationMin int       `json:"duration_min"`

	Status     string  `gorm:"size:20;default:'scheduled'" json:"status"`
	TotalPrice float64 `json:"total_price"`

	// Token usado na página pública do agendamento
	PublicToken string `gorm:"size:36;uniqueIndex" json:"public_token"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
