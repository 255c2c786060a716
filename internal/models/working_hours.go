package models

import "time"

// Expediente por dia da semana. StaffID nulo é o padrão da barbearia;
// preenchido, sobrescreve o padrão para aquele profissional.
type WorkingHours struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	BarbershopID uint  `gorm:"index:idx_wh_scope" json:"barbershop_id"`
	StaffID      *uint `gorm:"index:idx_wh_scope" json:"staff_id"`

	Weekday int `gorm:"index:idx_wh_scope" json:"weekday"`

	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
