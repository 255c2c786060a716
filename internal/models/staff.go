package models

import "time"

// Profissional que atende na barbearia. UserID é preenchido quando
// o profissional também tem login (ex.: o dono).
type Staff struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	BarbershopID uint  `gorm:"index" json:"barbershop_id"`
	UserID       *uint `json:"user_id"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Email  string `gorm:"size:100" json:"email"`
	Phone  string `gorm:"size:20" json:"phone"`
	Role   string `gorm:"size:20;default:'barber'" json:"role"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
