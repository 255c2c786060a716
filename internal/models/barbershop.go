package models

import "time"

type Barbershop struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	Slug              string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description       string    `gorm:"size:255" json:"description"`
	Phone             string    `gorm:"size:20" json:"phone"`
	Email             string    `gorm:"size:100" json:"email"`
	Address           string    `gorm:"size:255" json:"address"`
	City              string    `gorm:"size:100" json:"city"`
	Timezone          string    `gorm:"size:64" json:"timezone"`
	Currency          string    `gorm:"size:3;default:'BRL'" json:"currency"`
	LogoURL           string    `gorm:"size:255" json:"logo_url"`
	MinAdvanceMinutes int       `gorm:"default:120" json:"min_advance_minutes"`
	Active            bool      `gorm:"default:true" json:"active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
