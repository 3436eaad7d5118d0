package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemBase carries the fields Service and Product share. It is a structural
// convenience only; the two kinds stay distinct tables.
type ItemBase struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	BusinessID  uuid.UUID `gorm:"type:uuid;index;not null" json:"businessId"`
}

// Service is a bookable offering. Capacity is the maximum number of
// non-cancelled bookings per calendar day.
type Service struct {
	ItemBase
	Capacity        int `gorm:"not null" json:"capacity"`
	DurationMinutes int `json:"durationMinutes"`

	Business *Business `gorm:"foreignKey:BusinessID" json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Product is a sellable good. A nil StockQuantity means stock is not tracked.
type Product struct {
	ItemBase
	StockQuantity *int `json:"stockQuantity"`

	Business *Business `gorm:"foreignKey:BusinessID" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
