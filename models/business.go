package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Business struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `json:"category"`

	// Full address (street, city, postal code, country) for display.
	Address      string `json:"address"`
	ContactPhone string `json:"contactPhone"`
	ContactEmail string `json:"contactEmail"`

	OwnerID *uuid.UUID `gorm:"type:uuid;index" json:"ownerId"`
	Owner   *User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Services []Service `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"services,omitempty"`
	Products []Product `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"products,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Business) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
