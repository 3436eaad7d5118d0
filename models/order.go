package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order is the immutable snapshot of a completed checkout.
type Order struct {
	ID     uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID   `gorm:"type:uuid;index;not null" json:"userId"`
	User   *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status OrderStatus `gorm:"type:varchar(20);not null;default:'CONFIRMED'" json:"status"`
	Items  []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

// OrderItem records what was bought and at which price. PriceAtOrder is copied
// from the product at checkout and never tracks later price changes.
type OrderItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID      uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`
	ProductID    uuid.UUID `gorm:"type:uuid;index;not null" json:"productId"`
	Product      *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	PriceAtOrder float64   `gorm:"type:decimal(10,2);not null" json:"priceAtOrder"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return
}
