package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is a best-effort informational record delivered to a user.
// Only the dismissed flag is ever mutated, and only by the receiver.
type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Message string    `gorm:"type:text;not null" json:"message"`

	SenderID   *uuid.UUID `gorm:"type:uuid;index" json:"senderId"`
	Sender     *User      `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	ReceiverID uuid.UUID  `gorm:"type:uuid;index;not null" json:"receiverId"`
	Receiver   *User      `gorm:"foreignKey:ReceiverID" json:"-"`

	Dismissed bool      `gorm:"not null;default:false" json:"dismissed"`
	CreatedAt time.Time `json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
