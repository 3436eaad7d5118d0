package services

import (
	"errors"
	"fmt"
	"strings"

	"petmarket-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Create persists a notification. senderID may be nil (system notifications);
// a sender id that no longer resolves is silently dropped.
func (s *NotificationService) Create(message string, senderID *uuid.UUID, receiverID uuid.UUID) (*models.Notification, error) {
	var receiver models.User
	if err := s.db.First(&receiver, "id = ?", receiverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: receiver user %s", ErrNotFound, receiverID)
		}
		return nil, err
	}

	n := models.Notification{Message: message, ReceiverID: receiverID}
	if senderID != nil {
		var sender models.User
		if err := s.db.First(&sender, "id = ?", *senderID).Error; err == nil {
			n.SenderID = senderID
		}
	}

	if err := s.db.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// GetByReceiver lists the user's undismissed notifications, newest first.
func (s *NotificationService) GetByReceiver(receiverID uuid.UUID) ([]models.Notification, error) {
	var list []models.Notification
	err := s.db.Where("receiver_id = ? AND dismissed = ?", receiverID, false).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// Dismiss marks a notification as read. A missing notification, or a caller
// who is not the receiver, is a no-op.
func (s *NotificationService) Dismiss(notificationID, userID uuid.UUID) error {
	var n models.Notification
	if err := s.db.First(&n, "id = ?", notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if n.ReceiverID != userID {
		return nil
	}
	return s.db.Model(&n).Update("dismissed", true).Error
}

// NotifyBookingCreated tells the business owner a booking was made at their
// store, addressed with the customer's display name.
func (s *NotificationService) NotifyBookingCreated(bookingID uuid.UUID) error {
	var b models.Booking
	err := s.db.Preload("User").Preload("Service.Business.Owner").
		First(&b, "id = ?", bookingID).Error
	if err != nil {
		return err
	}
	if b.User == nil || b.Service == nil || b.Service.Business == nil || b.Service.Business.OwnerID == nil {
		return fmt.Errorf("booking %s: missing user or business owner", bookingID)
	}

	storeName := b.Service.Business.Name
	if strings.TrimSpace(storeName) == "" {
		storeName = "your store"
	}
	msg := fmt.Sprintf("A new booking has been made at %s by %s.", storeName, b.User.DisplayName())
	_, err = s.Create(msg, &b.UserID, *b.Service.Business.OwnerID)
	return err
}

// NotifyBookingCancelledByBusiness tells the customer their booking was
// cancelled by the business.
func (s *NotificationService) NotifyBookingCancelledByBusiness(bookingID uuid.UUID) error {
	var b models.Booking
	if err := s.db.First(&b, "id = ?", bookingID).Error; err != nil {
		return err
	}
	_, err := s.Create("Your booking has been cancelled by the business.", nil, b.UserID)
	return err
}

// NotifyBookingCancelledByUser tells the business owner a customer cancelled.
func (s *NotificationService) NotifyBookingCancelledByUser(bookingID uuid.UUID) error {
	var b models.Booking
	err := s.db.Preload("Service.Business.Owner").First(&b, "id = ?", bookingID).Error
	if err != nil {
		return err
	}
	if b.Service == nil || b.Service.Business == nil || b.Service.Business.OwnerID == nil {
		return fmt.Errorf("booking %s: missing business owner", bookingID)
	}
	_, err = s.Create("A customer has cancelled their booking.", &b.UserID, *b.Service.Business.OwnerID)
	return err
}

// NotifyProductPurchase tells a business owner about a checkout covering
// their products.
func (s *NotificationService) NotifyProductPurchase(buyerID, ownerID uuid.UUID, message string) error {
	if message == "" {
		message = "A customer has purchased products."
	}
	_, err := s.Create(message, &buyerID, ownerID)
	return err
}
