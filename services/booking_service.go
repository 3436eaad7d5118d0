package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"petmarket-backend/models"
	"petmarket-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewBookingService(db *gorm.DB, notifications *NotificationService) *BookingService {
	return &BookingService{db: db, notifications: notifications}
}

// CreateBooking re-checks availability for the booking's day and persists the
// booking as PENDING. The check and insert share a transaction but take no
// row lock, so two concurrent callers can both pass the check.
func (s *BookingService) CreateBooking(booking *models.Booking) (*models.Booking, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		available, err := isAvailable(tx, booking.ServiceID, booking.BookingTime)
		if err != nil {
			return err
		}
		if !available {
			return fmt.Errorf("%w: Service is full for the selected date", ErrConflict)
		}
		booking.Status = models.BookingPending
		return tx.Create(booking).Error
	})
	if err != nil {
		return nil, err
	}

	// Best effort: a failed notification never fails the booking.
	if err := s.notifications.NotifyBookingCreated(booking.ID); err != nil {
		log.Printf("booking %s: owner notification failed: %v", booking.ID, err)
	}
	return booking, nil
}

// IsAvailable reports whether the service still has capacity on the given
// calendar day.
func (s *BookingService) IsAvailable(serviceID uuid.UUID, date time.Time) (bool, error) {
	return isAvailable(s.db, serviceID, date)
}

func isAvailable(db *gorm.DB, serviceID uuid.UUID, date time.Time) (bool, error) {
	var service models.Service
	if err := db.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: service %s", ErrNotFound, serviceID)
		}
		return false, err
	}

	var count int64
	err := db.Model(&models.Booking{}).
		Where("service_id = ? AND booking_time BETWEEN ? AND ? AND status <> ?",
			serviceID, utils.BeginningOfDay(date), utils.EndOfDay(date), models.BookingCancelled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count < int64(service.Capacity), nil
}

// GetFullDates walks [start, end] day by day and returns the dates with no
// remaining capacity. Empty when start is after end.
func (s *BookingService) GetFullDates(serviceID uuid.UUID, start, end time.Time) ([]time.Time, error) {
	var full []time.Time
	last := utils.BeginningOfDay(end)
	for d := utils.BeginningOfDay(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		available, err := isAvailable(s.db, serviceID, d)
		if err != nil {
			return nil, err
		}
		if !available {
			full = append(full, d)
		}
	}
	return full, nil
}

func (s *BookingService) GetBookingsByUser(userID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Service").
		Where("user_id = ?", userID).
		Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) GetBookingsByBusiness(businessID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Select("bookings.*").
		Preload("User").Preload("Service").
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("services.business_id = ?", businessID).
		Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) GetBookingsByBusinessAndDate(businessID uuid.UUID, date time.Time) ([]models.Booking, error) {
	return s.GetBookingsByBusinessInRange(businessID, date, date)
}

func (s *BookingService) GetBookingsByBusinessInRange(businessID uuid.UUID, start, end time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Select("bookings.*").
		Preload("User").Preload("Service").
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("services.business_id = ? AND bookings.booking_time BETWEEN ? AND ?",
			businessID, utils.BeginningOfDay(start), utils.EndOfDay(end)).
		Find(&bookings).Error
	return bookings, err
}

// UpdateStatus sets the booking's status. A missing booking is a silent
// no-op; callers needing confirmation must re-read. Cancelling notifies the
// business owner, best effort.
func (s *BookingService) UpdateStatus(bookingID uuid.UUID, status models.BookingStatus) error {
	updated := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.First(&b, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Model(&b).Update("status", status).Error; err != nil {
			return err
		}
		updated = true
		return nil
	})
	if err != nil {
		return err
	}

	if updated && status == models.BookingCancelled {
		if err := s.notifications.NotifyBookingCancelledByUser(bookingID); err != nil {
			log.Printf("booking %s: cancellation notification failed: %v", bookingID, err)
		}
	}
	return nil
}

// DeleteBooking permanently removes a booking, e.g. when the store owner
// dismisses it. The customer is notified first, best effort.
func (s *BookingService) DeleteBooking(bookingID uuid.UUID) error {
	var b models.Booking
	if err := s.db.First(&b, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
		}
		return err
	}

	if err := s.notifications.NotifyBookingCancelledByBusiness(bookingID); err != nil {
		log.Printf("booking %s: customer notification failed: %v", bookingID, err)
	}
	return s.db.Delete(&models.Booking{}, "id = ?", bookingID).Error
}
