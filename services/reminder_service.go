package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"petmarket-backend/models"
	"petmarket-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService notifies customers about their next-day bookings. The SMS
// channel is active only when Twilio credentials are configured.
type ReminderService struct {
	db            *gorm.DB
	notifications *NotificationService
	client        *twilio.RestClient
	fromNumber    string
}

func NewReminderService(db *gorm.DB, notifications *NotificationService) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	var client *twilio.RestClient
	if accountSid != "" && authToken != "" {
		client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})
	}

	return &ReminderService{
		db:            db,
		notifications: notifications,
		client:        client,
		fromNumber:    os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

// StartScheduler runs the reminder job every day at 9 AM.
func (s *ReminderService) StartScheduler() {
	c := cron.New()
	c.AddFunc("0 9 * * *", s.SendBookingReminders)
	c.Start()
	log.Println("Booking reminder scheduler started")
}

// SendBookingReminders notifies every customer with a non-cancelled booking
// tomorrow. Failures are logged and skipped per booking.
func (s *ReminderService) SendBookingReminders() {
	tomorrow := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))

	var bookings []models.Booking
	err := s.db.Preload("User").Preload("Service.Business").
		Where("booking_time BETWEEN ? AND ? AND status <> ?",
			tomorrow, utils.EndOfDay(tomorrow), models.BookingCancelled).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Failed to fetch bookings for reminders: %v", err)
		return
	}

	for _, b := range bookings {
		if b.User == nil || b.Service == nil || b.Service.Business == nil {
			continue
		}
		msg := fmt.Sprintf("Reminder: you have a booking for %s at %s tomorrow at %s.",
			b.Service.Name, b.Service.Business.Name, b.BookingTime.Format("15:04"))
		if _, err := s.notifications.Create(msg, nil, b.UserID); err != nil {
			log.Printf("Reminder for booking %s failed: %v", b.ID, err)
			continue
		}
		s.sendSMS(b.User.PhoneNumber, msg)
	}
}

func (s *ReminderService) sendSMS(to, body string) {
	if s.client == nil || s.fromNumber == "" || to == "" {
		return
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.fromNumber)
	params.SetBody(body)
	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Printf("SMS to %s failed: %v", to, err)
	}
}
