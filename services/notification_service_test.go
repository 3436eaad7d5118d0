package services

import (
	"testing"
	"time"

	"petmarket-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNotification(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	receiver := createUser(t, db, "receiver")
	sender := createUser(t, db, "sender")

	t.Run("unknown receiver fails", func(t *testing.T) {
		_, err := svc.Create("hello", nil, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("nil sender is allowed", func(t *testing.T) {
		n, err := svc.Create("system message", nil, receiver.ID)
		require.NoError(t, err)
		assert.Nil(t, n.SenderID)
		assert.False(t, n.Dismissed)
	})

	t.Run("unresolvable sender becomes none", func(t *testing.T) {
		ghost := uuid.New()
		n, err := svc.Create("who sent this", &ghost, receiver.ID)
		require.NoError(t, err)
		assert.Nil(t, n.SenderID)
	})

	t.Run("known sender is kept", func(t *testing.T) {
		n, err := svc.Create("hi", &sender.ID, receiver.ID)
		require.NoError(t, err)
		require.NotNil(t, n.SenderID)
		assert.Equal(t, sender.ID, *n.SenderID)
	})
}

func TestGetByReceiver(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	receiver := createUser(t, db, "receiver")
	other := createUser(t, db, "other")

	first, err := svc.Create("first", nil, receiver.ID)
	require.NoError(t, err)
	second, err := svc.Create("second", nil, receiver.ID)
	require.NoError(t, err)
	_, err = svc.Create("elsewhere", nil, other.ID)
	require.NoError(t, err)

	// Force distinct timestamps so the ordering is deterministic.
	require.NoError(t, db.Model(&models.Notification{}).Where("id = ?", first.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	list, err := svc.GetByReceiver(receiver.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)
	assert.Equal(t, "first", list[1].Message)

	// Dismissed notifications drop out of the listing.
	require.NoError(t, svc.Dismiss(second.ID, receiver.ID))
	list, err = svc.GetByReceiver(receiver.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "first", list[0].Message)
}

func TestDismiss(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	receiver := createUser(t, db, "receiver")
	stranger := createUser(t, db, "stranger")

	n, err := svc.Create("dismiss me", nil, receiver.ID)
	require.NoError(t, err)

	reload := func() models.Notification {
		var out models.Notification
		require.NoError(t, db.First(&out, "id = ?", n.ID).Error)
		return out
	}

	t.Run("unknown notification is a no-op", func(t *testing.T) {
		assert.NoError(t, svc.Dismiss(uuid.New(), receiver.ID))
	})

	t.Run("non-receiver cannot dismiss", func(t *testing.T) {
		require.NoError(t, svc.Dismiss(n.ID, stranger.ID))
		assert.False(t, reload().Dismissed)
	})

	t.Run("receiver dismisses, idempotently", func(t *testing.T) {
		require.NoError(t, svc.Dismiss(n.ID, receiver.ID))
		assert.True(t, reload().Dismissed)
		require.NoError(t, svc.Dismiss(n.ID, receiver.ID))
		assert.True(t, reload().Dismissed)
	})
}

func TestNotifyBookingCreatedDisplayName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	owner := createUser(t, db, "owner")
	business := createBusiness(t, db, "Paws & Claws", owner)
	service := createService(t, db, business, 5)

	t.Run("prefers the full name", func(t *testing.T) {
		customer := createUser(t, db, "named")
		customer.FullName = "Jamie Doe"
		require.NoError(t, db.Save(customer).Error)

		booking := models.Booking{
			UserID: customer.ID, ServiceID: service.ID,
			BookingTime: at(2025, time.June, 1, 10), Status: models.BookingPending,
		}
		require.NoError(t, db.Create(&booking).Error)
		require.NoError(t, svc.NotifyBookingCreated(booking.ID))

		list := notificationsFor(t, db, owner.ID)
		assert.Equal(t, "A new booking has been made at Paws & Claws by Jamie Doe.", list[len(list)-1].Message)
	})

	t.Run("falls back to the username", func(t *testing.T) {
		customer := createUser(t, db, "plainuser")

		booking := models.Booking{
			UserID: customer.ID, ServiceID: service.ID,
			BookingTime: at(2025, time.June, 2, 10), Status: models.BookingPending,
		}
		require.NoError(t, db.Create(&booking).Error)
		require.NoError(t, svc.NotifyBookingCreated(booking.ID))

		list := notificationsFor(t, db, owner.ID)
		assert.Equal(t, "A new booking has been made at Paws & Claws by plainuser.", list[len(list)-1].Message)
	})

	t.Run("missing booking fails", func(t *testing.T) {
		assert.Error(t, svc.NotifyBookingCreated(uuid.New()))
	})
}
