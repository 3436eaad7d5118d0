package services

import (
	"fmt"
	"testing"
	"time"

	"petmarket-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory database with the full schema.
// The named shared-cache DSN keeps all pooled connections on one database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.Service{},
		&models.Product{},
		&models.Booking{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         models.RoleCustomer,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createBusiness(t *testing.T, db *gorm.DB, name string, owner *models.User) *models.Business {
	t.Helper()
	business := models.Business{Name: name, Category: "pets"}
	if owner != nil {
		business.OwnerID = &owner.ID
	}
	require.NoError(t, db.Create(&business).Error)
	return &business
}

func createService(t *testing.T, db *gorm.DB, business *models.Business, capacity int) *models.Service {
	t.Helper()
	service := models.Service{
		ItemBase: models.ItemBase{
			Name:       "Grooming",
			Price:      25,
			BusinessID: business.ID,
		},
		Capacity:        capacity,
		DurationMinutes: 30,
	}
	require.NoError(t, db.Create(&service).Error)
	return &service
}

func createProduct(t *testing.T, db *gorm.DB, business *models.Business, name string, price float64, stock *int) *models.Product {
	t.Helper()
	product := models.Product{
		ItemBase: models.ItemBase{
			Name:       name,
			Price:      price,
			BusinessID: business.ID,
		},
		StockQuantity: stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func intPtr(n int) *int { return &n }

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func notificationsFor(t *testing.T, db *gorm.DB, receiverID uuid.UUID) []models.Notification {
	t.Helper()
	var list []models.Notification
	require.NoError(t, db.Where("receiver_id = ?", receiverID).Order("created_at").Find(&list).Error)
	return list
}
