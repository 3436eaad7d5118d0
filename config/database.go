package config

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the store through any GORM dialector and makes it the shared
// handle. Tests point this at sqlite; ConnectDB wires postgres.
func Connect(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	DB = db
	return db, nil
}

func ConnectDB() {
	dsn := os.Getenv("DB_URL")

	if _, err := Connect(postgres.Open(dsn)); err != nil {
		panic("Failed to connect database")
	}
}
