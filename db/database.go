package db

import (
	"log"
	"os"
	"path/filepath"

	"nestira/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the database at dsn and runs migrations. Tests call this
// directly with an in-memory DSN.
func Connect(dsn string) error {
	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	return DB.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{}, &models.ProductImage{},
		&models.Order{}, &models.OrderItem{}, &models.Promotion{}, &models.Newsletters{},
	)
}

func InitDatabase(dbPath string) {
	// Ensure the directory exists (create if it doesn't)
	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal("Failed to create database directory:", err)
		}
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		log.Println("Database file does not exist, creating:", dbPath)
		file, err := os.Create(dbPath)
		if err != nil {
			log.Fatal("Failed to create database file:", err)
		}
		file.Close()
	}

	if err := Connect(dbPath); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	log.Println("Database connected successfully at", dbPath)
}
