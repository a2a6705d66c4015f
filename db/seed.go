package db

import (
	"log"

	"nestira/models"

	"golang.org/x/crypto/bcrypt"
)

// SeedAccounts creates the admin and demo accounts when missing.
func SeedAccounts(adminPassword, demoPassword string) {
	seedUser("admin", adminPassword, models.RoleAdmin)
	seedUser("demo", demoPassword, models.RoleDemo)
}

func seedUser(username, password, role string) {
	var existing models.User
	if err := DB.Where("username = ?", username).First(&existing).Error; err == nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash %s password: %v", username, err)
		return
	}

	if err := DB.Create(&models.User{
		Username: username,
		Password: string(hash),
		Role:     role,
	}).Error; err != nil {
		log.Printf("Failed to seed %s account: %v", username, err)
		return
	}
	log.Printf("%s account created", username)
}
