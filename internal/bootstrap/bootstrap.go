package bootstrap

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"octofit.app/tracker/internal/entity"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Team{},
		&entity.Activity{},
		&entity.LeaderboardEntry{},
		&entity.Workout{},
	)
}

// SeedAdminUser creates the development admin account if it doesn't exist.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", "admin@octofit.edu").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	password := "admin123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := entity.User{
		Username:     "admin",
		Email:        "admin@octofit.edu",
		PasswordHash: string(hashedPasswordBytes),
		FirstName:    "Admin",
		FitnessLevel: entity.FitnessAdvanced,
		IsAdmin:      true,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("✅ Admin user seeded successfully")
	log.Println("   Email: admin@octofit.edu")
	log.Println("   Password: admin123")

	return nil
}
