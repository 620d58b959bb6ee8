package database

import (
	"github.com/v/vacationCatalog/internal/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Country{},
		&models.Vacation{},
		&models.Like{},
	)
}
