package storage

import (
	"github.com/v/vacationCatalog/internal/models"
	"gorm.io/gorm"
)

type GormCountryRepo struct {
	db *gorm.DB
}

func (r *GormCountryRepo) All() ([]models.Country, error) {
	var countries []models.Country
	if err := r.db.Order("name asc").Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}

func (r *GormCountryRepo) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Country{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
