package storage

import (
	"errors"

	"github.com/v/vacationCatalog/internal/auth"
	"github.com/v/vacationCatalog/internal/models"
	"gorm.io/gorm"
)

type GormUserRepo struct {
	db *gorm.DB
}

func (r *GormUserRepo) ByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Role").First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormUserRepo) ByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Role").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormUserRepo) EmailTaken(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *GormUserRepo) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		// Гонка двух одновременных регистраций на один email
		// упирается в уникальный индекс.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// FindOrCreateByGoogle ищет пользователя по Google ID, затем по email;
// если не найден — создаёт с ролью "user" и случайным паролем.
func (r *GormUserRepo) FindOrCreateByGoogle(googleID, email, firstName, lastName string) (*models.User, error) {
	var user models.User

	result := r.db.Preload("Role").Where("google_id = ?", googleID).First(&user)
	if result.Error == nil {
		return &user, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	result = r.db.Preload("Role").Where("email = ?", email).First(&user)
	if result.Error == nil {
		// Аккаунт с таким email уже есть — привязываем Google ID.
		if err := r.db.Model(&user).Update("google_id", googleID).Error; err != nil {
			return nil, err
		}
		user.GoogleID = googleID
		return &user, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	hash, err := auth.HashPassword(auth.RandomPassword())
	if err != nil {
		return nil, err
	}

	user = models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		GoogleID:     googleID,
		RoleID:       models.RoleUser,
	}
	if err := r.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return r.ByID(user.ID)
}
