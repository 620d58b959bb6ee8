package storage

import (
	"errors"

	"github.com/v/vacationCatalog/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type UserRepo interface {
	ByID(id uint) (*models.User, error)
	ByEmail(email string) (*models.User, error)
	EmailTaken(email string) (bool, error)
	Create(user *models.User) error
	FindOrCreateByGoogle(googleID, email, firstName, lastName string) (*models.User, error)
}

type CountryRepo interface {
	All() ([]models.Country, error)
	Exists(id uint) (bool, error)
}

type VacationRepo interface {
	// ListByStartDate возвращает путёвки по возрастанию даты начала,
	// с числом лайков и отметкой лайка запрашивающего пользователя.
	ListByStartDate(userID uint) ([]models.Vacation, error)
	ByID(id uint) (*models.Vacation, error)
	Create(vacation *models.Vacation) error
	Update(vacation *models.Vacation) error
	Delete(id uint) error
}

type LikeRepo interface {
	// Toggle атомарно переключает лайк пары (user, vacation) и
	// возвращает новое состояние и итоговый счётчик.
	Toggle(userID, vacationID uint) (liked bool, count int64, err error)
}

// Repos — всё, что нужно хендлерам от базы.
type Repos struct {
	Users     UserRepo
	Countries CountryRepo
	Vacations VacationRepo
	Likes     LikeRepo
}

func NewRepos(db *gorm.DB) *Repos {
	return &Repos{
		Users:     &GormUserRepo{db: db},
		Countries: &GormCountryRepo{db: db},
		Vacations: &GormVacationRepo{db: db},
		Likes:     &GormLikeRepo{db: db},
	}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
