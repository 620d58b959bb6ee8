package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/v/vacationCatalog/internal/auth"
	"github.com/v/vacationCatalog/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seed наполняет базу стартовыми данными: роли, два пользователя,
// страны и путёвки с датами в будущем. Повторный запуск безопасен.
func Seed(db *gorm.DB) error {
	if err := seedRoles(db); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}

	if err := seedUsers(db); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	countries, err := seedCountries(db)
	if err != nil {
		return fmt.Errorf("seed countries: %w", err)
	}

	if err := seedVacations(db, countries); err != nil {
		return fmt.Errorf("seed vacations: %w", err)
	}

	return nil
}

func seedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{ID: models.RoleUser, Name: models.RoleNameUser},
		{ID: models.RoleAdmin, Name: models.RoleNameAdmin},
	}
	for _, role := range roles {
		if err := db.FirstOrCreate(&models.Role{}, role).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedUsers(db *gorm.DB) error {
	adminHash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}

	var admin models.User
	err = db.Where("email = ?", "admin@vacation.com").First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		admin = models.User{
			FirstName:    "Admin",
			LastName:     "User",
			Email:        "admin@vacation.com",
			PasswordHash: adminHash,
			IsActive:     true,
			IsStaff:      true,
			IsSuperuser:  true,
			RoleID:       models.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Println("Создан администратор:", admin.Email)
	} else if err != nil {
		return err
	} else {
		// Пароль админа всегда сбрасывается на известный из README.
		if err := db.Model(&admin).Update("password_hash", adminHash).Error; err != nil {
			return err
		}
	}

	var regular models.User
	err = db.Where("email = ?", "user@vacation.com").First(&regular).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		userHash, err := auth.HashPassword("user123")
		if err != nil {
			return err
		}
		regular = models.User{
			FirstName:    "Regular",
			LastName:     "User",
			Email:        "user@vacation.com",
			PasswordHash: userHash,
			IsActive:     true,
			RoleID:       models.RoleUser,
		}
		if err := db.Create(&regular).Error; err != nil {
			return err
		}
		log.Println("Создан пользователь:", regular.Email)
	} else if err != nil {
		return err
	}

	return nil
}

func seedCountries(db *gorm.DB) (map[string]models.Country, error) {
	names := []string{
		"Israel", "Spain", "Italy", "France", "Germany",
		"Japan", "Brazil", "Argentina", "United States",
		"Australia", "Colombia",
	}

	countries := make(map[string]models.Country, len(names))
	for _, name := range names {
		var country models.Country
		if err := db.FirstOrCreate(&country, models.Country{Name: name}).Error; err != nil {
			return nil, err
		}
		countries[name] = country
	}

	return countries, nil
}

type vacationSeed struct {
	country     string
	description string
	startOffset int // дни от базовой даты
	endOffset   int
	price       float64
	imageFile   string
}

func seedVacations(db *gorm.DB, countries map[string]models.Country) error {
	today := time.Now().Truncate(24 * time.Hour)
	base := today.AddDate(0, 0, 30)

	seeds := []vacationSeed{
		{"Israel", "Explore the vibrant city of Tel Aviv with its beautiful beaches, bustling markets, and rich history. Experience the perfect blend of ancient traditions and modern innovation.", 0, 9, 1500, "telaviv.jpg"},
		{"Spain", "Discover the heart of Spain in Madrid with its world-class museums, royal palaces, and incredible cuisine. Immerse yourself in the Spanish culture and lifestyle.", 15, 25, 1200, "madrid.jpg"},
		{"Italy", "You can create a dream vacation of famous artistic wonders and historic gems punctuated by top-notch dining in fabulous restaurants with a spirited vacation package.", 30, 39, 1800, "rome.jpg"},
		{"France", "Experience the romance and elegance of Paris, the City of Light. Visit iconic landmarks, enjoy world-class cuisine, and immerse yourself in French culture.", 45, 51, 2000, "paris.jpg"},
		{"Germany", "Explore Berlin, a city rich in history and culture. From historical sites to vibrant nightlife, Berlin offers something for every traveler.", 60, 67, 1400, "berlin.jpg"},
		{"Japan", "Discover the fascinating blend of traditional and modern Japan in Tokyo. Experience ancient temples, cutting-edge technology, and incredible cuisine.", 75, 88, 2500, "tokyo.jpg"},
		{"Brazil", "Experience the energy and beauty of Rio de Janeiro with its stunning beaches, vibrant culture, and iconic landmarks like Christ the Redeemer.", 90, 98, 2200, "rio.jpg"},
		{"Argentina", "Explore the passionate city of Buenos Aires with its European architecture, tango culture, and excellent cuisine. A perfect blend of culture and excitement.", 105, 112, 1900, "buenosaires.jpg"},
		{"United States", "Experience the energy of New York City, the city that never sleeps. From Broadway shows to world-class museums and diverse neighborhoods.", 120, 130, 1600, "nyc.jpg"},
		{"Australia", "Discover Sydney with its iconic Opera House, beautiful harbor, and laid-back Australian culture. Perfect for adventure seekers and culture enthusiasts.", 135, 145, 2300, "sydney.jpg"},
		{"Colombia", "Explore the vibrant city of Medellin, known for its perfect climate, innovative urban development, and warm Colombian hospitality.", 150, 157, 2100, "medellin.jpg"},
		{"United States", "Experience the glamour and sunshine of Los Angeles with its beautiful beaches, Hollywood attractions, and diverse culture.", 165, 175, 1800, "losangeles.jpg"},
	}

	for _, s := range seeds {
		country, ok := countries[s.country]
		if !ok {
			return fmt.Errorf("unknown seed country %q", s.country)
		}

		start := base.AddDate(0, 0, s.startOffset)

		// Ключ идемпотентности — страна + дата начала.
		var existing models.Vacation
		err := db.Where("country_id = ? AND start_date = ?", country.ID, start).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		vacation := models.Vacation{
			CountryID:   country.ID,
			Description: s.description,
			StartDate:   datatypes.Date(start),
			EndDate:     datatypes.Date(base.AddDate(0, 0, s.endOffset)),
			Price:       s.price,
			ImageFile:   s.imageFile,
		}
		if err := db.Create(&vacation).Error; err != nil {
			return err
		}
	}

	return nil
}
