package storage

import (
	"github.com/v/vacationCatalog/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormVacationRepo struct {
	db *gorm.DB
}

func (r *GormVacationRepo) ListByStartDate(userID uint) ([]models.Vacation, error) {
	var vacations []models.Vacation
	err := r.db.Preload("Country").Order("start_date asc").Find(&vacations).Error
	if err != nil {
		return nil, err
	}

	// Счётчики одним запросом вместо N+1.
	type likeCount struct {
		VacationID uint
		Count      int64
	}
	var counts []likeCount
	err = r.db.Model(&models.Like{}).
		Select("vacation_id, count(*) as count").
		Group("vacation_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	countByID := make(map[uint]int64, len(counts))
	for _, c := range counts {
		countByID[c.VacationID] = c.Count
	}

	var likedIDs []uint
	err = r.db.Model(&models.Like{}).
		Where("user_id = ?", userID).
		Pluck("vacation_id", &likedIDs).Error
	if err != nil {
		return nil, err
	}
	liked := make(map[uint]bool, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = true
	}

	for i := range vacations {
		vacations[i].LikeCount = countByID[vacations[i].ID]
		vacations[i].UserLiked = liked[vacations[i].ID]
	}

	return vacations, nil
}

func (r *GormVacationRepo) ByID(id uint) (*models.Vacation, error) {
	var vacation models.Vacation
	if err := r.db.Preload("Country").First(&vacation, id).Error; err != nil {
		return nil, translate(err)
	}
	return &vacation, nil
}

func (r *GormVacationRepo) Create(vacation *models.Vacation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(vacation).Error
	})
}

func (r *GormVacationRepo) Update(vacation *models.Vacation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(vacation).Error
	})
}

func (r *GormVacationRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Лайки каскадятся внешним ключом; на случай базы без
		// каскада чистим их в той же транзакции.
		if err := tx.Where("vacation_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Vacation{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

type GormLikeRepo struct {
	db *gorm.DB
}

// Toggle выполняет переключение одной условной операцией: вставка с
// ON CONFLICT DO NOTHING; ноль затронутых строк значит лайк уже был —
// тогда удаляем. Два одновременных вызова не могут оба создать запись.
func (r *GormLikeRepo) Toggle(userID, vacationID uint) (bool, int64, error) {
	var liked bool
	var count int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "vacation_id"}},
			DoNothing: true,
		}).Create(&models.Like{UserID: userID, VacationID: vacationID})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected > 0 {
			liked = true
		} else {
			err := tx.Where("user_id = ? AND vacation_id = ?", userID, vacationID).
				Delete(&models.Like{}).Error
			if err != nil {
				return err
			}
			liked = false
		}

		return tx.Model(&models.Like{}).
			Where("vacation_id = ?", vacationID).
			Count(&count).Error
	})

	return liked, count, err
}
