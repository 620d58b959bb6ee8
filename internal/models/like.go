package models

// Like (Лайк) — связка пользователь/путёвка, уникальная на пару.
type Like struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"uniqueIndex:idx_likes_user_vacation"`
	VacationID uint `gorm:"uniqueIndex:idx_likes_user_vacation"`

	User     User     `gorm:"foreignKey:UserID"`
	Vacation Vacation `gorm:"foreignKey:VacationID"`
}
