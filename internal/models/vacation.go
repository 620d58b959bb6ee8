package models

import (
	"time"

	"gorm.io/datatypes"
)

// Vacation (Путёвка)
type Vacation struct {
	ID          uint `gorm:"primaryKey"`
	CountryID   uint
	Country     Country        `gorm:"foreignKey:CountryID"`
	Description string         `gorm:"type:text"`
	StartDate   datatypes.Date `gorm:"index"`
	EndDate     datatypes.Date
	Price       float64 `gorm:"type:decimal(10,2)"`
	ImageFile   string  `gorm:"size:255"`

	Likes []Like `gorm:"constraint:OnDelete:CASCADE;"`

	// Заполняются при выдаче списка, в БД не хранятся.
	LikeCount int64 `gorm:"-"`
	UserLiked bool  `gorm:"-"`
}

func (v *Vacation) Starts() time.Time { return time.Time(v.StartDate) }
func (v *Vacation) Ends() time.Time   { return time.Time(v.EndDate) }

// DefaultImage подставляется при создании путёвки без картинки.
const DefaultImage = "default.jpg"
