package models

type Country struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:100"`

	Vacations []Vacation `gorm:"constraint:OnDelete:CASCADE;"`
}
