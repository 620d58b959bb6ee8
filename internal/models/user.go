package models

type User struct {
	ID           uint   `gorm:"primaryKey"`
	FirstName    string `gorm:"size:50"`
	LastName     string `gorm:"size:50"`
	Email        string `gorm:"uniqueIndex;size:100"`
	PasswordHash string `gorm:"size:255"`
	IsActive     bool   `gorm:"default:true"`
	IsStaff      bool
	IsSuperuser  bool
	GoogleID     string `gorm:"size:255"`
	RoleID       uint
	Role         Role   `gorm:"foreignKey:RoleID"`
	Likes        []Like `gorm:"constraint:OnDelete:CASCADE;"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin требует предзагруженной роли (Preload("Role")).
func (u *User) IsAdmin() bool {
	return u.Role.Name == RoleNameAdmin
}
