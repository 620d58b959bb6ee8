package models

type Role struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:10"`

	Users []User
}

// Имена ролей — единственный источник прав. Отдельного флага
// разрешений нет: админ это тот, у кого роль называется "admin".
const (
	RoleNameAdmin = "admin"
	RoleNameUser  = "user"
)

// Фиксированные ID ролей, создаются сидом и не меняются.
const (
	RoleUser  uint = 1
	RoleAdmin uint = 2
)
