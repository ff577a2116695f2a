package ds

import "gasadmin/internal/app/role"

// 2. Таблица пользователей
type User struct {
	ID       uint      `gorm:"primaryKey"`
	Login    string    `gorm:"type:varchar(50);unique;not null"`
	Password string    `gorm:"type:varchar(255);not null"` // SHA-1 хеш
	FullName string    `gorm:"type:varchar(100)"`
	Email    string    `gorm:"type:varchar(100)"` // Адрес для уведомлений по заявкам
	Role     role.Role `gorm:"type:int;default:0;not null"`
}
