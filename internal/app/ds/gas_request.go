package ds

import "time"

// 1. Таблица заявок на газ
type GasRequest struct {
	ID          uint      `gorm:"primaryKey"`
	RequestDate time.Time `gorm:"type:date;not null"` // Дата подачи заявки
	// Месяц поставки. Верхняя граница (12) проверяется на уровне формы,
	// нижняя граница исторически не проверяется.
	Month           int     `gorm:"type:int;not null"`
	PlannedVolume   float64 `gorm:"type:decimal(10,2);not null"` // Плановый объём, тыс. м3
	Price           float64 `gorm:"type:decimal(10,2);not null"` // Цена за единицу
	UserID          uint    `gorm:"not null;index"`              // Клиент, подавший заявку
	Comment         string  `gorm:"type:text"`
	Fio             string  `gorm:"type:varchar(100)"`
	Email           string  `gorm:"type:varchar(100)"`
	Phone           string  `gorm:"type:varchar(30)"`
	PaymentSchedule string  `gorm:"type:varchar(100)"`
	DocumentURL     *string `gorm:"type:varchar(255)"` // Скан заявки в MinIO (nullable)
	CreatedAt       time.Time

	User User `gorm:"foreignKey:UserID"`
}

// Month представляет месяц для выпадающего списка в формах
type Month struct {
	Value int
	Label string
}

// GetAllMonths возвращает фиксированный список из 12 месяцев
func GetAllMonths() []Month {
	return []Month{
		{1, "Январь"},
		{2, "Февраль"},
		{3, "Март"},
		{4, "Апрель"},
		{5, "Май"},
		{6, "Июнь"},
		{7, "Июль"},
		{8, "Август"},
		{9, "Сентябрь"},
		{10, "Октябрь"},
		{11, "Ноябрь"},
		{12, "Декабрь"},
	}
}
