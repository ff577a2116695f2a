package dto

import (
	"strconv"
	"time"
)

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Заявки на газ: HTML-формы ============

const requestDateLayout = "2006-01-02"

// GasRequestForm — сырые значения формы создания/редактирования заявки.
// Поля хранятся строками, чтобы при ошибке валидации вернуть их
// в форму ровно в том виде, в каком их прислал пользователь.
type GasRequestForm struct {
	RequestDate     string `form:"request_date"`
	Month           string `form:"month"`
	PlannedVolume   string `form:"planned_volume"`
	Price           string `form:"price"`
	UserID          string `form:"user_id"`
	Comment         string `form:"comment"`
	Fio             string `form:"fio"`
	Email           string `form:"email"`
	Phone           string `form:"phone"`
	PaymentSchedule string `form:"payment_schedule"`
}

// Validate проверяет форму и возвращает сообщения об ошибках по полям.
// withRequestDate=true для создания заявки; при обновлении дата и
// пользователь не проверяются и не меняются.
// У месяца проверяется только верхняя граница (12) — так работала
// исходная админка, нижней границы у правила нет.
func (f *GasRequestForm) Validate(withRequestDate bool) map[string]string {
	formErrors := make(map[string]string)

	if withRequestDate {
		if f.RequestDate == "" {
			formErrors["request_date"] = "Поле обязательно для заполнения"
		} else if _, err := time.Parse(requestDateLayout, f.RequestDate); err != nil {
			formErrors["request_date"] = "Неверный формат даты"
		}
	}

	if f.Month == "" {
		formErrors["month"] = "Поле обязательно для заполнения"
	} else if month, err := strconv.Atoi(f.Month); err != nil {
		formErrors["month"] = "Месяц должен быть целым числом"
	} else if month > 12 {
		formErrors["month"] = "Месяц не может быть больше 12"
	}

	if f.PlannedVolume == "" {
		formErrors["planned_volume"] = "Поле обязательно для заполнения"
	} else if volume, err := strconv.ParseFloat(f.PlannedVolume, 64); err != nil {
		formErrors["planned_volume"] = "Значение должно быть числом"
	} else if volume < 1 {
		formErrors["planned_volume"] = "Значение должно быть не меньше 1"
	}

	if f.Price == "" {
		formErrors["price"] = "Поле обязательно для заполнения"
	} else if price, err := strconv.ParseFloat(f.Price, 64); err != nil {
		formErrors["price"] = "Значение должно быть числом"
	} else if price < 1 {
		formErrors["price"] = "Значение должно быть не меньше 1"
	}

	return formErrors
}

// Аксессоры для уже проверенной формы

func (f *GasRequestForm) ParsedRequestDate() time.Time {
	date, _ := time.Parse(requestDateLayout, f.RequestDate)
	return date
}

func (f *GasRequestForm) ParsedMonth() int {
	month, _ := strconv.Atoi(f.Month)
	return month
}

func (f *GasRequestForm) ParsedPlannedVolume() float64 {
	volume, _ := strconv.ParseFloat(f.PlannedVolume, 64)
	return volume
}

func (f *GasRequestForm) ParsedPrice() float64 {
	price, _ := strconv.ParseFloat(f.Price, 64)
	return price
}

func (f *GasRequestForm) ParsedUserID() uint {
	id, _ := strconv.ParseUint(f.UserID, 10, 32)
	return uint(id)
}

// ============ Заявки на газ: REST API ============

type GasRequestResponse struct {
	ID              uint    `json:"id"`
	RequestDate     string  `json:"request_date"`
	Month           int     `json:"month"`
	PlannedVolume   float64 `json:"planned_volume"`
	Price           float64 `json:"price"`
	UserID          uint    `json:"user_id"`
	Comment         string  `json:"comment,omitempty"`
	Fio             string  `json:"fio,omitempty"`
	Email           string  `json:"email,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	PaymentSchedule string  `json:"payment_schedule,omitempty"`
	DocumentURL     string  `json:"document_url,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type GasRequestListResponse struct {
	Requests []GasRequestResponse `json:"requests"`
	Total    int                  `json:"total"`
}

// Указатели на числовые поля, чтобы binding:"required" не отклонял
// месяц 0 — у правила месяца нет нижней границы.
type CreateGasRequestRequest struct {
	RequestDate     string   `json:"request_date" binding:"required"`
	Month           *int     `json:"month" binding:"required,lte=12"`
	PlannedVolume   *float64 `json:"planned_volume" binding:"required,gte=1"`
	Price           *float64 `json:"price" binding:"required,gte=1"`
	UserID          uint     `json:"user_id" binding:"required"`
	Comment         string   `json:"comment"`
	Fio             string   `json:"fio"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	PaymentSchedule string   `json:"payment_schedule"`
}

type UpdateGasRequestRequest struct {
	Month           *int     `json:"month" binding:"required,lte=12"`
	PlannedVolume   *float64 `json:"planned_volume" binding:"required,gte=1"`
	Price           *float64 `json:"price" binding:"required,gte=1"`
	Comment         string   `json:"comment"`
	Fio             string   `json:"fio"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	PaymentSchedule string   `json:"payment_schedule"`
}

// ============ Пользователи ============

type UserResponse struct {
	ID       uint   `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     int    `json:"role"`
}

type RegisterRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     int    `json:"role"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}
