package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gasadmin/internal/app/ds"
	"gasadmin/internal/app/dto"
	"gasadmin/internal/app/mail"
	"gasadmin/internal/app/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Главная страница админки, сюда ведёт редирект после обновления заявки
func (h *Handler) GetAdminHome(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "admin_home.html", gin.H{
		"user": middleware.GetUserFromContext(ctx),
	})
}

// 1. Список заявок, новые первыми
func (h *Handler) GetGasRequests(ctx *gin.Context) {
	gasRequests, err := h.Repository.GetAllGasRequests()
	if err != nil {
		logrus.Error(err)
	}

	ctx.HTML(http.StatusOK, "gas_requests.html", gin.H{
		"gasRequests": gasRequests,
		"user":        middleware.GetUserFromContext(ctx),
	})
}

// 2. Форма создания заявки
func (h *Handler) GetGasRequestCreateForm(ctx *gin.Context) {
	users, err := h.Repository.GetAllUsers()
	if err != nil {
		logrus.Error(err)
	}

	ctx.HTML(http.StatusOK, "gas_request_create.html", gin.H{
		"form":   &dto.GasRequestForm{},
		"errors": map[string]string{},
		"users":  users,
		"months": ds.GetAllMonths(),
	})
}

// 3. Создание заявки
func (h *Handler) CreateGasRequest(ctx *gin.Context) {
	var form dto.GasRequestForm
	if err := ctx.ShouldBind(&form); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	// Если валидация не пройдена, возвращаем форму с введёнными
	// значениями и списком ошибок; заявка не создаётся
	if formErrors := form.Validate(true); len(formErrors) > 0 {
		users, _ := h.Repository.GetAllUsers()
		ctx.HTML(http.StatusBadRequest, "gas_request_create.html", gin.H{
			"form":   &form,
			"errors": formErrors,
			"users":  users,
			"months": ds.GetAllMonths(),
		})
		return
	}

	// Создаём новую заявку из всех переданных полей
	newRequest := ds.GasRequest{
		RequestDate:     form.ParsedRequestDate(),
		Month:           form.ParsedMonth(),
		PlannedVolume:   form.ParsedPlannedVolume(),
		Price:           form.ParsedPrice(),
		UserID:          form.ParsedUserID(),
		Comment:         form.Comment,
		Fio:             form.Fio,
		Email:           form.Email,
		Phone:           form.Phone,
		PaymentSchedule: form.PaymentSchedule,
	}
	if err := h.Repository.CreateGasRequest(&newRequest); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.Redirect(http.StatusFound, "/admin/gas_requests/")
}

// 4. Форма редактирования заявки
func (h *Handler) GetGasRequestEditForm(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.HTML(http.StatusBadRequest, "error.html", gin.H{"error": "Неверный ID заявки"})
		return
	}

	gasRequest, err := h.Repository.GetGasRequestByID(uint(id))
	if err != nil {
		ctx.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Заявка не найдена"})
		return
	}

	users, err := h.Repository.GetAllUsers()
	if err != nil {
		logrus.Error(err)
	}

	ctx.HTML(http.StatusOK, "gas_request_edit.html", gin.H{
		"requestID": gasRequest.ID,
		"form":      formFromRequest(gasRequest),
		"errors":    map[string]string{},
		"users":     users,
		"months":    ds.GetAllMonths(),
	})
}

// 5. Обновление заявки. Дата подачи и пользователь не меняются.
// После сохранения клиенту уходит письмо об обработке заявки.
func (h *Handler) UpdateGasRequest(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.HTML(http.StatusBadRequest, "error.html", gin.H{"error": "Неверный ID заявки"})
		return
	}

	var form dto.GasRequestForm
	if err := ctx.ShouldBind(&form); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	// Если валидация не пройдена, возвращаем форму редактирования
	// с введёнными значениями и ошибками; запись остаётся прежней
	if formErrors := form.Validate(false); len(formErrors) > 0 {
		users, _ := h.Repository.GetAllUsers()
		ctx.HTML(http.StatusBadRequest, "gas_request_edit.html", gin.H{
			"requestID": uint(id),
			"form":      &form,
			"errors":    formErrors,
			"users":     users,
			"months":    ds.GetAllMonths(),
		})
		return
	}

	gasRequest, err := h.Repository.GetGasRequestByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Заявка не найдена"})
			return
		}
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	gasRequest.Month = form.ParsedMonth()
	gasRequest.PlannedVolume = form.ParsedPlannedVolume()
	gasRequest.Price = form.ParsedPrice()
	gasRequest.Comment = form.Comment
	gasRequest.Fio = form.Fio
	gasRequest.Email = form.Email
	gasRequest.Phone = form.Phone
	gasRequest.PaymentSchedule = form.PaymentSchedule
	if err := h.Repository.SaveGasRequest(gasRequest); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	// Находим клиента, подавшего заявку, и уведомляем его об обработке.
	// Запись уже сохранена: ошибка отправки не откатывает изменения.
	gasRequestUser, err := h.Repository.GetUserByID(gasRequest.UserID)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	err = h.Notifier.Send(
		gasRequestUser.Email,
		mail.TagEditAdminForUser,
		"Вашу заявку на газ обработали на сайте "+h.Config.AppName,
		"")
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.Redirect(http.StatusFound, "/admin/")
}

// 6. Физическое удаление заявки с уведомлением клиента.
// Адрес клиента берём до удаления записи.
func (h *Handler) DeleteGasRequest(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.HTML(http.StatusBadRequest, "error.html", gin.H{"error": "Неверный ID заявки"})
		return
	}

	gasRequest, err := h.Repository.GetGasRequestByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Заявка не найдена"})
			return
		}
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	gasRequestUser, err := h.Repository.GetUserByID(gasRequest.UserID)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	if err := h.Repository.DeleteGasRequest(gasRequest); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	err = h.Notifier.Send(
		gasRequestUser.Email,
		mail.TagDelete,
		"Удалили заявку на газ на сайте "+h.Config.AppName,
		"")
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.Redirect(http.StatusFound, "/admin/gas_requests/")
}

// formFromRequest заполняет форму редактирования значениями записи
func formFromRequest(r *ds.GasRequest) *dto.GasRequestForm {
	return &dto.GasRequestForm{
		RequestDate:     r.RequestDate.Format("2006-01-02"),
		Month:           strconv.Itoa(r.Month),
		PlannedVolume:   strconv.FormatFloat(r.PlannedVolume, 'f', -1, 64),
		Price:           strconv.FormatFloat(r.Price, 'f', -1, 64),
		UserID:          strconv.FormatUint(uint64(r.UserID), 10),
		Comment:         r.Comment,
		Fio:             r.Fio,
		Email:           r.Email,
		Phone:           r.Phone,
		PaymentSchedule: r.PaymentSchedule,
	}
}
