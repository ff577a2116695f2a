package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"gasadmin/internal/app/config"
	"gasadmin/internal/app/ds"
	"gasadmin/internal/app/dto"
	"gasadmin/internal/app/mail"
	"gasadmin/internal/app/repository"
	"gasadmin/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// APIHandler содержит обработчики для REST API
type APIHandler struct {
	Repository  *repository.Repository
	MinIOClient *storage.MinIOClient
	AuthHandler *AuthHandler
	Notifier    mail.Notifier
	Config      *config.Config
}

func NewAPIHandler(r *repository.Repository, minioClient *storage.MinIOClient, authHandler *AuthHandler, n mail.Notifier, cfg *config.Config) *APIHandler {
	return &APIHandler{
		Repository:  r,
		MinIOClient: minioClient,
		AuthHandler: authHandler,
		Notifier:    n,
		Config:      cfg,
	}
}

// ============ Вспомогательные функции ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

func gasRequestToDTO(r *ds.GasRequest) dto.GasRequestResponse {
	resp := dto.GasRequestResponse{
		ID:              r.ID,
		RequestDate:     r.RequestDate.Format("2006-01-02"),
		Month:           r.Month,
		PlannedVolume:   r.PlannedVolume,
		Price:           r.Price,
		UserID:          r.UserID,
		Comment:         r.Comment,
		Fio:             r.Fio,
		Email:           r.Email,
		Phone:           r.Phone,
		PaymentSchedule: r.PaymentSchedule,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
	if r.DocumentURL != nil {
		resp.DocumentURL = *r.DocumentURL
	}
	return resp
}

// ============ ДОМЕН ЗАЯВКИ ============

// GetGasRequests получает список заявок
// @Summary Получение списка заявок
// @Description Возвращает все заявки на газ, новые первыми
// @Tags GasRequests
// @Produce json
// @Success 200 {object} dto.GasRequestListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/gas_requests [get]
func (h *APIHandler) GetGasRequests(c *gin.Context) {
	gasRequests, err := h.Repository.GetAllGasRequests()
	if err != nil {
		logrus.Error("Error getting gas requests: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения заявок")
		return
	}

	dtoRequests := make([]dto.GasRequestResponse, len(gasRequests))
	for i := range gasRequests {
		dtoRequests[i] = gasRequestToDTO(&gasRequests[i])
	}

	c.JSON(http.StatusOK, dto.GasRequestListResponse{
		Requests: dtoRequests,
		Total:    len(dtoRequests),
	})
}

// GetGasRequest получает одну заявку
// @Summary Получение заявки по ID
// @Description Возвращает детальную информацию о заявке на газ
// @Tags GasRequests
// @Produce json
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.GasRequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/gas_requests/{id} [get]
func (h *APIHandler) GetGasRequest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	gasRequest, err := h.Repository.GetGasRequestByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
		return
	}

	c.JSON(http.StatusOK, gasRequestToDTO(gasRequest))
}

// CreateGasRequest создает новую заявку
// @Summary Создание заявки
// @Description Создает новую заявку на газ от имени клиента
// @Tags GasRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGasRequestRequest true "Данные заявки"
// @Success 201 {object} dto.GasRequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/gas_requests [post]
func (h *APIHandler) CreateGasRequest(c *gin.Context) {
	var req dto.CreateGasRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	requestDate, err := time.Parse("2006-01-02", req.RequestDate)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат даты")
		return
	}

	newRequest := ds.GasRequest{
		RequestDate:     requestDate,
		Month:           *req.Month,
		PlannedVolume:   *req.PlannedVolume,
		Price:           *req.Price,
		UserID:          req.UserID,
		Comment:         req.Comment,
		Fio:             req.Fio,
		Email:           req.Email,
		Phone:           req.Phone,
		PaymentSchedule: req.PaymentSchedule,
	}
	if err := h.Repository.CreateGasRequest(&newRequest); err != nil {
		logrus.Error("Error creating gas request: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания заявки")
		return
	}

	c.JSON(http.StatusCreated, gasRequestToDTO(&newRequest))
}

// UpdateGasRequest обновляет заявку
// @Summary Обновление заявки
// @Description Обновляет поля заявки и уведомляет клиента письмом
// @Tags GasRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Param request body dto.UpdateGasRequestRequest true "Новые значения"
// @Success 200 {object} dto.GasRequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/gas_requests/{id} [put]
func (h *APIHandler) UpdateGasRequest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	var req dto.UpdateGasRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	gasRequest, err := h.Repository.GetGasRequestByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
			return
		}
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения заявки")
		return
	}

	// Дата подачи и пользователь не меняются
	gasRequest.Month = *req.Month
	gasRequest.PlannedVolume = *req.PlannedVolume
	gasRequest.Price = *req.Price
	gasRequest.Comment = req.Comment
	gasRequest.Fio = req.Fio
	gasRequest.Email = req.Email
	gasRequest.Phone = req.Phone
	gasRequest.PaymentSchedule = req.PaymentSchedule
	if err := h.Repository.SaveGasRequest(gasRequest); err != nil {
		logrus.Error("Error updating gas request: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления заявки")
		return
	}

	// Уведомляем клиента; запись уже сохранена
	gasRequestUser, err := h.Repository.GetUserByID(gasRequest.UserID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Клиент заявки не найден")
		return
	}
	err = h.Notifier.Send(
		gasRequestUser.Email,
		mail.TagEditAdminForUser,
		"Вашу заявку на газ обработали на сайте "+h.Config.AppName,
		"")
	if err != nil {
		logrus.Error("Error sending mail: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка отправки уведомления")
		return
	}

	c.JSON(http.StatusOK, gasRequestToDTO(gasRequest))
}

// DeleteGasRequest удаляет заявку
// @Summary Удаление заявки
// @Description Физически удаляет заявку и уведомляет клиента письмом
// @Tags GasRequests
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/gas_requests/{id} [delete]
func (h *APIHandler) DeleteGasRequest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	gasRequest, err := h.Repository.GetGasRequestByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
			return
		}
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения заявки")
		return
	}

	// Адрес клиента берём до удаления записи
	gasRequestUser, err := h.Repository.GetUserByID(gasRequest.UserID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Клиент заявки не найден")
		return
	}

	if err := h.Repository.DeleteGasRequest(gasRequest); err != nil {
		logrus.Error("Error deleting gas request: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка удаления заявки")
		return
	}

	err = h.Notifier.Send(
		gasRequestUser.Email,
		mail.TagDelete,
		"Удалили заявку на газ на сайте "+h.Config.AppName,
		"")
	if err != nil {
		logrus.Error("Error sending mail: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка отправки уведомления")
		return
	}

	h.successResponse(c, http.StatusOK, "заявка удалена", nil)
}

// ============ Сканы заявок ============

// UploadGasRequestDocument загружает скан заявки
// @Summary Загрузка скана заявки
// @Description Сохраняет скан заявки в MinIO и привязывает его к записи
// @Tags GasRequests
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Param document formData file true "Файл скана (pdf/jpg/png)"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/gas_requests/{id}/document [post]
func (h *APIHandler) UploadGasRequestDocument(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	gasRequest, err := h.Repository.GetGasRequestByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Файл не передан")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}

	objectName, err := h.MinIOClient.UploadDocument(fileData, fileHeader.Filename)
	if err != nil {
		logrus.Error("Error uploading document: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка загрузки скана")
		return
	}

	// Старый скан больше не нужен
	if gasRequest.DocumentURL != nil && *gasRequest.DocumentURL != "" {
		if err := h.MinIOClient.DeleteDocument(*gasRequest.DocumentURL); err != nil {
			logrus.Error(err)
		}
	}

	if err := h.Repository.SetGasRequestDocument(uint(id), objectName); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка сохранения скана")
		return
	}

	h.successResponse(c, http.StatusOK, "скан загружен", gin.H{"document_url": objectName})
}

// GetGasRequestDocument возвращает временную ссылку на скан
// @Summary Ссылка на скан заявки
// @Description Возвращает временный URL для скачивания скана (1 час)
// @Tags GasRequests
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/gas_requests/{id}/document [get]
func (h *APIHandler) GetGasRequestDocument(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	gasRequest, err := h.Repository.GetGasRequestByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
		return
	}

	if gasRequest.DocumentURL == nil || *gasRequest.DocumentURL == "" {
		h.errorResponse(c, http.StatusNotFound, "У заявки нет скана")
		return
	}

	url, err := h.MinIOClient.GetDocumentURL(*gasRequest.DocumentURL)
	if err != nil {
		logrus.Error("Error generating document URL: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения ссылки")
		return
	}

	h.successResponse(c, http.StatusOK, "", gin.H{"url": url})
}
