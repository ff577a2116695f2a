package repository

import (
	"gasadmin/internal/app/ds"
)

// Методы для работы с заявками на газ

// Получить все заявки, отсортированные по дате создания (новые первыми)
func (r *Repository) GetAllGasRequests() ([]ds.GasRequest, error) {
	var requests []ds.GasRequest
	err := r.db.Order("created_at DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// Получить заявку по ID
func (r *Repository) GetGasRequestByID(id uint) (*ds.GasRequest, error) {
	var request ds.GasRequest
	err := r.db.First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Создать новую заявку
func (r *Repository) CreateGasRequest(request *ds.GasRequest) error {
	return r.db.Create(request).Error
}

// Сохранить изменённую заявку
func (r *Repository) SaveGasRequest(request *ds.GasRequest) error {
	return r.db.Save(request).Error
}

// Физическое удаление заявки (без soft delete, восстановление невозможно)
func (r *Repository) DeleteGasRequest(request *ds.GasRequest) error {
	return r.db.Unscoped().Delete(request).Error
}

// Привязать к заявке имя файла со сканом
func (r *Repository) SetGasRequestDocument(id uint, objectName string) error {
	return r.db.Model(&ds.GasRequest{}).
		Where("id = ?", id).
		Update("document_url", objectName).Error
}
