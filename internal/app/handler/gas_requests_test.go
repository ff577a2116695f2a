package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"gasadmin/internal/app/config"
	"gasadmin/internal/app/ds"
	"gasadmin/internal/app/handler"
	"gasadmin/internal/app/mail"
	"gasadmin/internal/app/repository"
	"gasadmin/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type sentMail struct {
	To          string
	TemplateTag string
	Subject     string
	Body        string
}

// fakeNotifier записывает отправленные письма вместо похода в SMTP
type fakeNotifier struct {
	sends []sentMail
}

func (f *fakeNotifier) Send(to, templateTag, subject, body string) error {
	f.sends = append(f.sends, sentMail{to, templateTag, subject, body})
	return nil
}

func setupTestServer(t *testing.T) (*gin.Engine, *repository.Repository, *fakeNotifier) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ds.User{}, &ds.GasRequest{}))

	repo := repository.NewWithDB(db)
	notifier := &fakeNotifier{}
	cfg := &config.Config{AppName: "ГазСервис"}

	h := handler.NewHandler(repo, notifier, cfg)
	router := gin.New()
	router.LoadHTMLGlob("../../../templates/*")
	h.RegisterRoutes(router)

	return router, repo, notifier
}

func seedUser(t *testing.T, repo *repository.Repository, login, email string) *ds.User {
	user, err := repo.CreateUser(login, "hash", "Иванов Иван", email, role.Client)
	require.NoError(t, err)
	return user
}

func seedRequest(t *testing.T, repo *repository.Repository, userID uint) *ds.GasRequest {
	request := &ds.GasRequest{
		RequestDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Month:         3,
		PlannedVolume: 500,
		Price:         12.5,
		UserID:        userID,
		Fio:           "Петров Пётр",
		Phone:         "+7 900 000-00-00",
	}
	require.NoError(t, repo.CreateGasRequest(request))
	return request
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetGasRequestsEmptyList(t *testing.T) {
	router, _, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/gas_requests", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Заявки на газ")
}

func TestGetGasRequestCreateForm(t *testing.T) {
	router, repo, _ := setupTestServer(t)
	seedUser(t, repo, "client1", "client1@example.com")

	req := httptest.NewRequest(http.MethodGet, "/admin/gas_requests/create", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// Форма содержит все 12 месяцев и список клиентов
	assert.Contains(t, w.Body.String(), "Январь")
	assert.Contains(t, w.Body.String(), "Декабрь")
	assert.Contains(t, w.Body.String(), "Иванов Иван")
}

func TestCreateGasRequest(t *testing.T) {
	router, repo, notifier := setupTestServer(t)
	user := seedUser(t, repo, "client1", "client1@example.com")

	w := postForm(router, "/admin/gas_requests", url.Values{
		"request_date":   {"2024-03-01"},
		"month":          {"3"},
		"planned_volume": {"500"},
		"price":          {"12.5"},
		"user_id":        {strconv.FormatUint(uint64(user.ID), 10)},
		"comment":        {"первая поставка"},
		"fio":            {"Петров Пётр"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/gas_requests/", w.Header().Get("Location"))

	requests, err := repo.GetAllGasRequests()
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "2024-03-01", requests[0].RequestDate.Format("2006-01-02"))
	assert.Equal(t, 3, requests[0].Month)
	assert.Equal(t, 500.0, requests[0].PlannedVolume)
	assert.Equal(t, 12.5, requests[0].Price)
	assert.Equal(t, user.ID, requests[0].UserID)
	assert.Equal(t, "первая поставка", requests[0].Comment)
	assert.Equal(t, "Петров Пётр", requests[0].Fio)

	// Письмо при создании не отправляется
	assert.Empty(t, notifier.sends)
}

func TestCreateGasRequestInvalidMonth(t *testing.T) {
	router, repo, _ := setupTestServer(t)
	user := seedUser(t, repo, "client1", "client1@example.com")

	w := postForm(router, "/admin/gas_requests", url.Values{
		"month":          {"13"},
		"planned_volume": {"500"},
		"price":          {"12.5"},
		"user_id":        {strconv.FormatUint(uint64(user.ID), 10)},
	})

	// Возвращается форма с ошибками, запись не создана
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Месяц не может быть больше 12")

	requests, err := repo.GetAllGasRequests()
	require.NoError(t, err)
	assert.Empty(t, requests)
}

// Нижней границы у месяца нет: ноль проходит валидацию и сохраняется
func TestCreateGasRequestMonthZero(t *testing.T) {
	router, repo, _ := setupTestServer(t)
	user := seedUser(t, repo, "client1", "client1@example.com")

	w := postForm(router, "/admin/gas_requests", url.Values{
		"request_date":   {"2024-03-01"},
		"month":          {"0"},
		"planned_volume": {"500"},
		"price":          {"12.5"},
		"user_id":        {strconv.FormatUint(uint64(user.ID), 10)},
	})

	assert.Equal(t, http.StatusFound, w.Code)

	requests, err := repo.GetAllGasRequests()
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, 0, requests[0].Month)
}

func TestCreateGasRequestPreservesInput(t *testing.T) {
	router, repo, _ := setupTestServer(t)
	seedUser(t, repo, "client1", "client1@example.com")

	w := postForm(router, "/admin/gas_requests", url.Values{
		"request_date":   {"2024-03-01"},
		"month":          {"3"},
		"planned_volume": {"500"},
		"price":          {"0"},
		"fio":            {"Сидоров Сидор"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// Введённые значения возвращаются в форму
	assert.Contains(t, w.Body.String(), "2024-03-01")
	assert.Contains(t, w.Body.String(), "Сидоров Сидор")
	assert.Contains(t, w.Body.String(), "Значение должно быть не меньше 1")
}

func TestGetGasRequestEditForm(t *testing.T) {
	router, repo, _ := setupTestServer(t)
	user := seedUser(t, repo, "client1", "client1@example.com")
	request := seedRequest(t, repo, user.ID)

	req := httptest.NewRequest(http.MethodGet, "/admin/gas_requests/"+strconv.FormatUint(uint64(request.ID), 10)+"/edit", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2024-03-01")
	assert.Contains(t, w.Body.String(), "Петров Пётр")
}

func TestGetGasRequestEditFormNotFound(t *testing.T) {
	router, _, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/gas_requests/999/edit", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Заявка не найдена")
}

func TestUpdateGasRequest(t *testing.T) {
	router, repo, notifier := setupTestServer(t)
	user := seedUser(t, repo, "client1", "client1@example.com")
	request := seedRequest(t, repo, user.ID)

	w := postForm(router, "/admin/gas_requests/"+strconv.FormatUint(uint64(request.ID), 10), url.Values{
		"month":            {"5"},
		"planned_volume":   {"700"},
		"price":            {"14"},
		"comment":          {"пересчитано"},
		"fio":              {"Петров Пётр"},
		"phone":            {"+7 900 000-00-00"},
		"payment_schedule": {"помесячно"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/", w.Header().Get("Location"))

	got, err := repo.GetGasRequestByID(request.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Month)
	assert.Equal(t, 700.0, got.PlannedVolume)
	assert.Equal(t, 14.0, got.Price)
	assert.Equal(t, "пересчитано", got.Comment)
	assert.Equal(t, "помесячно", got.PaymentSchedule)
	// Идентичность не меняется
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, "2024-03-01", got.RequestDate.Format("2006-01-02"))

	// Ровно одно письмо клиенту с тегом edit_admin_for_user
	require.Len(t, notifier.sends, 1)
	assert.Equal(t, "client1@example.com", notifier.sends[0].To)
	assert.Equal(t, mail.TagEditAdminForUser, notifier.sends[0].TemplateTag)
	assert.Equal(t, "Вашу заявку на газ обработали на сайте ГазСервис", notifier.sends[0].Subject)
	assert.Empty(t, notifier.sends[0].Body)
}

func TestUpdateGasRequestInvalidInputKeepsRecord(t *testing.T) {
	router, repo, notifier := setupTestServer(t)
	user := seedUser(t, repo, "client1", "client1@example.com")
	request := seedRequest(t, repo, user.ID)

	w := postForm(router, "/admin/gas_requests/"+strconv.FormatUint(uint64(request.ID), 10), url.Values{
		"month":          {"13"},
		"planned_volume": {"700"},
		"price":          {"14"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Месяц не может быть больше 12")

	// Запись осталась прежней, письмо не отправлялось
	got, err := repo.GetGasRequestByID(request.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Month)
	assert.Equal(t, 500.0, got.PlannedVolume)
	assert.Equal(t, 12.5, got.Price)
	assert.Empty(t, notifier.sends)
}

func TestUpdateGasRequestNotFound(t *testing.T) {
	router, _, notifier := setupTestServer(t)

	w := postForm(router, "/admin/gas_requests/999", url.Values{
		"month":          {"5"},
		"planned_volume": {"700"},
		"price":          {"14"},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, notifier.sends)
}

func TestDeleteGasRequest(t *testing.T) {
	router, repo, notifier := setupTestServer(t)
	user := seedUser(t, repo, "client1", "client1@example.com")
	request := seedRequest(t, repo, user.ID)

	w := postForm(router, "/admin/gas_requests/"+strconv.FormatUint(uint64(request.ID), 10)+"/delete", url.Values{})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/gas_requests/", w.Header().Get("Location"))

	// Запись удалена без возможности восстановления
	_, err := repo.GetGasRequestByID(request.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Ровно одно письмо клиенту с тегом delete
	require.Len(t, notifier.sends, 1)
	assert.Equal(t, "client1@example.com", notifier.sends[0].To)
	assert.Equal(t, mail.TagDelete, notifier.sends[0].TemplateTag)
	assert.Equal(t, "Удалили заявку на газ на сайте ГазСервис", notifier.sends[0].Subject)
}

func TestDeleteGasRequestNotFound(t *testing.T) {
	router, _, notifier := setupTestServer(t)

	w := postForm(router, "/admin/gas_requests/999/delete", url.Values{})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, notifier.sends)
}
