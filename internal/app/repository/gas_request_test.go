package repository_test

import (
	"testing"
	"time"

	"gasadmin/internal/app/ds"
	"gasadmin/internal/app/repository"
	"gasadmin/internal/app/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) *repository.Repository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ds.User{}, &ds.GasRequest{}))
	return repository.NewWithDB(db)
}

func seedUser(t *testing.T, repo *repository.Repository, login string) *ds.User {
	user, err := repo.CreateUser(login, "hash", "Иванов Иван", login+"@example.com", role.Client)
	require.NoError(t, err)
	return user
}

func TestCreateAndGetGasRequest(t *testing.T) {
	repo := setupRepo(t)
	user := seedUser(t, repo, "client1")

	request := ds.GasRequest{
		RequestDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Month:         3,
		PlannedVolume: 500,
		Price:         12.5,
		UserID:        user.ID,
		Fio:           "Петров Пётр",
	}
	require.NoError(t, repo.CreateGasRequest(&request))
	assert.NotZero(t, request.ID)

	got, err := repo.GetGasRequestByID(request.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Month)
	assert.Equal(t, 500.0, got.PlannedVolume)
	assert.Equal(t, 12.5, got.Price)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, "Петров Пётр", got.Fio)
}

// Список заявок всегда отсортирован по дате создания, новые первыми
func TestGetAllGasRequestsOrder(t *testing.T) {
	repo := setupRepo(t)
	user := seedUser(t, repo, "client1")

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		request := ds.GasRequest{
			RequestDate:   base,
			Month:         i + 1,
			PlannedVolume: 100,
			Price:         10,
			UserID:        user.ID,
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.CreateGasRequest(&request))
	}

	requests, err := repo.GetAllGasRequests()
	require.NoError(t, err)
	require.Len(t, requests, 3)

	for i := 1; i < len(requests); i++ {
		assert.False(t, requests[i-1].CreatedAt.Before(requests[i].CreatedAt),
			"requests must be ordered by created_at descending")
	}
	assert.Equal(t, 3, requests[0].Month)
}

func TestSaveGasRequestKeepsIdentity(t *testing.T) {
	repo := setupRepo(t)
	user := seedUser(t, repo, "client1")

	request := ds.GasRequest{
		RequestDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Month:         3,
		PlannedVolume: 500,
		Price:         12.5,
		UserID:        user.ID,
	}
	require.NoError(t, repo.CreateGasRequest(&request))

	request.Month = 4
	request.Price = 15
	request.Comment = "обновлено"
	require.NoError(t, repo.SaveGasRequest(&request))

	got, err := repo.GetGasRequestByID(request.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Month)
	assert.Equal(t, 15.0, got.Price)
	assert.Equal(t, "обновлено", got.Comment)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, "2024-03-01", got.RequestDate.Format("2006-01-02"))
}

// Удаление физическое: повторный поиск по ID возвращает ErrRecordNotFound
func TestDeleteGasRequestIsPermanent(t *testing.T) {
	repo := setupRepo(t)
	user := seedUser(t, repo, "client1")

	request := ds.GasRequest{
		RequestDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Month:         3,
		PlannedVolume: 500,
		Price:         12.5,
		UserID:        user.ID,
	}
	require.NoError(t, repo.CreateGasRequest(&request))
	require.NoError(t, repo.DeleteGasRequest(&request))

	_, err := repo.GetGasRequestByID(request.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	requests, err := repo.GetAllGasRequests()
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestSetGasRequestDocument(t *testing.T) {
	repo := setupRepo(t)
	user := seedUser(t, repo, "client1")

	request := ds.GasRequest{
		RequestDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Month:         3,
		PlannedVolume: 500,
		Price:         12.5,
		UserID:        user.ID,
	}
	require.NoError(t, repo.CreateGasRequest(&request))

	require.NoError(t, repo.SetGasRequestDocument(request.ID, "request_abc_1.pdf"))

	got, err := repo.GetGasRequestByID(request.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DocumentURL)
	assert.Equal(t, "request_abc_1.pdf", *got.DocumentURL)
}

func TestGetAllUsers(t *testing.T) {
	repo := setupRepo(t)
	seedUser(t, repo, "client1")
	seedUser(t, repo, "client2")

	users, err := repo.GetAllUsers()
	require.NoError(t, err)
	assert.Len(t, users, 2)

	exists, err := repo.UserExistsByLogin("client1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.UserExistsByLogin("nobody")
	require.NoError(t, err)
	assert.False(t, exists)
}
