package handler

import (
	"gasadmin/internal/app/config"
	"gasadmin/internal/app/mail"
	"gasadmin/internal/app/middleware"
	"gasadmin/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler обслуживает HTML-страницы админки заявок на газ
type Handler struct {
	Repository *repository.Repository
	Notifier   mail.Notifier
	Config     *config.Config
}

func NewHandler(r *repository.Repository, n mail.Notifier, cfg *config.Config) *Handler {
	return &Handler{
		Repository: r,
		Notifier:   n,
		Config:     cfg,
	}
}

// Регистрация статических файлов
func (h *Handler) RegisterStatic(router *gin.Engine) {
	router.LoadHTMLGlob("templates/*")
	router.Static("/static", "./resources")
}

// Регистрация маршрутов админки
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	admin := router.Group("/admin")
	admin.Use(middleware.CurrentUserMiddleware())

	admin.GET("/", h.GetAdminHome)
	admin.GET("/gas_requests", h.GetGasRequests)
	admin.GET("/gas_requests/create", h.GetGasRequestCreateForm)
	admin.POST("/gas_requests", h.CreateGasRequest)
	admin.GET("/gas_requests/:id/edit", h.GetGasRequestEditForm)
	admin.POST("/gas_requests/:id", h.UpdateGasRequest)
	admin.PUT("/gas_requests/:id", h.UpdateGasRequest)
	admin.POST("/gas_requests/:id/delete", h.DeleteGasRequest)
}

// Централизованная обработка ошибок
func (h *Handler) errorHandler(ctx *gin.Context, errorStatusCode int, err error) {
	logrus.Error(err.Error())
	ctx.JSON(errorStatusCode, gin.H{
		"status":      "error",
		"description": err.Error(),
	})
}
