package handler

import (
	"gasadmin/internal/app/middleware"
	"gasadmin/internal/app/role"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	// ============ Заявки на газ ============
	gasRequests := api.Group("/gas_requests")
	{
		// Чтение для всех авторизованных пользователей
		gasRequests.GET("", authMiddleware.WithAuthCheck(role.Client, role.Operator, role.Admin), h.GetGasRequests)
		gasRequests.GET("/:id", authMiddleware.WithAuthCheck(role.Client, role.Operator, role.Admin), h.GetGasRequest)

		// Мутации только для операторов и администраторов
		gasRequests.POST("", authMiddleware.WithAuthCheck(role.Operator, role.Admin), h.CreateGasRequest)
		gasRequests.PUT("/:id", authMiddleware.WithAuthCheck(role.Operator, role.Admin), h.UpdateGasRequest)
		gasRequests.DELETE("/:id", authMiddleware.WithAuthCheck(role.Operator, role.Admin), h.DeleteGasRequest)

		// Сканы заявок
		gasRequests.POST("/:id/document", authMiddleware.WithAuthCheck(role.Operator, role.Admin), h.UploadGasRequestDocument)
		gasRequests.GET("/:id/document", authMiddleware.WithAuthCheck(role.Client, role.Operator, role.Admin), h.GetGasRequestDocument)
	}

	// ============ Аутентификация ============
	auth := api.Group("/auth")
	{
		// Публичные эндпоинты
		auth.POST("/register", h.AuthHandler.RegisterUser)
		auth.POST("/login", h.AuthHandler.LoginUser)

		// Защищенные эндпоинты
		auth.GET("/profile", authMiddleware.WithAuthCheck(role.Client, role.Operator, role.Admin), h.AuthHandler.GetUserProfile)
		auth.POST("/logout", authMiddleware.WithAuthCheck(role.Client, role.Operator, role.Admin), h.AuthHandler.LogoutUser)
	}

	// Swagger документация
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
