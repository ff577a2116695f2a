package api

import (
	"context"
	"log"

	"gasadmin/internal/app/config"
	"gasadmin/internal/app/dsn"
	"gasadmin/internal/app/handler"
	"gasadmin/internal/app/mail"
	"gasadmin/internal/app/middleware"
	"gasadmin/internal/app/redis"
	"gasadmin/internal/app/repository"
	"gasadmin/internal/app/storage"
	"gasadmin/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func StartServer() {
	log.Println("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal("ошибка чтения конфигурации: ", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatal("ошибка инициализации репозитория: ", err)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logrus.Fatal("ошибка подключения к redis: ", err)
	}

	minioClient, err := storage.NewMinIOClient(
		cfg.MinIO.Endpoint,
		cfg.MinIO.AccessKey,
		cfg.MinIO.SecretKey,
		cfg.MinIO.Bucket,
		cfg.MinIO.UseSSL,
	)
	if err != nil {
		logrus.Fatal("ошибка подключения к minio: ", err)
	}

	notifier := mail.NewSMTPNotifier(cfg.SMTP)

	adminHandler := handler.NewHandler(repo, notifier, cfg)
	authHandler := handler.NewAuthHandler(repo, redisClient, cfg)
	apiHandler := handler.NewAPIHandler(repo, minioClient, authHandler, notifier, cfg)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)

	r := gin.Default()
	r.Use(cors.Default())

	app := pkg.NewApp(cfg, r, adminHandler, apiHandler, authMiddleware)
	app.RunApp()

	log.Println("Server down")
}
