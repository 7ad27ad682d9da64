package api

import (
	"context"
	"log"

	"github.com/MxBrndl/Demandes-ESEB/internal/app/config"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/document"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/dsn"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/handler"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/middleware"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/notify"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/redis"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/repository"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/storage"
	"github.com/MxBrndl/Demandes-ESEB/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StartServer assemble toutes les dépendances et lance le serveur HTTP
func StartServer() {
	log.Println("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatalf("error initializing repository: %v", err)
	}

	// Redis: indisponible => le logout perd la révocation immédiate,
	// mais l'API reste fonctionnelle
	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logrus.Errorf("error connecting to redis, token blacklist disabled: %v", err)
		redisClient = nil
	}

	// MinIO: indisponible => les documents sont rendus à la demande
	// mais ne sont pas archivés
	minioClient, err := storage.NewMinIOClient(
		cfg.Minio.Endpoint,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.Bucket,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		logrus.Errorf("error connecting to minio, document archiving disabled: %v", err)
		minioClient = nil
	}

	renderer := document.NewRenderer()
	dispatcher := notify.NewDispatcher(cfg.Topdesk.WebhookURL, cfg.Topdesk.Timeout)

	authHandler := handler.NewAuthHandler(repo, redisClient, cfg)
	apiHandler := handler.NewAPIHandler(repo, minioClient, renderer, dispatcher, authHandler)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
	}))

	application := pkg.NewApp(cfg, router, apiHandler, authMiddleware)
	application.RunApp()

	log.Println("Server down")
}
