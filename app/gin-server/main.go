package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/eurouni/eurostudy/config"
	"github.com/eurouni/eurostudy/internal/advisor"
	"github.com/eurouni/eurostudy/internal/api/handlers"
	"github.com/eurouni/eurostudy/internal/api/middleware"
	"github.com/eurouni/eurostudy/internal/api/routes"
	"github.com/eurouni/eurostudy/internal/cache"
	"github.com/eurouni/eurostudy/internal/logger"
	"github.com/eurouni/eurostudy/internal/models"
	"github.com/eurouni/eurostudy/internal/pdf"
	mongorepo "github.com/eurouni/eurostudy/internal/repositories/mongo"
	pgrepo "github.com/eurouni/eurostudy/internal/repositories/postgres"
	"github.com/eurouni/eurostudy/internal/services"
	"github.com/eurouni/eurostudy/internal/storage"
	"github.com/eurouni/eurostudy/internal/store"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.WithError(err).Fatal("PostgreSQL init error")
	}
	log.Info("PostgreSQL connected")

	if err := config.PostgresDB.AutoMigrate(
		&models.User{},
		&models.StudentProfile{},
		&models.VisaProgress{},
	); err != nil {
		log.WithError(err).Fatal("PostgreSQL migrate error")
	}

	// Init Redis
	if err := config.InitRedis(); err != nil {
		log.WithError(err).Fatal("Redis init error")
	}
	log.Info("Redis connected")

	// Init MongoDB
	if err := config.InitMongo(); err != nil {
		log.WithError(err).Fatal("MongoDB init error")
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.WithError(err).Fatal("MongoDB index error")
	}
	log.Info("MongoDB connected")

	mongoDBName := os.Getenv("MONGO_DB")
	if mongoDBName == "" {
		mongoDBName = "eurostudy"
	}
	mongoDB := config.MongoClient.Database(mongoDBName)

	// Resume store: Redis by default, file-backed when RESUME_STORE_DIR is set
	var resumeStore store.ResumeStore
	if dir := os.Getenv("RESUME_STORE_DIR"); dir != "" {
		fs, err := store.NewFileStore(dir, store.DefaultMaxBytes)
		if err != nil {
			log.WithError(err).Fatal("file store init error")
		}
		resumeStore = fs
	} else {
		resumeStore = store.NewRedisStore(config.RedisClient, store.DefaultMaxBytes)
	}

	advisorURL := os.Getenv("ADVISOR_URL")
	if advisorURL == "" {
		advisorURL = "http://localhost:8000"
	}
	advisorClient := advisor.NewClient(advisorURL, &http.Client{Timeout: 30 * time.Second})

	// Optional PDF archive bucket
	var uploader storage.Uploader
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		up, err := storage.NewGCSUploader(context.Background(), bucket)
		if err != nil {
			log.WithError(err).Fatal("GCS init error")
		}
		uploader = up
	}

	renderer, err := pdf.NewChromiumRenderer()
	if err != nil {
		log.WithError(err).Warn("pdf renderer unavailable; export disabled")
	} else {
		defer renderer.Close()
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	userRepo := pgrepo.NewUserRepo(config.PostgresDB)
	profileRepo := pgrepo.NewProfileRepo(config.PostgresDB)
	visaRepo := pgrepo.NewVisaProgressRepo(config.PostgresDB)
	editSessionRepo := mongorepo.NewEditSessionRepo(mongoDB)

	userSvc := services.NewUserService(userRepo, jwtSecret, 24*time.Hour)
	profileSvc := services.NewProfileService(profileRepo, cache.NewRedisCache(config.RedisClient))
	resumeSvc := services.NewResumeService(resumeStore, advisorClient)
	var exportSvc services.ExportService
	if renderer != nil {
		exportSvc = services.NewExportService(resumeSvc, renderer, uploader, log)
	} else {
		exportSvc = services.NewExportService(resumeSvc, nil, uploader, log)
	}
	publisher := services.NewRedisPreviewPublisher(config.RedisClient)
	editorSvc := services.NewEditorService(resumeSvc, editSessionRepo, publisher, log, services.DefaultAutoSaveInterval)
	advisorSvc := services.NewAdvisorService(advisorClient, profileSvc)
	visaSvc := services.NewVisaService(visaRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Auth:    handlers.NewAuthHandler(userSvc),
		Resume:  handlers.NewResumeHandler(resumeSvc, exportSvc),
		Editor:  handlers.NewEditorHandler(editorSvc),
		Profile: handlers.NewProfileHandler(profileSvc),
		Advisor: handlers.NewAdvisorHandler(advisorSvc),
		Visa:    handlers.NewVisaHandler(visaSvc),
		Admin:   handlers.NewAdminHandler(profileSvc, resumeSvc),
		WS:      handlers.NewWSHandler(editorSvc, config.RedisClient),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
