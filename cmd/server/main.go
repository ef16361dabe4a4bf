package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"liftlog/internal/api"
	"liftlog/internal/config"
	"liftlog/internal/repository/local"
	"liftlog/internal/repository/mongo"
	"liftlog/internal/service"
	"liftlog/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title LiftLog API
// @version 1.0
// @description API for workout templates, logs, personal records, goals, progress photos and repeating schedules.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting LiftLog server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureTemplateIndexes(ctx, appDB.Collection("workout_templates"))
		mongo.EnsureLogIndexes(ctx, appDB.Collection("workout_logs"))
		mongo.EnsureRecordIndexes(ctx, appDB.Collection("personal_records"))
		mongo.EnsureGoalIndexes(ctx, appDB.Collection("fitness_goals"))
		mongo.EnsurePhotoIndexes(ctx, appDB.Collection("progress_photos"))
		mongo.EnsureSettingsIndexes(ctx, appDB.Collection("user_settings"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	kv, err := local.NewKV(cfg.LocalStore.Dir)
	if err != nil {
		log.Fatalf("FATAL: Failed to open local store at %s: %v", cfg.LocalStore.Dir, err)
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	templateRepo := mongo.NewMongoTemplateRepository(appDB)
	logRepo := mongo.NewMongoLogRepository(appDB)
	recordRepo := mongo.NewMongoRecordRepository(appDB)
	goalRepo := mongo.NewMongoGoalRepository(appDB)
	photoRepo := mongo.NewMongoPhotoRepository(appDB)
	settingsRepo := mongo.NewMongoSettingsRepository(appDB)
	scheduleRepo := local.NewScheduleRepository(kv, time.Now)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	templateService := service.NewTemplateService(templateRepo)
	logService := service.NewLogService(logRepo)
	recordService := service.NewRecordService(recordRepo)
	goalService := service.NewGoalService(goalRepo, time.Now)
	photoService := service.NewPhotoService(photoRepo, fileStorage)
	settingsService := service.NewSettingsService(settingsRepo)
	scheduleService := service.NewScheduleService(scheduleRepo, settingsRepo, time.Now)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	api.SetupRoutes(router, cfg.JWT.Secret,
		authService,
		templateService,
		logService,
		recordService,
		goalService,
		photoService,
		settingsService,
		scheduleService,
	)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
