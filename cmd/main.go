package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"marketing-service/internal/config"
	"marketing-service/internal/database/minio"
	"marketing-service/internal/database/postgres"
	"marketing-service/internal/database/redis"
	"marketing-service/internal/event"
	"marketing-service/internal/handlers"
	"marketing-service/internal/models"
	"marketing-service/internal/repository"
	"marketing-service/internal/services"
	"marketing-service/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const defaultAdminEmail = "admin@marketinghub.local"

func setupLogging() (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	logDir := filepath.Join("/marketinghub", "log", "marketing_service")
	fmt.Println("Log directory:", logDir)
	err := os.MkdirAll(logDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, relying on environment: %v", err)
	}

	cfg := config.New()

	log.Printf("Connecting to PostgreSQL with: host=%s, port=%s, user=%s, dbname=%s",
		cfg.PostgresCfg.Host, cfg.PostgresCfg.Port, cfg.PostgresCfg.Username, cfg.PostgresCfg.DBname)
	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		log.Printf("error connect to database: %s", err)
		go postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}

	redisClient, err := redis.NewRedisClient(cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, 0)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	minioClient, err := minio.NewMinioClient(cfg.MinioCfg)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	// Notifications are best effort; the service runs without a broker.
	var decisionPublisher services.DecisionPublisher
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		log.Printf("Failed to connect to RabbitMQ, decision notifications disabled: %v", err)
	} else {
		defer rabbitConn.Close()
		decisionPublisher = event.NewNotificationPublisher(rabbitConn)
	}

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient.GetClient(), 24*time.Hour)
	activityRepo := repository.NewActivityRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	contentRepo := repository.NewSiteContentRepository(db)

	jwtService := services.NewJWTService(cfg.AuthCfg.JWTSecret)
	authorizer := services.NewAuthorizer(jwtService, roleRepo)
	sessionService := services.NewSessionService(sessionRepo)
	roleService := services.NewRoleService(roleRepo)
	userService := services.NewUserService(userRepo, sessionService, jwtService, roleService)
	projectService := services.NewProjectService(projectRepo, invoiceRepo, minioClient, minio.Storage.ProjectFiles)
	taskService := services.NewTaskService(taskRepo, projectRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, projectRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	calendarService := services.NewCalendarService(calendarRepo, taskRepo, invoiceRepo)
	contentService := services.NewSiteContentService(contentRepo)
	activityService := services.NewActivityService(activityRepo, authorizer, minioClient, minio.Storage.ProjectFiles, decisionPublisher)
	forecastService := services.NewForecastService(cfg.WeatherCfg)

	if err := roleService.InitDefaultRoles(); err != nil {
		log.Printf("Failed to init default roles: %v", err)
	}
	bootstrapAdmin(userService, cfg.AuthCfg.DefaultAdminPwd)

	scheduler := worker.NewScheduler(invoiceService)
	if err := scheduler.Start(); err != nil {
		log.Printf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	middleware := handlers.NewMiddleware(authorizer, sessionService)
	authHandler := handlers.NewAuthHandler(userService, sessionService, roleService, middleware)
	weatherHandler := handlers.NewWeatherHandler(forecastService)
	activityHandler := handlers.NewActivityHandler(activityService)
	projectHandler := handlers.NewProjectHandler(projectService, middleware)
	taskHandler := handlers.NewTaskHandler(taskService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, middleware)
	categoryHandler := handlers.NewCategoryHandler(categoryService, middleware)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	contentHandler := handlers.NewContentHandler(contentService, middleware)

	r := gin.Default()
	middleware.RegisterRoutes(r)
	r.GET("/checkhealth", func(c *gin.Context) {
		c.String(200, "Marketing service is healthy")
	})

	public := r.Group("/marketing/public/api/v1")
	protected := r.Group("/marketing/protected/api/v1", middleware.RequireAuth())

	authHandler.RegisterRoutes(public, protected)
	weatherHandler.RegisterRoutes(public, protected)
	activityHandler.RegisterRoutes(public, protected)
	projectHandler.RegisterRoutes(public, protected)
	taskHandler.RegisterRoutes(public, protected)
	invoiceHandler.RegisterRoutes(public, protected)
	categoryHandler.RegisterRoutes(public, protected)
	calendarHandler.RegisterRoutes(public, protected)
	contentHandler.RegisterRoutes(public, protected)

	serverPort := cfg.Port
	if serverPort == "" {
		serverPort = "8089"
	}

	log.Printf("Starting marketing-service on port %s", serverPort)
	if err := r.Run(":" + serverPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// bootstrapAdmin creates the initial admin account on first run.
func bootstrapAdmin(userService services.IUserService, password string) {
	if password == "" {
		log.Printf("DEFAULT_ADMIN_PWD not set, skipping admin bootstrap")
		return
	}
	if existing, _ := userService.GetUserByEmail(defaultAdminEmail); existing != nil {
		return
	}
	if _, err := userService.RegisterNewUser(defaultAdminEmail, "Administrator", password, models.RoleAdmin); err != nil {
		log.Printf("Failed to bootstrap admin user: %v", err)
	}
}
