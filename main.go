package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"bilboko-doinuak/handlers"
	"bilboko-doinuak/middleware"
	"bilboko-doinuak/models"
	"bilboko-doinuak/services"
	"bilboko-doinuak/storage"
	"bilboko-doinuak/utils"
	"bilboko-doinuak/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment variables directly")
	}

	logger, err := zap.NewProduction()
	if os.Getenv("APP_ENV") == "development" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal("failed to initialize logger:", err)
	}
	defer logger.Sync()

	// The remote (cloud) backend is optional: without DATABASE_URL and
	// JWT_SECRET the app runs fully anonymous on per-device local storage.
	var db *gorm.DB
	dsn := os.Getenv("DATABASE_URL")
	jwtSecret := os.Getenv("JWT_SECRET")
	if dsn != "" && jwtSecret != "" {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(
			&models.ProfileRecord{},
			&models.ProgressRecord{},
			&models.User{},
		); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
		logger.Info("remote backend enabled")
	} else {
		logger.Info("remote backend disabled, running in local-only mode")
	}

	if err := utils.InitMediaStore(); err != nil {
		logger.Fatal("failed to initialize media store", zap.Error(err))
	}

	dataDir := os.Getenv("LOCAL_DATA_DIR")
	if dataDir == "" {
		dataDir = "./userdata"
	}

	content, err := services.NewContentService(logger)
	if err != nil {
		logger.Fatal("failed to load content", zap.Error(err))
	}

	authCfg := services.AuthConfig{
		Secret:             []byte(jwtSecret),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		OAuthRedirectURL:   os.Getenv("OAUTH_REDIRECT_URL"),
	}
	auth := services.NewAuthService(db, authCfg, logger)
	stats := services.NewStatsService(db, logger)
	store := storage.NewFactory(db, dataDir, logger)

	adminEmails := strings.Split(os.Getenv("ADMIN_EMAILS"), ",")

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // audio uploads
	})

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Accept-Language, X-Device-ID",
		ExposeHeaders: "Content-Length, Content-Type, Content-Disposition",
		MaxAge:        86400,
	}))

	app.Use(middleware.RequestLogger(logger))
	app.Use(middleware.Language())
	app.Use(middleware.UserContext(auth))

	handlers.SetupConfigRoutes(app, auth, authCfg.GoogleClientID != "")
	handlers.SetupContentRoutes(app, content)
	handlers.SetupAuthRoutes(app, auth)
	handlers.SetupProfileRoutes(app, store)
	handlers.SetupProgressRoutes(app, store)
	handlers.SetupMissionRoutes(app, store)
	handlers.SetupCollectionRoutes(app, content, store)
	handlers.SetupAdminRoutes(app, auth, stats, adminEmails)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if db != nil {
		rollover := workers.NewMissionsRollover(db, logger)
		sched, err := rollover.Start()
		if err != nil {
			logger.Fatal("failed to start mission rollover worker", zap.Error(err))
		}
		defer sched.Shutdown()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5200"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			logger.Error("server error", zap.Error(err))
		}
	}()
	logger.Info("server running", zap.String("port", port))

	<-ctx.Done()
	logger.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
