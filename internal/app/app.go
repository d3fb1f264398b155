package app

import (
	"context"
	"fmt"
	"time"

	"givegot_backend/database"
	"givegot_backend/internal/config"
	"givegot_backend/internal/embedding"
	"givegot_backend/internal/handlers"
	"givegot_backend/internal/logger"
	"givegot_backend/internal/middleware"
	"givegot_backend/internal/repositories"
	"givegot_backend/internal/routes"
	"givegot_backend/internal/services"
	"givegot_backend/internal/validator"
	"givegot_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if cfg.SeedDemoData {
		if err := database.SeedDemoData(gormDB); err != nil {
			logger.Fatal("Failed to seed demo data", "error", err)
		}
	}

	embedder := buildEmbeddingProvider(cfg)

	ginRouter := SetupRouter(cfg, gormDB, embedder)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	embeddingWorker := workers.NewEmbeddingWorker(
		gormDB,
		repositories.NewUserRepository(),
		repositories.NewSkillRepository(),
		embedder,
		time.Duration(cfg.Worker.EmbeddingBackfillMinutes)*time.Minute,
	)
	embeddingWorker.Start(workerCtx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, embedder embedding.Provider) *gin.Engine {
	serviceContainer := initializeServices(cfg, gormDB, embedder)
	appHandlers := initializeHandlers(serviceContainer)
	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, embedder embedding.Provider) *services.ServiceContainer {
	return services.NewServiceContainer(services.ContainerDeps{
		Tx:          repositories.NewTxManager(gormDB),
		UserRepo:    repositories.NewUserRepository(),
		SkillRepo:   repositories.NewSkillRepository(),
		BookingRepo: repositories.NewBookingRepository(),
		ReviewRepo:  repositories.NewReviewRepository(),
		Embedder:    embedder,
		Matching: services.MatchingConfig{
			BestMatchThreshold: cfg.Matching.BestMatchThreshold,
			CandidateLimit:     cfg.Matching.CandidateLimit,
		},
	})
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		BookingHandler:  handlers.NewBookingHandler(baseHandler, container.Booking),
		MatchingHandler: handlers.NewMatchingHandler(baseHandler, container.Matching),
		MentorHandler:   handlers.NewMentorHandler(baseHandler, container.Review),
		ProfileHandler:  handlers.NewProfileHandler(baseHandler, container.Profile),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

// buildEmbeddingProvider selects the semantic backend. The mock provider
// keeps local development and CI off the network; matching then runs on
// the keyword path.
func buildEmbeddingProvider(cfg *config.Config) embedding.Provider {
	switch cfg.Embedding.Provider {
	case "gemini":
		if cfg.Embedding.APIKey == "" {
			logger.Warn("GEMINI_API_KEY is not set. Falling back to the mock embedding provider.")
			return &MockEmbeddingProvider{Dim: cfg.Embedding.Dimension}
		}
		return embedding.NewGeminiProvider(embedding.GeminiConfig{
			APIKey:         cfg.Embedding.APIKey,
			BaseURL:        cfg.Embedding.BaseURL,
			Model:          cfg.Embedding.Model,
			Dimension:      cfg.Embedding.Dimension,
			TimeoutSeconds: cfg.Embedding.TimeoutSeconds,
		})
	default:
		logger.Warn("Using the mock embedding provider", "provider", cfg.Embedding.Provider)
		return &MockEmbeddingProvider{Dim: cfg.Embedding.Dimension}
	}
}
