package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/emre/alumnihub/docs" // Import generated swagger docs
	appControllers "github.com/emre/alumnihub/internal/app/controllers"
	appMigrations "github.com/emre/alumnihub/internal/app/migrations"
	appRepos "github.com/emre/alumnihub/internal/app/repositories"
	appRoutes "github.com/emre/alumnihub/internal/app/routes"
	appServices "github.com/emre/alumnihub/internal/app/services"
	"github.com/emre/alumnihub/internal/config"
	"github.com/emre/alumnihub/internal/db"
	appMiddleware "github.com/emre/alumnihub/internal/middleware"
	pkgAuth "github.com/emre/alumnihub/internal/pkg/auth"
	"github.com/emre/alumnihub/internal/pkg/helpers"
	"github.com/emre/alumnihub/internal/pkg/logger"
	"github.com/emre/alumnihub/internal/pkg/websocket"
	"github.com/emre/alumnihub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          *appServices.AuthService
	UserService          *appServices.UserService
	EventService         *appServices.EventService
	ChatService          *appServices.ChatService
	MentorshipService    *appServices.MentorshipService
	AuthzService         *appServices.AuthorizationService
	AuthController       *appControllers.AuthController
	UserController       *appControllers.UserController
	EventController      *appControllers.EventController
	ChatController       *appControllers.ChatController
	MentorshipController *appControllers.MentorshipController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Hub                  *websocket.Hub
	WSHandler            *websocket.Handler
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthzService = appServices.NewAuthorizationService()

	// The hub fans out domain events to connected clients. Services publish
	// through the Notifier interface and never block on delivery.
	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()
	deps.WSHandler = websocket.NewHandler(deps.Hub, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.User,
		deps.Repos.Token,
		deps.JWTService,
		lgr,
	)
	deps.UserService = appServices.NewUserService(deps.Repos.User, deps.Repos.Token, lgr)
	deps.EventService = appServices.NewEventService(deps.Repos.Event, deps.Repos.User, deps.AuthzService, deps.Hub, lgr)
	deps.ChatService = appServices.NewChatService(deps.Repos.Chat, deps.Repos.User, deps.AuthzService, deps.Hub, lgr)
	deps.MentorshipService = appServices.NewMentorshipService(deps.Repos.Mentorship, deps.Repos.User, deps.AuthzService, deps.Hub, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.User)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.UserController = appControllers.NewUserController(deps.UserService, lgr)
	deps.EventController = appControllers.NewEventController(deps.EventService, lgr)
	deps.ChatController = appControllers.NewChatController(deps.ChatService, lgr)
	deps.MentorshipController = appControllers.NewMentorshipController(deps.MentorshipService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins()
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	limiterStore := appMiddleware.NewLimiterStore(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
	router.Use(appMiddleware.RateLimit(limiterStore))

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.EventController,
		deps.ChatController,
		deps.MentorshipController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	return router
}
