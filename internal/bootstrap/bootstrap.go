package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ardaseremet/clubhub/internal/app/controllers"
	"github.com/ardaseremet/clubhub/internal/app/migrations"
	"github.com/ardaseremet/clubhub/internal/app/repositories"
	"github.com/ardaseremet/clubhub/internal/app/routes"
	"github.com/ardaseremet/clubhub/internal/app/services"
	"github.com/ardaseremet/clubhub/internal/config"
	"github.com/ardaseremet/clubhub/internal/db"
	"github.com/ardaseremet/clubhub/internal/middleware"
	"github.com/ardaseremet/clubhub/internal/pkg/auth"
	"github.com/ardaseremet/clubhub/internal/pkg/helpers"
	"github.com/ardaseremet/clubhub/internal/pkg/logger"
	"github.com/ardaseremet/clubhub/internal/pkg/realtime"
)

// Dependencies holds the wired application graph.
type Dependencies struct {
	Repos          *repositories.Repositories
	Services       *services.Services
	Controllers    *routes.Controllers
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
	JWTService     *auth.JWTService
	Hub            *realtime.Hub
	RedisClient    *redis.Client
	Logger         zerolog.Logger
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
	migrator := migrations.NewMigrator(dbPool)

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
	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware, and starts the realtime hub.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = repositories.NewRepositories(dbPool)

	deps.JWTService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Hub = realtime.NewHub(lgr)
	go deps.Hub.Run()

	deps.Services = services.NewServices(deps.Repos, deps.JWTService, deps.Hub, lgr)

	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.JWTService)

	// Redis is optional; without it rate limiting is disabled.
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		deps.RedisClient = redis.NewClient(opts)
		lgr.Info().Msg("Redis rate limiter enabled")
	} else {
		lgr.Info().Msg("Redis not configured, rate limiting disabled")
	}
	deps.RateLimiter = middleware.NewRateLimiter(deps.RedisClient, lgr)

	deps.Controllers = &routes.Controllers{
		Auth:     controllers.NewAuthController(deps.Services.Auth, lgr),
		User:     controllers.NewUserController(deps.Services.User, lgr),
		Club:     controllers.NewClubController(deps.Services.Club, lgr),
		Chat:     controllers.NewChatController(deps.Services.Chat, lgr),
		Post:     controllers.NewPostController(deps.Services.Post, lgr),
		Story:    controllers.NewStoryController(deps.Services.Story, lgr),
		Showcase: controllers.NewShowcaseController(deps.Services.Showcase, lgr),
		Realtime: realtime.NewHandler(deps.Hub, deps.Repos.ChatRepository, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(lgr))
	router.Use(middleware.Recovery(lgr))

	routes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.RateLimiter)

	return router
}
