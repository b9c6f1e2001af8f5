package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/logger"
	"backend/internal/middlewares"
	"backend/internal/models"
	"backend/internal/repositories"
	"backend/internal/routes"
	"backend/internal/services"
)

// App is one configured application instance.
type App struct {
	Config  *config.Config
	Engine  *gin.Engine
	DB      *database.ORM
	Log     *logrus.Logger
	Metrics *middlewares.Metrics

	rdb *redis.Client
}

// CreateApp is the application factory: it loads configuration from the
// environment and returns a new, independent App on every call.
func CreateApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewApp(cfg)
}

// NewApp builds an App from an explicit configuration.
func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{
		Config: cfg,
		Engine: gin.New(),
		DB:     database.New(),
		Log:    log,
	}

	app.Engine.Use(gin.Recovery(), middlewares.RequestID(), middlewares.RequestLogger(log))
	app.Engine.Use(middlewares.CORS(cfg))

	if err := app.DB.InitApp(context.Background(), cfg, log); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.MetricsEnabled {
		app.Metrics = middlewares.NewMetrics()
		app.Engine.Use(app.Metrics.Middleware())
		app.Engine.GET("/metrics", app.Metrics.Handler())
	}

	if err := app.registerRoutes(); err != nil {
		_ = app.Close()
		return nil, err
	}

	return app, nil
}

func (a *App) registerRoutes() error {
	db, err := a.DB.DB()
	if err != nil {
		return err
	}

	// Dependency injection
	contactRepo := repositories.NewContactRepository(db)
	var cache services.ContactCache
	if c := a.connectCache(); c != nil {
		cache = c
	}
	contactService := services.NewContactService(contactRepo, cache, a.Log)
	contactHandler := handlers.NewContactHandler(contactService)

	routes.RegisterRoutes(a.Engine, contactHandler)
	return nil
}

// connectCache returns nil when no REDIS_URL is set or Redis is unreachable;
// the app then reads straight from the database.
func (a *App) connectCache() *repositories.RedisRepository {
	if a.Config.RedisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(a.Config.RedisURL)
	if err != nil {
		a.Log.WithError(err).Warn("invalid REDIS_URL, contact cache disabled")
		return nil
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		a.Log.WithError(err).Warnf("failed to connect to Redis at %s, contact cache disabled", opts.Addr)
		_ = rdb.Close()
		return nil
	}
	a.Log.Info("Connected to Redis successfully")

	a.rdb = rdb
	return repositories.NewRedisRepository(rdb)
}

// Migrate creates or updates the tables of every model.
func (a *App) Migrate() error {
	return a.DB.RunMigrations(a.Log, models.All()...)
}

func (a *App) Close() error {
	var errs []error
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
	}
	errs = append(errs, a.DB.Close())
	return errors.Join(errs...)
}
