package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"backend/internal/config"
)

var (
	ErrNotInitialized     = errors.New("database: ORM is not bound to an application")
	ErrAlreadyInitialized = errors.New("database: ORM is already bound")
)

// ORM is the object-relational mapping handle. It is created unbound with New
// and bound to one application by InitApp.
type ORM struct {
	mu       sync.RWMutex
	db       *gorm.DB
	target   Target
	tracking bool
}

func New() *ORM {
	return &ORM{}
}

// InitApp opens the connection described by cfg.DatabaseURI and, when
// cfg.TrackModifications is set, registers the change-tracking callbacks.
func (o *ORM) InitApp(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.db != nil {
		return ErrAlreadyInitialized
	}

	target, err := ParseURI(cfg.DatabaseURI)
	if err != nil {
		return err
	}

	if target.Dialect == DialectPostgres {
		if err := EnsureDatabaseExists(ctx, target.DSN, log); err != nil {
			return err
		}
	}

	db, err := open(target, gormConfig(cfg, log))
	if err != nil {
		return err
	}

	if target.InMemory() {
		// every pooled connection would otherwise see its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get raw DB connection: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if cfg.TrackModifications {
		if err := registerTracking(db, log); err != nil {
			return err
		}
	}

	o.db = db
	o.target = target
	o.tracking = cfg.TrackModifications

	log.WithFields(logrus.Fields{
		"dialect":  target.Dialect,
		"tracking": cfg.TrackModifications,
	}).Info("database connection established")
	return nil
}

// DB returns the bound gorm handle.
func (o *ORM) DB() (*gorm.DB, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.db == nil {
		return nil, ErrNotInitialized
	}
	return o.db, nil
}

func (o *ORM) Dialect() Dialect {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.target.Dialect
}

// Tracking reports whether modification tracking callbacks are installed.
func (o *ORM) Tracking() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.tracking
}

// Ping checks the connection is alive.
func (o *ORM) Ping(ctx context.Context) error {
	db, err := o.DB()
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection. Closing an unbound handle does nothing.
func (o *ORM) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.db == nil {
		return nil
	}

	sqlDB, err := o.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	o.db = nil
	return nil
}

func open(target Target, gcfg *gorm.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch target.Dialect {
	case DialectSQLite:
		dialector = sqlite.Open(target.DSN)
	case DialectPostgres:
		dialector = postgres.Open(target.DSN)
	case DialectMySQL:
		dialector = mysql.Open(target.DSN)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, target.Dialect)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", target.Dialect, err)
	}
	return db, nil
}

func gormConfig(cfg *config.Config, log *logrus.Logger) *gorm.Config {
	level := gormlogger.Warn
	if cfg.Debug {
		level = gormlogger.Info
	}
	return &gorm.Config{
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	}
}
