package testutil

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/logger"
	"backend/internal/models"
)

// MemoryConfig is the default config pointed at a private in-memory SQLite
// database.
func MemoryConfig() *config.Config {
	cfg := config.Default()
	cfg.DatabaseURI = "sqlite:///:memory:"
	cfg.MetricsEnabled = false
	return cfg
}

// NewTestDB returns a migrated in-memory database closed at test cleanup.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	log := logger.Discard()
	orm := database.New()
	require.NoError(t, orm.InitApp(context.Background(), MemoryConfig(), log))
	t.Cleanup(func() { _ = orm.Close() })
	require.NoError(t, orm.RunMigrations(log, models.All()...))

	db, err := orm.DB()
	require.NoError(t, err)
	return db
}

// Logger returns a logger that discards output.
func Logger() *logrus.Logger {
	return logger.Discard()
}
