package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/config"
)

type widget struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func memoryConfig() *config.Config {
	cfg := config.Default()
	cfg.DatabaseURI = "sqlite:///:memory:"
	return cfg
}

func TestORM_UnboundHandle(t *testing.T) {
	orm := New()

	_, err := orm.DB()
	require.ErrorIs(t, err, ErrNotInitialized)
	require.ErrorIs(t, orm.Ping(context.Background()), ErrNotInitialized)
	assert.NoError(t, orm.Close())
}

func TestORM_InitApp(t *testing.T) {
	log, _ := test.NewNullLogger()
	orm := New()

	require.NoError(t, orm.InitApp(context.Background(), memoryConfig(), log))
	t.Cleanup(func() { _ = orm.Close() })

	db, err := orm.DB()
	require.NoError(t, err)
	require.NotNil(t, db)
	assert.Equal(t, DialectSQLite, orm.Dialect())
	assert.False(t, orm.Tracking())
	assert.NoError(t, orm.Ping(context.Background()))

	err = orm.InitApp(context.Background(), memoryConfig(), log)
	require.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestORM_InitApp_FileDatabase(t *testing.T) {
	log, _ := test.NewNullLogger()
	testChdir(t, t.TempDir())

	cfg := config.Default()
	orm := New()
	require.NoError(t, orm.InitApp(context.Background(), cfg, log))
	require.NoError(t, orm.RunMigrations(log, &widget{}))
	require.NoError(t, orm.Close())

	_, err := os.Stat(filepath.Join(".", "mydatabase.db"))
	require.NoError(t, err)

	_, err = orm.DB()
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestORM_InitApp_MalformedURI(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := memoryConfig()
	cfg.DatabaseURI = "not-a-uri"

	orm := New()
	require.Error(t, orm.InitApp(context.Background(), cfg, log))

	_, err := orm.DB()
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestORM_TrackModifications(t *testing.T) {
	log, hook := test.NewNullLogger()
	cfg := memoryConfig()
	cfg.TrackModifications = true

	orm := New()
	require.NoError(t, orm.InitApp(context.Background(), cfg, log))
	t.Cleanup(func() { _ = orm.Close() })
	require.True(t, orm.Tracking())
	require.NoError(t, orm.RunMigrations(log, &widget{}))

	db, err := orm.DB()
	require.NoError(t, err)

	hook.Reset()
	w := &widget{Name: "first"}
	require.NoError(t, db.Create(w).Error)
	require.NoError(t, db.Model(w).Update("name", "renamed").Error)
	require.NoError(t, db.Delete(w).Error)

	var ops []string
	for _, e := range hook.AllEntries() {
		if e.Message == "model modified" {
			ops = append(ops, e.Data["op"].(string))
			assert.Equal(t, "widgets", e.Data["table"])
		}
	}
	assert.Equal(t, []string{"create", "update", "delete"}, ops)
}

func TestORM_NoTrackingByDefault(t *testing.T) {
	log, hook := test.NewNullLogger()

	orm := New()
	require.NoError(t, orm.InitApp(context.Background(), memoryConfig(), log))
	t.Cleanup(func() { _ = orm.Close() })
	require.NoError(t, orm.RunMigrations(log, &widget{}))

	db, err := orm.DB()
	require.NoError(t, err)

	hook.Reset()
	require.NoError(t, db.Create(&widget{Name: "quiet"}).Error)

	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, "model modified", e.Message)
	}
}

func TestRunMigrations_Unbound(t *testing.T) {
	err := New().RunMigrations(logrus.New(), &widget{})
	require.ErrorIs(t, err, ErrNotInitialized)
}
