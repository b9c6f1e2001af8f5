package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"

	"backend/internal/config"
)

func TestNew_ConsoleJSON(t *testing.T) {
	cfg := config.Default()

	log, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
	assert.Equal(t, os.Stdout, log.Out)
}

func TestNew_DebugText(t *testing.T) {
	cfg := config.Default()
	cfg.Debug = true
	cfg.LogLevel = "debug"

	log, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestNew_FileOutput(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "app.log")

	log, err := New(cfg)
	require.NoError(t, err)

	lj, ok := log.Out.(*lumberjack.Logger)
	require.True(t, ok)
	t.Cleanup(func() { _ = lj.Close() })

	log.Info("written to file")

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestNew_InvalidLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "loud"

	_, err := New(cfg)
	require.Error(t, err)
}
