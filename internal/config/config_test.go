package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "none", cfg.HistoryType)
	assert.Equal(t, "./data/history.db", cfg.HistoryPath)
	assert.Equal(t, 30*24*time.Hour, cfg.HistoryTTL)
	assert.Equal(t, 24*time.Hour, cfg.HistoryCleanupInterval)
	assert.Empty(t, cfg.PublishersFile)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("HISTORY_TYPE", " BBolt ")
	t.Setenv("HISTORY_TTL_SECONDS", "60")
	t.Setenv("PUBLISHERS_FILE", "configs/publishers.yaml")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "bbolt", cfg.HistoryType)
	assert.Equal(t, time.Minute, cfg.HistoryTTL)
	assert.Equal(t, "configs/publishers.yaml", cfg.PublishersFile)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("ttl", func(t *testing.T) {
		t.Setenv("HISTORY_TTL_SECONDS", "0")
		_, err := load(viper.New())
		require.Error(t, err)
	})
	t.Run("history type", func(t *testing.T) {
		t.Setenv("HISTORY_TYPE", "redis")
		_, err := load(viper.New())
		require.Error(t, err)
	})
}
