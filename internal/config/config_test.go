package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/localtodo/internal/models"
)

func TestDefaults(t *testing.T) {
	values, err := New(WithDisableFlagsParsing(true))
	require.NoError(t, err)

	assert.Equal(t, "localtodo.json", values.DBFileName)
	assert.Equal(t, "", values.DatabaseDSN)
	assert.Equal(t, 10*time.Second, values.DBConnectionTimeout)
	assert.Equal(t, "cmd/localtodo/migrations", values.MigrationsDir)
	assert.Equal(t, "info", values.LogLevel)
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("FILE_STORAGE_PATH", "env_storage.json")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_CONNECTION_TIMEOUT", "3s")

	values, err := New(WithDisableFlagsParsing(true))
	require.NoError(t, err)

	assert.Equal(t, "env_storage.json", values.DBFileName)
	assert.Equal(t, "debug", values.LogLevel)
	assert.Equal(t, 3*time.Second, values.DBConnectionTimeout)
}

func TestInvalidLogLevelIsRejected(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")

	_, err := New(WithDisableFlagsParsing(true))
	assert.Error(t, err)
}

func TestStorageTypeSelection(t *testing.T) {
	values := Config{}
	applyDefaults(&values, defaultConfig)

	assert.Equal(t, models.StorageTypeFile, values.StorageType(),
		"The default configuration uses the file store")

	values.DatabaseDSN = "host=localhost dbname=localtodo"
	assert.Equal(t, models.StorageTypePostgresql, values.StorageType(),
		"A database DSN wins over the file name")

	values.DatabaseDSN = ""
	values.DBFileName = ""
	assert.Equal(t, models.StorageTypeMemory, values.StorageType())
}
