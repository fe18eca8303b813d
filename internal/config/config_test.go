package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origHost := os.Getenv("DB_HOST")
	defer os.Setenv("DB_HOST", origHost)

	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("STORAGE_DRIVER", "minio")
	os.Setenv("MINIO_USE_SSL", "true")
	os.Setenv("UPLOAD_MAX_FILE_SIZE", "1048576")
	defer func() {
		os.Unsetenv("DB_MAX_OPEN_CONNS")
		os.Unsetenv("STORAGE_DRIVER")
		os.Unsetenv("MINIO_USE_SSL")
		os.Unsetenv("UPLOAD_MAX_FILE_SIZE")
	}()

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "minio", cfg.Storage.Driver)
	assert.True(t, cfg.Storage.MinIO.UseSSL)
	assert.Equal(t, int64(1048576), cfg.Upload.MaxFileSize)
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("UPLOAD_ALLOWED_TYPES")
	os.Unsetenv("ROLE_SUBMITTER")
	os.Unsetenv("ROLE_REVIEWER")

	cfg := Load()

	assert.Equal(t, []string{"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx"}, cfg.Upload.AllowedTypes)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxFileSize)
	assert.Equal(t, "faculty", cfg.Roles.Submitter)
	assert.Equal(t, "qaa staff", cfg.Roles.Reviewer)
	assert.Equal(t, "local", cfg.Storage.Driver)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvList(t *testing.T) {
	key := "TEST_LIST_VAR"

	os.Setenv(key, "PDF, docx ,,xls")
	assert.Equal(t, []string{"pdf", "docx", "xls"}, getEnvList(key, nil))

	os.Setenv(key, " , ")
	assert.Equal(t, []string{"fallback"}, getEnvList(key, []string{"fallback"}))

	os.Unsetenv(key)
	assert.Equal(t, []string{"fallback"}, getEnvList(key, []string{"fallback"}))
}
