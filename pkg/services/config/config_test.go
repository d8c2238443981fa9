package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, int32(100), cfg.S3.PageSize)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestLoad_ValidYAML_PopulatesAllFields(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "reports.yaml")
	content := `s3:
  bucket: "pantry-reports"
  profile: "pantry"
  page_size: 50
paths:
  pdf: "/data/pdf"
  json: "/data/json"
db:
  path: "/data/reports.db"
log_level: "debug"
workers: 2`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// When
	cfg, err := Load(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "pantry-reports", cfg.S3.Bucket)
	assert.Equal(t, "pantry", cfg.S3.Profile)
	assert.Equal(t, int32(50), cfg.S3.PageSize)
	assert.Equal(t, "/data/pdf", cfg.Paths.PDF)
	assert.Equal(t, "/data/json", cfg.Paths.JSON)
	assert.Equal(t, "text", cfg.Paths.Text)
	assert.Equal(t, "/data/reports.db", cfg.DB.Path)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reports.yaml")
	require.NoError(t, os.WriteFile(path, []byte("s3:\n  bucket: from-file\n"), 0o644))
	t.Setenv("REPORTS_S3_BUCKET", "from-env")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.S3.Bucket)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("s3: bucket: bad: yaml"), 0o644))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{Workers: 0, S3: S3{PageSize: 0, Concurrency: 1}, LogLevel: "loud"}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers")
	assert.Contains(t, err.Error(), "page_size")
	assert.Contains(t, err.Error(), "log_level")
}
