package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))
	return dir
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: sqlite
  sqlite_path: test.db
jwt:
  secret: short
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Assessment.SessionStore)
	assert.Equal(t, "Asia/Shanghai", cfg.Assessment.Timezone)
	assert.Equal(t, 2*time.Hour, cfg.Assessment.SessionTTL())
	assert.Equal(t, 72*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 30, cfg.Log.MaxAgeDays)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)
}

func TestLoadConfigRejectsShortSecretInRelease(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
jwt:
  secret: short
`)

	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "JWT secret is too short")
}

func TestLoadConfigRejectsUnknownSessionStore(t *testing.T) {
	dir := writeConfig(t, `
assessment:
  session_store: memcached
`)

	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "unsupported session store")
}

func TestLoadConfigRejectsBadObservabilitySettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"log level", "log:\n  level: verbose\n", "unsupported log level"},
		{"sample ratio", "tracing:\n  sample_ratio: 1.5\n", "sample_ratio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
