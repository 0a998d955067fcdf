package database

import (
	"child_growth_backend/internal/config"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDBCreatesSQLiteDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.db")
	db, err := InitDB(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: path}, false)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.NoError(t, sqlDB.Ping())
	assert.FileExists(t, path)
}

func TestInitDBRejectsUnknownDriver(t *testing.T) {
	_, err := InitDB(&config.DatabaseConfig{Driver: "postgres"}, false)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	host := mr.Host()
	rdb, err := InitRedis(&config.RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	defer rdb.Close()

	// 关闭后 miniredis 不能再取地址，复用之前的 host
	mr.Close()
	_, err = InitRedis(&config.RedisConfig{Host: host, Port: port})
	assert.Error(t, err)
}
