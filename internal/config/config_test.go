package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
[database]
user = "app"
dbname = "appointments"
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.False(t, cfg.Booking.ApplyServiceBuffers)
	assert.Equal(t, 3, cfg.Booking.TxMaxAttempts)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
[server]
http_port = 9090

[booking]
apply_service_buffers = true
default_timezone = "Europe/Moscow"
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.True(t, cfg.Booking.ApplyServiceBuffers)

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SERVER_HTTP_PORT", "7070")
	t.Setenv("BOOKING_APPLY_SERVICE_BUFFERS", "true")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.True(t, cfg.Booking.ApplyServiceBuffers)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, `
[server]
http_port = 0
`))
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "server.http_port")
	assert.Contains(t, err.Error(), "database.dbname is required")
}

func TestLoad_BadTimezone(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
[booking]
default_timezone = "Mars/Olympus"
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_SlotStep(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
[booking]
slot_step_minutes = 15
`))
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.Booking.SlotStep())

	_, err = Load(writeConfig(t, minimalConfig+`
[booking]
slot_step_minutes = -5
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "h", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", c.DSN())
}
