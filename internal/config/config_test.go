package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[admin]
password = "secret"
session_secret = "signing-key"

[database]
host = "db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 14, cfg.Booking.WindowDays)
	assert.Equal(t, 3, cfg.Booking.DefaultCapacity)
	assert.Equal(t, 100, cfg.Mailer.QueueSize)
	assert.Equal(t, 2, cfg.Mailer.Workers)
	assert.Equal(t, 720, cfg.Admin.SessionTTL)
	assert.Equal(t, "12h0m0s", cfg.Admin.SessionDuration().String())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[admin]
password = "from-file"
session_secret = "from-file"

[server]
http_port = 9000
`)
	t.Setenv("ADMIN_PASSWORD", "from-env")
	t.Setenv("DB_PASSWORD", "db-secret")
	t.Setenv("HTTP_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Admin.Password)
	assert.Equal(t, "from-file", cfg.Admin.SessionSecret)
	assert.Equal(t, "db-secret", cfg.Database.Password)
	assert.Equal(t, 9100, cfg.Server.HTTPPort)
	assert.Contains(t, cfg.Database.DSN(), "password=db-secret")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Admin.Password = "secret"
		cfg.Admin.SessionSecret = "key"
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no session secret", func(c *Config) { c.Admin.SessionSecret = "" }},
		{"no admin password", func(c *Config) { c.Admin.Password = "" }},
		{"zero window", func(c *Config) { c.Booking.WindowDays = 0 }},
		{"window too long", func(c *Config) { c.Booking.WindowDays = 365 }},
		{"zero capacity", func(c *Config) { c.Booking.DefaultCapacity = 0 }},
		{"zero pool", func(c *Config) { c.Database.MaxOpenConns = 0 }},
		{"mailer without key", func(c *Config) { c.Mailer.Enabled = true }},
		{"unknown timezone", func(c *Config) { c.Site.Timezone = "Mars/Olympus" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestValidateAcceptsPasswordHash(t *testing.T) {
	cfg := Default()
	cfg.Admin.SessionSecret = "key"
	cfg.Admin.PasswordHash = "$2a$10$abcdefghijklmnopqrstuv"

	assert.NoError(t, cfg.Validate())
}
