package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
# assistant config
http:
  port: 8080

sessions:
  ttl_hours: 6

database:
  host: db.local
  port: 5433
  user: brew
  password: "secret"
  database: brew_assistant

rabbitmq:
  host: mq.local
  user: guest
  password: guest
  vhost: "/brew"
`)

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 6, cfg.Sessions.TTLHours)
	assert.True(t, cfg.DatabaseConfigured())
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.True(t, cfg.RabbitConfigured())
	assert.Equal(t, 5672, cfg.Rabbit.Port, "default port kept when omitted")
	assert.Equal(t, "/brew", cfg.Rabbit.VHost)
}

func TestLoadMinimal(t *testing.T) {
	cfg, err := Load(writeConfig(t, "http:\n  port: 3100\n"))
	assert.NoError(t, err)
	assert.Equal(t, 3100, cfg.HTTP.Port)
	assert.False(t, cfg.DatabaseConfigured())
	assert.False(t, cfg.RabbitConfigured())
	assert.Equal(t, 12, cfg.Sessions.TTLHours, "default TTL")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "# nothing configured\n"))
	assert.NoError(t, err)
	assert.Equal(t, 3000, cfg.HTTP.Port)
}

func TestLoadIncompleteDatabase(t *testing.T) {
	_, err := Load(writeConfig(t, "database:\n  host: db.local\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
