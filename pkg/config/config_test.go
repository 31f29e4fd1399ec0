package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Provide a path that definitely doesn't exist
	config, err := LoadConfig("non_existent_config.yml")
	require.NoError(t, err)

	assert.Equal(t, "!", config.Bot.CommandPrefix)
	assert.Equal(t, "🎣", config.Bot.AutoReactEmoji)
	assert.Equal(t, 30*time.Minute, config.BaitWindow())
	assert.Equal(t, 24*time.Hour, config.DebaitWindow())
	assert.Equal(t, 10, config.Ledger.MaxReasons)
	assert.Equal(t, 10, config.Ledger.PageSize)
	assert.Equal(t, "file", config.Storage.Backend)
	assert.Equal(t, "bait_data.json", config.Storage.DataFile)
	assert.Equal(t, time.Hour, config.CursorTTL())
	assert.Equal(t, "@every 15m", config.Status.Schedule)
	assert.Empty(t, config.Metrics.ListenAddr)
	assert.NoError(t, config.Validate())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
bot:
  command_prefix: "?"
  auto_react_emoji: "🐟"
cooldowns:
  bait_seconds: 60
  debait_seconds: 3600
ledger:
  max_reasons: 5
  page_size: 4
storage:
  backend: surreal
pagination:
  cursor_ttl_minutes: 15
metrics:
  listen_addr: ":9100"
logging:
  level: debug
  format: json
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "?", config.Bot.CommandPrefix)
	assert.Equal(t, "🐟", config.Bot.AutoReactEmoji)
	assert.Equal(t, time.Minute, config.BaitWindow())
	assert.Equal(t, time.Hour, config.DebaitWindow())
	assert.Equal(t, 5, config.Ledger.MaxReasons)
	assert.Equal(t, 4, config.Ledger.PageSize)
	assert.Equal(t, "surreal", config.Storage.Backend)
	assert.Equal(t, 15*time.Minute, config.CursorTTL())
	assert.Equal(t, ":9100", config.Metrics.ListenAddr)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "json", config.Logging.Format)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
cooldowns:
  bait_seconds: 10
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, config.BaitWindow())
	assert.Equal(t, 24*time.Hour, config.DebaitWindow())
	assert.Equal(t, "bait_data.json", config.Storage.DataFile)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, `
cooldowns:
  bait_seconds: "not a number"
  broken_yaml: [ unclosed bracket
`)

	config, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, config)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero debait window", "cooldowns:\n  debait_seconds: 0\n"},
		{"negative page size", "ledger:\n  page_size: -1\n"},
		{"zero max reasons", "ledger:\n  max_reasons: 0\n"},
		{"unknown backend", "storage:\n  backend: sqlite\n"},
		{"empty data file", "storage:\n  data_file: \"\"\n"},
		{"empty prefix", "bot:\n  command_prefix: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
			assert.Nil(t, config)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token-123")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	env, err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "token-123", env.DiscordToken)
	assert.Equal(t, "redis://localhost:6379/0", env.RedisURL)
	assert.Equal(t, "baitbot", env.SurrealNS)
	assert.Equal(t, "ledger", env.SurrealDatabase)
}

func TestLoadEnv_FromDotEnvFile(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	os.Unsetenv("DISCORD_TOKEN")
	t.Setenv("DISCORD_GUILD_ID", "")
	os.Unsetenv("DISCORD_GUILD_ID")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DISCORD_TOKEN=from-file\nDISCORD_GUILD_ID=987\n"), 0o644))

	env, err := LoadEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", env.DiscordToken)
	assert.Equal(t, "987", env.DiscordGuildID)
}

func TestLoadEnv_MissingToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	os.Unsetenv("DISCORD_TOKEN")

	_, err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
