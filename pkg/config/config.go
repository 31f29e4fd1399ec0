package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Bot struct {
		CommandPrefix  string `yaml:"command_prefix"`
		AutoReactEmoji string `yaml:"auto_react_emoji"`
	} `yaml:"bot"`
	Cooldowns struct {
		BaitSeconds   int `yaml:"bait_seconds"`
		DebaitSeconds int `yaml:"debait_seconds"`
	} `yaml:"cooldowns"`
	Ledger struct {
		MaxReasons int `yaml:"max_reasons"`
		PageSize   int `yaml:"page_size"`
	} `yaml:"ledger"`
	Storage struct {
		Backend  string `yaml:"backend"`
		DataFile string `yaml:"data_file"`
	} `yaml:"storage"`
	Pagination struct {
		CursorTTLMinutes int `yaml:"cursor_ttl_minutes"`
	} `yaml:"pagination"`
	Status struct {
		Schedule string `yaml:"schedule"`
	} `yaml:"status"`
	Metrics struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"metrics"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// Env holds secrets and deployment settings read from the environment.
type Env struct {
	DiscordToken    string `envconfig:"DISCORD_TOKEN" required:"true"`
	DiscordGuildID  string `envconfig:"DISCORD_GUILD_ID"`
	RedisURL        string `envconfig:"REDIS_URL"`
	SurrealHost     string `envconfig:"SURREAL_DB_HOST"`
	SurrealUser     string `envconfig:"SURREAL_DB_USER"`
	SurrealPass     string `envconfig:"SURREAL_DB_PASS"`
	SurrealNS       string `envconfig:"SURREAL_DB_NAMESPACE" default:"baitbot"`
	SurrealDatabase string `envconfig:"SURREAL_DB_DATABASE" default:"ledger"`
}

func defaults() *Config {
	config := &Config{}
	config.Bot.CommandPrefix = "!"
	config.Bot.AutoReactEmoji = "🎣"
	config.Cooldowns.BaitSeconds = 1800
	config.Cooldowns.DebaitSeconds = 86400
	config.Ledger.MaxReasons = 10
	config.Ledger.PageSize = 10
	config.Storage.Backend = "file"
	config.Storage.DataFile = "bait_data.json"
	config.Pagination.CursorTTLMinutes = 60
	config.Status.Schedule = "@every 15m"
	config.Logging.Level = "info"
	config.Logging.Format = "text"
	return config
}

// LoadConfig reads path over the defaults. A missing file means defaults.
func LoadConfig(path string) (*Config, error) {
	config := defaults()

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return config, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(file, config)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.Bot.CommandPrefix == "" {
		return fmt.Errorf("bot.command_prefix must not be empty")
	}
	if c.Cooldowns.BaitSeconds <= 0 || c.Cooldowns.DebaitSeconds <= 0 {
		return fmt.Errorf("cooldowns must be positive")
	}
	if c.Ledger.MaxReasons <= 0 {
		return fmt.Errorf("ledger.max_reasons must be positive")
	}
	if c.Ledger.PageSize <= 0 {
		return fmt.Errorf("ledger.page_size must be positive")
	}
	switch c.Storage.Backend {
	case "file":
		if c.Storage.DataFile == "" {
			return fmt.Errorf("storage.data_file must be set for the file backend")
		}
	case "surreal":
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}
	return nil
}

func (c *Config) BaitWindow() time.Duration {
	return time.Duration(c.Cooldowns.BaitSeconds) * time.Second
}

func (c *Config) DebaitWindow() time.Duration {
	return time.Duration(c.Cooldowns.DebaitSeconds) * time.Second
}

func (c *Config) CursorTTL() time.Duration {
	return time.Duration(c.Pagination.CursorTTLMinutes) * time.Minute
}

// LoadEnv loads .env files if present and maps the environment onto Env.
func LoadEnv(files ...string) (*Env, error) {
	// A missing .env is normal in containers.
	_ = godotenv.Load(files...)

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	return &env, nil
}
