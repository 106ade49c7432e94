package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Trello   TrelloConfig   `mapstructure:"trello"`
	GChat    GChatConfig    `mapstructure:"gchat"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Notify   NotifyConfig   `mapstructure:"notify"`
}

type ServerConfig struct {
	Port           string          `mapstructure:"port"`
	Mode           string          `mapstructure:"mode"`
	AllowedOrigins []string        `mapstructure:"allowed_origins"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig allows Requests per client IP in every Window.
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TrelloConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	APIToken string        `mapstructure:"api_token"`
	BaseURL  string        `mapstructure:"base_url"`
	BoardID  string        `mapstructure:"board_id"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type GChatConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// AdminConfig seeds an admin account on startup when Email and Password are set.
type AdminConfig struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type NotifyConfig struct {
	Timezone   string `mapstructure:"timezone"`
	DateLayout string `mapstructure:"date_layout"`
}

// Location resolves the configured timezone.
func (n NotifyConfig) Location() (*time.Location, error) {
	return time.LoadLocation(n.Timezone)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.rate_limit.requests", 100)
	v.SetDefault("server.rate_limit.window", 15*time.Minute)
	v.SetDefault("database.path", "notify.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("trello.api_key", "")
	v.SetDefault("trello.api_token", "")
	v.SetDefault("trello.base_url", "https://api.trello.com/1")
	v.SetDefault("trello.board_id", "")
	v.SetDefault("trello.timeout", 10*time.Second)
	v.SetDefault("gchat.timeout", 10*time.Second)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("admin.name", "Administrator")
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("notify.timezone", "Asia/Jakarta")
	v.SetDefault("notify.date_layout", "1/2/2006")
}

// Load reads config.toml from the given directories (the working directory
// when none are given). Every key can be overridden from the environment,
// e.g. TGN_TRELLO_API_KEY for trello.api_key. A missing file is not an error.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("TGN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var missing []string
	if c.Trello.APIKey == "" {
		missing = append(missing, "trello.api_key")
	}
	if c.Trello.APIToken == "" {
		missing = append(missing, "trello.api_token")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "auth.jwt_secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	if _, err := c.Notify.Location(); err != nil {
		return fmt.Errorf("invalid notify.timezone %q: %w", c.Notify.Timezone, err)
	}
	return nil
}
