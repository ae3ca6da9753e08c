package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	ConsumerKey    string        `mapstructure:"responder_consumer_key"`
	ConsumerSecret string        `mapstructure:"responder_consumer_secret"`
	UserKey        string        `mapstructure:"responder_user_key"`
	UserSecret     string        `mapstructure:"responder_user_secret"`
	BaseURL        string        `mapstructure:"responder_base_url"`
	BodyEncoding   string        `mapstructure:"responder_body_encoding"`
	TimeoutSeconds int64         `mapstructure:"responder_timeout_seconds"`
	Timeout        time.Duration `mapstructure:"-"`

	PublishersFile string `mapstructure:"publishers_file"`

	JournalType            string        `mapstructure:"journal_type"`
	JournalPath            string        `mapstructure:"journal_path"`
	JournalTTLSeconds      int64         `mapstructure:"journal_ttl_seconds"`
	JournalCleanupSeconds  int64         `mapstructure:"journal_cleanup_interval_seconds"`
	JournalTTL             time.Duration `mapstructure:"-"`
	JournalCleanupInterval time.Duration `mapstructure:"-"`
}

// Redacted returns a copy safe for logging.
func (c Config) Redacted() Config {
	c.ConsumerSecret = mask(c.ConsumerSecret)
	c.UserSecret = mask(c.UserSecret)
	return c
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "responder-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("responder_consumer_key", "")
	v.SetDefault("responder_consumer_secret", "")
	v.SetDefault("responder_user_key", "")
	v.SetDefault("responder_user_secret", "")
	v.SetDefault("responder_base_url", "http://api.responder.co.il")
	v.SetDefault("responder_body_encoding", "json")
	v.SetDefault("responder_timeout_seconds", 30)
	v.SetDefault("publishers_file", "")
	v.SetDefault("journal_type", "bbolt")
	v.SetDefault("journal_path", "./data/journal.db")
	v.SetDefault("journal_ttl_seconds", int64((30*24*time.Hour)/time.Second))
	v.SetDefault("journal_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) finalize() error {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	c.PublishersFile = strings.TrimSpace(c.PublishersFile)

	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("invalid responder_timeout_seconds (must be positive seconds)")
	}
	c.Timeout = time.Duration(c.TimeoutSeconds) * time.Second

	if c.JournalTTLSeconds <= 0 {
		return fmt.Errorf("invalid journal_ttl_seconds (must be positive seconds)")
	}
	if c.JournalCleanupSeconds <= 0 {
		return fmt.Errorf("invalid journal_cleanup_interval_seconds (must be positive seconds)")
	}
	c.JournalTTL = time.Duration(c.JournalTTLSeconds) * time.Second
	c.JournalCleanupInterval = time.Duration(c.JournalCleanupSeconds) * time.Second
	return nil
}

// RequireCredentials fails when any of the four OAuth1 values is missing.
func (c *Config) RequireCredentials() error {
	missing := make([]string, 0, 4)
	for name, val := range map[string]string{
		"RESPONDER_CONSUMER_KEY":    c.ConsumerKey,
		"RESPONDER_CONSUMER_SECRET": c.ConsumerSecret,
		"RESPONDER_USER_KEY":        c.UserKey,
		"RESPONDER_USER_SECRET":     c.UserSecret,
	} {
		if strings.TrimSpace(val) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}
