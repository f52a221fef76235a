// internal/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"inventory-dashboard/internal/carousel"
)

type DatabaseConfig struct {
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type CarouselConfig struct {
	IntervalMs           int             `yaml:"interval_ms"`
	IdleTimeoutMinutes   int             `yaml:"idle_timeout_minutes"`
	SweepIntervalSecs    int             `yaml:"sweep_interval_seconds"`
	ItemSyncIntervalSecs int             `yaml:"item_sync_interval_seconds"`
	Items                []carousel.Item `yaml:"items"`
}

func (c CarouselConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

func (c CarouselConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}

func (c CarouselConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSecs) * time.Second
}

func (c CarouselConfig) ItemSyncInterval() time.Duration {
	return time.Duration(c.ItemSyncIntervalSecs) * time.Second
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type Config struct {
	SiteName             string          `yaml:"site_name"`
	CompanyName          string          `yaml:"company_name"`
	BaseURL              string          `yaml:"base_url"`
	Port                 int             `yaml:"port"`
	AppEnv               string          `yaml:"app_env"`
	TemplatesPath        string          `yaml:"templates_path"`
	StaticPath           string          `yaml:"static_path"`
	SessionLifetimeHours int             `yaml:"session_lifetime_hours"`
	Database             DatabaseConfig  `yaml:"database"`
	Carousel             CarouselConfig  `yaml:"carousel"`
	RateLimit            RateLimitConfig `yaml:"rate_limit"`
	SentryDSN            string          `yaml:"sentry_dsn"`
	CSRFAuthKey          string
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getStringEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
		slog.Warn("Could not parse environment variable as a number, using default", "key", key, "value", valueStr)
	}
	return defaultValue
}

func LoadConfig(filename string) (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			slog.Info("configs/.env not loaded, relying on the process environment", "error", err)
		} else {
			slog.Info("Environment loaded from configs/.env")
		}
	}

	file, err := os.Open(filename)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", filename)
	}
	if err != nil {
		return nil, fmt.Errorf("open config file '%s': %w", filename, err)
	}
	defer file.Close()

	var cfg Config
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode YAML from '%s': %w", filename, err)
	}

	cfg.AppEnv = getStringEnvOrDefault("APP_ENV", cfg.AppEnv)
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	isProduction := cfg.IsProduction()

	cfg.BaseURL = strings.TrimSuffix(getStringEnvOrDefault("BASE_URL", cfg.BaseURL), "/")
	cfg.Port = getIntEnvOrDefault("PORT", cfg.Port)
	cfg.SentryDSN = getStringEnvOrDefault("SENTRY_DSN", cfg.SentryDSN)
	cfg.Carousel.IntervalMs = getIntEnvOrDefault("CAROUSEL_INTERVAL_MS", cfg.Carousel.IntervalMs)

	cfg.CSRFAuthKey = getStringEnvOrDefault("CSRF_AUTH_KEY", "")
	if isProduction && cfg.CSRFAuthKey == "" {
		return nil, fmt.Errorf("CSRF_AUTH_KEY must be set in production")
	}
	if !isProduction && cfg.CSRFAuthKey == "" {
		slog.Warn("CSRF_AUTH_KEY is not set (development only)")
	}

	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		cfg.Database.Path = dsn
		cfg.Database.Host = ""
		cfg.Database.Port = 0
		cfg.Database.User = ""
	} else {
		cfg.Database.Host = getStringEnvOrDefault("DB_HOST", cfg.Database.Host)
		cfg.Database.Port = getIntEnvOrDefault("DB_PORT", cfg.Database.Port)
		cfg.Database.User = getStringEnvOrDefault("DB_USER", cfg.Database.User)
		cfg.Database.DBName = getStringEnvOrDefault("DB_NAME", cfg.Database.DBName)
		cfg.Database.Password = getStringEnvOrDefault("DB_PASSWORD", cfg.Database.Password)
		cfg.Database.Path = ""
	}

	applyDefaults(&cfg)

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("BASE_URL is not set")
	}
	if isProduction && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return nil, fmt.Errorf("BASE_URL must start with https:// in production")
	}
	if cfg.Database.Path == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database connection is not configured (DATABASE_DSN or DB_HOST)")
	}
	if cfg.Database.Host != "" {
		if cfg.Database.User == "" {
			return nil, fmt.Errorf("DB_USER is not set")
		}
		if cfg.Database.DBName == "" {
			return nil, fmt.Errorf("DB_NAME is not set")
		}
	}
	if err := validateItems(cfg.Carousel.Items); err != nil {
		return nil, err
	}

	slog.Info("Configuration loaded", "app_env", cfg.AppEnv, "base_url", cfg.BaseURL, "port", cfg.Port,
		"carousel_interval", cfg.Carousel.Interval(), "featured_items", len(cfg.Carousel.Items))
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.SiteName == "" {
		cfg.SiteName = "Inventory Dashboard"
	}
	if cfg.CompanyName == "" {
		cfg.CompanyName = "Your Company Name"
	}
	if cfg.TemplatesPath == "" {
		cfg.TemplatesPath = "templates"
	}
	if cfg.StaticPath == "" {
		cfg.StaticPath = "static"
	}
	if cfg.SessionLifetimeHours <= 0 {
		cfg.SessionLifetimeHours = 24
	}
	if cfg.Carousel.IntervalMs <= 0 {
		cfg.Carousel.IntervalMs = int(carousel.DefaultInterval / time.Millisecond)
	}
	if cfg.Carousel.IdleTimeoutMinutes <= 0 {
		cfg.Carousel.IdleTimeoutMinutes = 30
	}
	if cfg.Carousel.SweepIntervalSecs <= 0 {
		cfg.Carousel.SweepIntervalSecs = 60
	}
	if cfg.Carousel.ItemSyncIntervalSecs <= 0 {
		cfg.Carousel.ItemSyncIntervalSecs = 30
	}
	if len(cfg.Carousel.Items) == 0 {
		cfg.Carousel.Items = carousel.DefaultItems()
	}
	if cfg.RateLimit.RPS <= 0 {
		cfg.RateLimit.RPS = 5
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 10
	}
}

func validateItems(items []carousel.Item) error {
	for i, it := range items {
		if strings.TrimSpace(it.ImageRef) == "" {
			return fmt.Errorf("carousel.items[%d]: image_ref is empty", i)
		}
		if strings.TrimSpace(it.Title) == "" {
			return fmt.Errorf("carousel.items[%d]: title is empty", i)
		}
	}
	return nil
}

func InitLogger(appEnv string) {
	var logger *slog.Logger
	logLevel := slog.LevelInfo

	if appEnv == "development" {
		logLevel = slog.LevelDebug
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: false,
		}))
	}
	slog.SetDefault(logger)
}
