package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DialectMySQL    = "mysql"
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	Environment string
	Port        string

	LogLevel  string
	LogFormat string

	// Timezone is used for day boundaries and displayed timestamps.
	Timezone string
	Location *time.Location

	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Billing  BillingConfig

	FilterCacheTTL         time.Duration
	PlaceholderEmailDomain string
	DegradedMode           bool
	MaxPageSize            int
}

type DatabaseConfig struct {
	Type            string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	TablePrefix     string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret        string
	JWTExpire        time.Duration
	Required         bool
	DefaultAdminUser string

	// Bootstrap* create the first admin account at start when set.
	BootstrapEmail    string
	BootstrapPassword string
	BootstrapName     string
}

// BillingConfig configures the external billing endpoint and its
// shared-secret envelope. The secrets must match the ones used by the
// billing service.
type BillingConfig struct {
	URL           string
	Timeout       time.Duration
	KeySecret     string
	IVSecret      string
	CancelEnabled bool
}

// Enabled reports whether outbound billing calls can be made.
func (b BillingConfig) Enabled() bool {
	return strings.TrimSpace(b.URL) != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "checkout-dashboard")
	v.SetDefault("environment", "development")
	v.SetDefault("port", "5000")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("timezone", "UTC")

	v.SetDefault("database_type", DialectMySQL)
	v.SetDefault("database_host", "localhost")
	v.SetDefault("database_port", "3306")
	v.SetDefault("database_name", "checkout")
	v.SetDefault("database_user", "root")
	v.SetDefault("database_password", "")
	v.SetDefault("database_sslmode", "disable")
	v.SetDefault("database_table_prefix", "")
	v.SetDefault("database_max_idle_conns", 5)
	v.SetDefault("database_max_open_conns", 20)
	v.SetDefault("database_conn_max_lifetime", "30m")
	v.SetDefault("database_slow_threshold", "200ms")

	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("filter_cache_ttl", "5m")

	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_expire", "24h")
	v.SetDefault("auth_required", true)
	v.SetDefault("default_admin_user", "admin")
	v.SetDefault("admin_email", "")
	v.SetDefault("admin_password", "")
	v.SetDefault("admin_name", "Administrator")

	v.SetDefault("placeholder_email_domain", "appypie.com")
	v.SetDefault("degraded_mode", false)
	v.SetDefault("max_page_size", 100)

	v.SetDefault("billing_api_url", "")
	v.SetDefault("billing_api_timeout", "15s")
	v.SetDefault("billing_key_secret", "")
	v.SetDefault("billing_iv_secret", "")
	v.SetDefault("billing_cancel_enabled", false)
}

// Load reads configuration from the environment, an optional .env file and
// an optional dashboard.yml file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("dashboard")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/checkoutdash")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppName:     v.GetString("app_name"),
		Environment: v.GetString("environment"),
		Port:        v.GetString("port"),
		LogLevel:    v.GetString("log_level"),
		LogFormat:   v.GetString("log_format"),
		Timezone:    strings.TrimSpace(v.GetString("timezone")),
		Database: DatabaseConfig{
			Type:            strings.ToLower(strings.TrimSpace(v.GetString("database_type"))),
			Host:            v.GetString("database_host"),
			Port:            v.GetString("database_port"),
			Name:            v.GetString("database_name"),
			User:            v.GetString("database_user"),
			Password:        v.GetString("database_password"),
			SSLMode:         v.GetString("database_sslmode"),
			TablePrefix:     v.GetString("database_table_prefix"),
			MaxIdleConns:    v.GetInt("database_max_idle_conns"),
			MaxOpenConns:    v.GetInt("database_max_open_conns"),
			ConnMaxLifetime: v.GetDuration("database_conn_max_lifetime"),
			SlowThreshold:   v.GetDuration("database_slow_threshold"),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(v.GetString("redis_addr")),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
		},
		Auth: AuthConfig{
			JWTSecret:        strings.TrimSpace(v.GetString("jwt_secret")),
			JWTExpire:        v.GetDuration("jwt_expire"),
			Required:         v.GetBool("auth_required"),
			DefaultAdminUser: v.GetString("default_admin_user"),

			BootstrapEmail:    strings.TrimSpace(v.GetString("admin_email")),
			BootstrapPassword: v.GetString("admin_password"),
			BootstrapName:     v.GetString("admin_name"),
		},
		Billing: BillingConfig{
			URL:           strings.TrimSpace(v.GetString("billing_api_url")),
			Timeout:       v.GetDuration("billing_api_timeout"),
			KeySecret:     v.GetString("billing_key_secret"),
			IVSecret:      v.GetString("billing_iv_secret"),
			CancelEnabled: v.GetBool("billing_cancel_enabled"),
		},
		FilterCacheTTL:         v.GetDuration("filter_cache_ttl"),
		PlaceholderEmailDomain: v.GetString("placeholder_email_domain"),
		DegradedMode:           v.GetBool("degraded_mode"),
		MaxPageSize:            v.GetInt("max_page_size"),
	}

	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail at request time.
func (c Config) Validate() error {
	switch c.Database.Type {
	case DialectMySQL, DialectPostgres, DialectSQLite:
	default:
		return fmt.Errorf("unsupported DATABASE_TYPE %q", c.Database.Type)
	}
	if c.Auth.Required && c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required when AUTH_REQUIRED is true")
	}
	if c.MaxPageSize < 1 {
		return fmt.Errorf("MAX_PAGE_SIZE must be positive, got %d", c.MaxPageSize)
	}
	if c.Billing.Enabled() && (c.Billing.KeySecret == "" || c.Billing.IVSecret == "") {
		return errors.New("BILLING_KEY_SECRET and BILLING_IV_SECRET are required when BILLING_API_URL is set")
	}
	if c.Auth.BootstrapEmail != "" && c.Auth.BootstrapPassword == "" {
		return errors.New("ADMIN_PASSWORD is required when ADMIN_EMAIL is set")
	}
	if c.Billing.Timeout <= 0 {
		return errors.New("BILLING_API_TIMEOUT must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
