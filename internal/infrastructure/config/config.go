package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Log          LogConfig
	HTTP         HTTPConfig
	Fulfillment  FulfillmentConfig
	Mail         MailConfig
	Notification NotificationConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
	// URL is the public storefront base URL linked from notification bodies
	URL string
}

// DatabaseConfig holds storefront database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
}

// FulfillmentConfig holds the logistics platform settings. Either the full
// credential triple or a static token must be present for the platform
// client to start.
type FulfillmentConfig struct {
	APIKey                string `validate:"required"`
	BaseURL               string `validate:"required,url"`
	MarketplaceID         string
	DefaultShippingMethod int
	CarrierID             string

	AuthEmail    string `validate:"omitempty,email"`
	AuthPassword string
	LocationKey  string
	StaticToken  string

	TokenTTL time.Duration
	Timeout  time.Duration

	ExpressLeadDays  int
	StandardLeadDays int

	Brand       string
	TaxRate     string
	TaxRuleName string

	ProductSyncPace time.Duration
}

// MailConfig holds the transactional mail API settings
type MailConfig struct {
	APIKey        string
	BaseURL       string
	SenderAddress string
	FromName      string
	Timeout       time.Duration
}

// NotificationConfig holds dispatch queue and retry settings
type NotificationConfig struct {
	QueueSize  int
	MaxRetries int
	BaseDelay  time.Duration
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with STOREFRONT_ prefix (e.g. STOREFRONT_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
			URL:  v.GetString("app.url"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
		},
		Fulfillment: FulfillmentConfig{
			APIKey:                v.GetString("fulfillment.api_key"),
			BaseURL:               v.GetString("fulfillment.base_url"),
			MarketplaceID:         v.GetString("fulfillment.marketplace_id"),
			DefaultShippingMethod: v.GetInt("fulfillment.default_shipping_method"),
			CarrierID:             v.GetString("fulfillment.carrier_id"),
			AuthEmail:             v.GetString("fulfillment.auth_email"),
			AuthPassword:          v.GetString("fulfillment.auth_password"),
			LocationKey:           v.GetString("fulfillment.location_key"),
			StaticToken:           v.GetString("fulfillment.static_token"),
			TokenTTL:              v.GetDuration("fulfillment.token_ttl"),
			Timeout:               v.GetDuration("fulfillment.timeout"),
			ExpressLeadDays:       v.GetInt("fulfillment.express_lead_days"),
			StandardLeadDays:      v.GetInt("fulfillment.standard_lead_days"),
			Brand:                 v.GetString("fulfillment.brand"),
			TaxRate:               v.GetString("fulfillment.tax_rate"),
			TaxRuleName:           v.GetString("fulfillment.tax_rule_name"),
			ProductSyncPace:       v.GetDuration("fulfillment.product_sync_pace"),
		},
		Mail: MailConfig{
			APIKey:        v.GetString("mail.api_key"),
			BaseURL:       v.GetString("mail.base_url"),
			SenderAddress: v.GetString("mail.sender_address"),
			FromName:      v.GetString("mail.from_name"),
			Timeout:       v.GetDuration("mail.timeout"),
		},
		Notification: NotificationConfig{
			QueueSize:  v.GetInt("notification.queue_size"),
			MaxRetries: v.GetInt("notification.max_retries"),
			BaseDelay:  v.GetDuration("notification.base_delay"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "storefront-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "storefront"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.Fulfillment.TokenTTL == 0 {
		cfg.Fulfillment.TokenTTL = time.Hour
	}
	if cfg.Fulfillment.Timeout == 0 {
		cfg.Fulfillment.Timeout = 10 * time.Second
	}
	if cfg.Fulfillment.ProductSyncPace == 0 {
		cfg.Fulfillment.ProductSyncPace = 500 * time.Millisecond
	}
	if cfg.Mail.Timeout == 0 {
		cfg.Mail.Timeout = 10 * time.Second
	}
	if cfg.Notification.QueueSize == 0 {
		cfg.Notification.QueueSize = 128
	}
	if cfg.Notification.MaxRetries == 0 {
		cfg.Notification.MaxRetries = 3
	}
	if cfg.Notification.BaseDelay == 0 {
		cfg.Notification.BaseDelay = time.Second
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	// The fulfillment block is only checked when it is configured at all:
	// a storefront without a logistics integration runs with the platform
	// client disabled.
	if c.Fulfillment.Configured() {
		if err := validator.New().Struct(c.Fulfillment); err != nil {
			return fmt.Errorf("fulfillment config invalid: %w", err)
		}
		hasCredentials := c.Fulfillment.AuthEmail != "" &&
			c.Fulfillment.AuthPassword != "" &&
			c.Fulfillment.LocationKey != ""
		if !hasCredentials && c.Fulfillment.StaticToken == "" {
			return fmt.Errorf("fulfillment config requires either auth credentials or a static token")
		}
	}

	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
	}

	return nil
}

// Configured reports whether a fulfillment platform is set up at all
func (f *FulfillmentConfig) Configured() bool {
	return f.APIKey != "" || f.BaseURL != ""
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
