package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Log        LogConfig
	Event      EventConfig
	HTTP       HTTPConfig
	Telemetry  TelemetryConfig
	Storage    StorageConfig
	Settlement SettlementConfig
	Policy     PolicyConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
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
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings.
// When disabled the in-memory idempotency store is used.
type RedisConfig struct {
	Enabled     bool
	Host        string
	Port        int
	Password    string
	DB          int
	DialTimeout time.Duration
	KeyPrefix   string
}

// EventConfig holds event delivery configuration
type EventConfig struct {
	IdempotencyEnabled bool
	IdempotencyTTL     time.Duration
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable OpenTelemetry
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string  // Service name for traces
	Insecure          bool    // Use insecure (non-TLS) connection (development only)
	DBTraceEnabled    bool
	DBLogFullSQL      bool
	DBSlowQueryThresh time.Duration
	// MetricsEnabled exports business metrics over the same collector
	MetricsEnabled        bool
	MetricsExportInterval time.Duration
}

// StorageConfig holds S3-compatible object storage settings for KYC files.
// Storage is disabled when Bucket is empty.
type StorageConfig struct {
	Endpoint        string // custom endpoint for MinIO and friends; empty uses AWS
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	PresignExpiry   time.Duration
	KeyPrefix       string // optional root folder inside the bucket
}

// SettlementConfig holds settlement rail settings. Outside sandbox mode
// payouts are submitted to the disbursement gateway at GatewayURL.
type SettlementConfig struct {
	SandboxMode        bool
	GatewayURL         string
	GatewayAPIKey      string
	GatewayTimeout     time.Duration
	BankTransferETA    time.Duration
	MobileBankingETA   time.Duration
	CheckETA           time.Duration
	MobileBankingLimit float64 // per-transfer ceiling in BDT, negative disables the check
}

// PolicyConfig holds the business rules that are configurable at deploy time
type PolicyConfig struct {
	AutoVerifyThreshold      int
	WithholdingTaxRate       float64
	DefaultCommissionRate    float64
	PlatformFeeRate          float64
	StartingPerformanceScore int
	StartingTier             string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with VH_ prefix (e.g., VH_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("VH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Rates where zero is a meaningful setting (tax-exempt, fee-free) get their
	// defaults here instead of in applyDefaults, so an explicit 0 survives.
	v.SetDefault("policy.withholding_tax_rate", 0.05)
	v.SetDefault("policy.default_commission_rate", 0.10)
	v.SetDefault("policy.platform_fee_rate", 0.01)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
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
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Enabled:     v.GetBool("redis.enabled"),
			Host:        v.GetString("redis.host"),
			Port:        v.GetInt("redis.port"),
			Password:    v.GetString("redis.password"),
			DB:          v.GetInt("redis.db"),
			DialTimeout: v.GetDuration("redis.dial_timeout"),
			KeyPrefix:   v.GetString("redis.key_prefix"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Event: EventConfig{
			IdempotencyEnabled: !v.IsSet("event.idempotency_enabled") || v.GetBool("event.idempotency_enabled"),
			IdempotencyTTL:     v.GetDuration("event.idempotency_ttl"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
			DBLogFullSQL:      v.GetBool("telemetry.db_log_full_sql"),
			DBSlowQueryThresh: v.GetDuration("telemetry.db_slow_query_threshold"),

			MetricsEnabled:        v.GetBool("telemetry.metrics_enabled"),
			MetricsExportInterval: v.GetDuration("telemetry.metrics_export_interval"),
		},
		Storage: StorageConfig{
			Endpoint:        v.GetString("storage.endpoint"),
			Region:          v.GetString("storage.region"),
			Bucket:          v.GetString("storage.bucket"),
			AccessKeyID:     v.GetString("storage.access_key_id"),
			SecretAccessKey: v.GetString("storage.secret_access_key"),
			UsePathStyle:    v.GetBool("storage.use_path_style"),
			PresignExpiry:   v.GetDuration("storage.presign_expiry"),
			KeyPrefix:       v.GetString("storage.key_prefix"),
		},
		Settlement: SettlementConfig{
			SandboxMode:        !v.IsSet("settlement.sandbox_mode") || v.GetBool("settlement.sandbox_mode"),
			GatewayURL:         v.GetString("settlement.gateway_url"),
			GatewayAPIKey:      v.GetString("settlement.gateway_api_key"),
			GatewayTimeout:     v.GetDuration("settlement.gateway_timeout"),
			BankTransferETA:    v.GetDuration("settlement.bank_transfer_eta"),
			MobileBankingETA:   v.GetDuration("settlement.mobile_banking_eta"),
			CheckETA:           v.GetDuration("settlement.check_eta"),
			MobileBankingLimit: v.GetFloat64("settlement.mobile_banking_limit"),
		},
		Policy: PolicyConfig{
			AutoVerifyThreshold:      v.GetInt("policy.auto_verify_threshold"),
			WithholdingTaxRate:       v.GetFloat64("policy.withholding_tax_rate"),
			DefaultCommissionRate:    v.GetFloat64("policy.default_commission_rate"),
			PlatformFeeRate:          v.GetFloat64("policy.platform_fee_rate"),
			StartingPerformanceScore: v.GetInt("policy.starting_performance_score"),
			StartingTier:             v.GetString("policy.starting_tier"),
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
		cfg.App.Name = "vendorhub-backend"
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
		cfg.Database.DBName = "vendorhub"
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
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = 5 * time.Second
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
	if cfg.Event.IdempotencyTTL == 0 {
		cfg.Event.IdempotencyTTL = 24 * time.Hour
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
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 2 << 20 // 2MB, files go straight to object storage
	}
	// No CORS origin fallback: cross-origin requests stay blocked until configured.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "X-Request-ID", "X-User-ID"}
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "vendorhub-backend"
	}
	if cfg.Telemetry.DBSlowQueryThresh == 0 {
		cfg.Telemetry.DBSlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "ap-south-1"
	}
	if cfg.Storage.PresignExpiry == 0 {
		cfg.Storage.PresignExpiry = 15 * time.Minute
	}
	if cfg.Settlement.GatewayTimeout == 0 {
		cfg.Settlement.GatewayTimeout = 30 * time.Second
	}
	if cfg.Settlement.BankTransferETA == 0 {
		cfg.Settlement.BankTransferETA = 48 * time.Hour
	}
	if cfg.Settlement.MobileBankingETA == 0 {
		cfg.Settlement.MobileBankingETA = 30 * time.Minute
	}
	if cfg.Settlement.MobileBankingLimit == 0 {
		cfg.Settlement.MobileBankingLimit = 25000
	}
	if cfg.Settlement.CheckETA == 0 {
		cfg.Settlement.CheckETA = 7 * 24 * time.Hour
	}
	if cfg.Policy.AutoVerifyThreshold == 0 {
		cfg.Policy.AutoVerifyThreshold = 85
	}
	if cfg.Policy.StartingPerformanceScore == 0 {
		cfg.Policy.StartingPerformanceScore = 75
	}
	if cfg.Policy.StartingTier == "" {
		cfg.Policy.StartingTier = "bronze"
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

	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Telemetry.DBLogFullSQL {
			return fmt.Errorf("telemetry.db_log_full_sql must be false in production")
		}
		if c.Settlement.SandboxMode {
			return fmt.Errorf("settlement.sandbox_mode must be false in production")
		}
	}

	if !c.Settlement.SandboxMode && c.Settlement.GatewayURL == "" {
		return fmt.Errorf("settlement.gateway_url is required when sandbox_mode is false")
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	if c.Policy.AutoVerifyThreshold < 0 || c.Policy.AutoVerifyThreshold > 100 {
		return fmt.Errorf("policy.auto_verify_threshold must be between 0 and 100, got %d", c.Policy.AutoVerifyThreshold)
	}
	for name, rate := range map[string]float64{
		"policy.withholding_tax_rate":    c.Policy.WithholdingTaxRate,
		"policy.default_commission_rate": c.Policy.DefaultCommissionRate,
		"policy.platform_fee_rate":       c.Policy.PlatformFeeRate,
	} {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %f", name, rate)
		}
	}
	switch c.Policy.StartingTier {
	case "bronze", "silver", "gold", "platinum":
	default:
		return fmt.Errorf("policy.starting_tier must be one of bronze, silver, gold, platinum, got %q", c.Policy.StartingTier)
	}

	return nil
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

// Addr returns the Redis host:port
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
