package config

import (
	"fmt"
	"strings"

	"github.com/moojpayam/api/internal/logger"

	"github.com/spf13/viper"
)

// Config is the full application configuration tree.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Queue     QueueConfig     `mapstructure:"queue"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Session   SessionConfig   `mapstructure:"session"`
	Otp       OtpConfig       `mapstructure:"otp"`
	Sms       SmsConfig       `mapstructure:"sms"`
	Email     EmailConfig     `mapstructure:"email"`
	Upload    UploadConfig    `mapstructure:"upload"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Shortener ShortenerConfig `mapstructure:"shortener"`
	Frontend  FrontendConfig  `mapstructure:"frontend"`
	Captcha   CaptchaConfig   `mapstructure:"captcha"`
	Audit     AuditConfig     `mapstructure:"audit"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig holds log rotation settings.
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions converts log settings into logger options.
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig holds connection pool limits.
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig selects the database driver and DSN.
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // sqlite / postgres
	DSN    string             `mapstructure:"dsn"`
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// RedisConfig holds cache/rate-limit backend settings. When disabled the
// process falls back to in-memory stores scoped to its own lifetime.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig holds asynq settings.
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// AdminConfig holds the single configured dashboard identity.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// SessionConfig controls admin session lifetime.
type SessionConfig struct {
	ExpireHours int `mapstructure:"expire_hours"`
}

// OtpConfig controls the phone verification codes.
type OtpConfig struct {
	TTLSeconds      int    `mapstructure:"ttl_seconds"`
	ProofSecret     string `mapstructure:"proof_secret"`
	ProofTTLMinutes int    `mapstructure:"proof_ttl_minutes"`
}

// SmsConfig holds the SOAP SMS gateway credentials.
type SmsConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	BodyID    string `mapstructure:"body_id"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
}

// EmailConfig holds the SMTP transport for the contact form.
type EmailConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	From      string `mapstructure:"from"`
	FromName  string `mapstructure:"from_name"`
	Recipient string `mapstructure:"recipient"`
	UseTLS    bool   `mapstructure:"use_tls"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// UploadConfig holds image upload limits.
type UploadConfig struct {
	MaxSize           int64    `mapstructure:"max_size"`
	AllowedTypes      []string `mapstructure:"allowed_types"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
	MaxWidth          int      `mapstructure:"max_width"`
	MaxHeight         int      `mapstructure:"max_height"`
}

// CORSConfig holds cross-origin settings.
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// RateLimitRuleConfig is one fixed-window limiter.
type RateLimitRuleConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
}

// RateLimitConfig holds one rule per sensitive endpoint. The OTP request
// endpoint reuses the contact rule.
type RateLimitConfig struct {
	Contact   RateLimitRuleConfig `mapstructure:"contact"`
	OtpVerify RateLimitRuleConfig `mapstructure:"otp_verify"`
	Login     RateLimitRuleConfig `mapstructure:"login"`
	Upload    RateLimitRuleConfig `mapstructure:"upload"`
	View      RateLimitRuleConfig `mapstructure:"view"`
}

// CacheConfig controls the public response cache.
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

// ShortenerConfig controls short-link slugs.
type ShortenerConfig struct {
	CodeLength int    `mapstructure:"code_length"`
	BaseURL    string `mapstructure:"base_url"`
}

// FrontendConfig points at the SPA origin.
type FrontendConfig struct {
	URL string `mapstructure:"url"`
}

// CaptchaConfig controls the optional image captcha on admin login.
type CaptchaConfig struct {
	LoginEnabled  bool `mapstructure:"login_enabled"`
	Length        int  `mapstructure:"length"`
	Width         int  `mapstructure:"width"`
	Height        int  `mapstructure:"height"`
	NoiseCount    int  `mapstructure:"noise_count"`
	ShowLine      int  `mapstructure:"show_line"`
	ExpireSeconds int  `mapstructure:"expire_seconds"`
	MaxStore      int  `mapstructure:"max_store"`
}

// AuditConfig controls audit log retention.
type AuditConfig struct {
	RetentionDays         int `mapstructure:"retention_days"`
	CriticalRetentionDays int `mapstructure:"critical_retention_days"`
}

// Load reads config.yml plus environment overrides.
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("./etc")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "3001")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("log.filename", "moojpayam.log")
	viper.SetDefault("log.max_size_mb", 50)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "./db/moojpayam.db")
	viper.SetDefault("database.pool.max_open_conns", 1)
	viper.SetDefault("database.pool.max_idle_conns", 1)
	viper.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	viper.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "127.0.0.1")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.prefix", "mp")
	viper.SetDefault("queue.enabled", false)
	viper.SetDefault("queue.host", "127.0.0.1")
	viper.SetDefault("queue.port", 6379)
	viper.SetDefault("queue.password", "")
	viper.SetDefault("queue.db", 1)
	viper.SetDefault("queue.concurrency", 5)
	viper.SetDefault("queue.queues", map[string]int{"default": 10})
	viper.SetDefault("admin.username", "admin")
	viper.SetDefault("admin.password", "")
	viper.SetDefault("session.expire_hours", 2)
	viper.SetDefault("otp.ttl_seconds", 120)
	viper.SetDefault("otp.proof_secret", "change-me-in-production")
	viper.SetDefault("otp.proof_ttl_minutes", 10)
	viper.SetDefault("sms.endpoint", "https://api.payamak-panel.com/post/Send.asmx")
	viper.SetDefault("sms.username", "")
	viper.SetDefault("sms.password", "")
	viper.SetDefault("sms.body_id", "")
	viper.SetDefault("sms.timeout_ms", 10000)
	viper.SetDefault("email.enabled", true)
	viper.SetDefault("email.host", "smtp.gmail.com")
	viper.SetDefault("email.port", 587)
	viper.SetDefault("email.username", "")
	viper.SetDefault("email.password", "")
	viper.SetDefault("email.from", "")
	viper.SetDefault("email.from_name", "موج پیام")
	viper.SetDefault("email.recipient", "")
	viper.SetDefault("email.use_tls", true)
	viper.SetDefault("email.use_ssl", false)
	viper.SetDefault("upload.max_size", 5242880)
	viper.SetDefault("upload.allowed_types", []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
	})
	viper.SetDefault("upload.allowed_extensions", []string{
		".jpg",
		".jpeg",
		".png",
		".gif",
		".webp",
	})
	viper.SetDefault("upload.max_width", 4096)
	viper.SetDefault("upload.max_height", 4096)
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Authorization",
		"Cache-Control",
		"X-Requested-With",
	})
	viper.SetDefault("cors.allow_credentials", true)
	viper.SetDefault("cors.max_age", 600)
	viper.SetDefault("rate_limit.contact.window_seconds", 86400)
	viper.SetDefault("rate_limit.contact.max_requests", 2)
	viper.SetDefault("rate_limit.otp_verify.window_seconds", 300)
	viper.SetDefault("rate_limit.otp_verify.max_requests", 5)
	viper.SetDefault("rate_limit.login.window_seconds", 900)
	viper.SetDefault("rate_limit.login.max_requests", 5)
	viper.SetDefault("rate_limit.upload.window_seconds", 900)
	viper.SetDefault("rate_limit.upload.max_requests", 20)
	viper.SetDefault("rate_limit.view.window_seconds", 60)
	viper.SetDefault("rate_limit.view.max_requests", 10)
	viper.SetDefault("cache.ttl_seconds", 300)
	viper.SetDefault("shortener.code_length", 5)
	viper.SetDefault("shortener.base_url", "")
	viper.SetDefault("frontend.url", "https://moojpayam.ir")
	viper.SetDefault("captcha.login_enabled", false)
	viper.SetDefault("captcha.length", 5)
	viper.SetDefault("captcha.width", 240)
	viper.SetDefault("captcha.height", 80)
	viper.SetDefault("captcha.noise_count", 2)
	viper.SetDefault("captcha.show_line", 2)
	viper.SetDefault("captcha.expire_seconds", 300)
	viper.SetDefault("captcha.max_store", 10240)
	viper.SetDefault("audit.retention_days", 3)
	viper.SetDefault("audit.critical_retention_days", 30)

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindLegacyEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("config parse failed: %w", err))
	}

	return &cfg
}

// bindLegacyEnv keeps the environment variable names the original deployment
// used, so existing .env files keep working.
func bindLegacyEnv() {
	aliases := map[string]string{
		"email.username":  "EMAIL_USER",
		"email.password":  "EMAIL_APP_PASSWORD",
		"email.recipient": "EMAIL_RECIPIENT",
		"admin.username":  "ADMIN_USER",
		"admin.password":  "ADMIN_PASSWORD",
		"sms.username":    "SMS_USERNAME",
		"sms.password":    "SMS_PASSWORD",
		"sms.body_id":     "SMS_BODY_ID",
		"frontend.url":    "FRONTEND_URL",
		"server.port":     "PORT",
	}
	for key, env := range aliases {
		_ = viper.BindEnv(key, env)
	}
}
