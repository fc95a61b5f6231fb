package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config application-wide configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Menu     MenuConfig     `mapstructure:"menu"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port         int        `mapstructure:"port"`
	BaseURL      string     `mapstructure:"base_url"` // public origin used to build /uploads and /api/images URLs
	CORS         CORSConfig `mapstructure:"cors"`
	MaxBodyBytes int64      `mapstructure:"max_body_bytes"`
}

// CORSConfig cross-origin settings
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL settings
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
}

// DSN builds the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig token and registration settings
type AuthConfig struct {
	JWTSecret        string          `mapstructure:"jwt_secret"`
	TokenTTL         time.Duration   `mapstructure:"token_ttl"`
	WardenSecretCode string          `mapstructure:"warden_secret_code"`
	DWOSecretCode    string          `mapstructure:"dwo_secret_code"`
	RateLimit        RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig limits on the public auth endpoints
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// StorageConfig image store settings
type StorageConfig struct {
	Driver         string        `mapstructure:"driver"` // disk | spaces | gridfs
	FallbackToDisk bool          `mapstructure:"fallback_to_disk"`
	Disk           DiskConfig    `mapstructure:"disk"`
	Spaces         SpacesConfig  `mapstructure:"spaces"`
	GridFS         GridFSConfig  `mapstructure:"gridfs"`
	MaxFileBytes   int64         `mapstructure:"max_file_bytes"`
	UploadTimeout  time.Duration `mapstructure:"upload_timeout"`
}

// DiskConfig local upload directory
type DiskConfig struct {
	Dir string `mapstructure:"dir"`
}

// SpacesConfig S3-compatible object storage
type SpacesConfig struct {
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	CDNURL    string `mapstructure:"cdn_url"`
	Prefix    string `mapstructure:"prefix"`
}

// GridFSConfig MongoDB GridFS bucket
type GridFSConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
	Bucket   string `mapstructure:"bucket"`
}

// MenuConfig calendar settings shared by menus and daily records
type MenuConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// Location resolves the configured timezone, UTC when unset
func (c *MenuConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// LogConfig logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment.
// Priority: environment > config file > defaults. A .env file in the working
// directory is loaded into the environment first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.base_url", "http://localhost:5000")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.max_body_bytes", 20<<20)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "hostel_drishti")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Kolkata")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.token_ttl", "720h")
	v.SetDefault("auth.rate_limit.requests", 10)
	v.SetDefault("auth.rate_limit.window", "1m")

	v.SetDefault("storage.driver", "disk")
	v.SetDefault("storage.fallback_to_disk", true)
	v.SetDefault("storage.disk.dir", "uploads")
	v.SetDefault("storage.gridfs.database", "hostel_drishti")
	v.SetDefault("storage.gridfs.bucket", "images")
	v.SetDefault("storage.spaces.prefix", "hostel-drishti")
	v.SetDefault("storage.max_file_bytes", 5<<20)
	v.SetDefault("storage.upload_timeout", "30s")

	v.SetDefault("menu.timezone", "Asia/Kolkata")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("HD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the service cannot start without
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("invalid config: auth.jwt_secret must be set")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("invalid config: auth.jwt_secret must be at least 16 characters")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port must be within 1-65535")
	}
	switch c.Storage.Driver {
	case "disk", "spaces", "gridfs":
	default:
		return fmt.Errorf("invalid config: storage.driver %q is not one of disk, spaces, gridfs", c.Storage.Driver)
	}
	if _, err := c.Menu.Location(); err != nil {
		return fmt.Errorf("invalid config: menu.timezone: %w", err)
	}
	return nil
}
