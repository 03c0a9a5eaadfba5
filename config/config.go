package config

import (
	"fmt"
	"os"
	"time"

	structValidator "github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH = "./res/config.yaml"

	UserStoreSQL   = "sql"
	UserStoreMongo = "mongo"

	CoversFilesystem = "filesystem"
	CoversS3         = "s3"

	DefaultMaxOpenConns      = 10
	DefaultMaxIdleConns      = 5
	DefaultConnMaxLifetime   = 30 * time.Second
	DefaultRequestsPerSecond = 5
	DefaultBurst             = 10
	DefaultShutdownTimeout   = 10 * time.Second
)

// ServiceConfig holds the configuration for the service.
type ServiceConfig struct {
	ServiceName     string          `yaml:"service_name" validate:"required"`
	LogLevel        string          `yaml:"loglevel" validate:"required"`
	Host            string          `yaml:"host" validate:"required"`
	Port            string          `yaml:"port" validate:"required"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout"`
	Database        Database        `yaml:"database" validate:"required"`
	Covers          CoversConfig    `yaml:"covers" validate:"required"`
	CORS            CORSConfig      `yaml:"cors"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
}

// Database selects the SQL engine holding the library tables and where users live.
// MongoDB is only read when UserStore is mongo.
type Database struct {
	Type      string         `yaml:"type" validate:"required,oneof=postgres mysql"`
	UserStore string         `yaml:"user_store" validate:"omitempty,oneof=sql mongo"`
	SQL       SQLConfig      `yaml:"sql_config" validate:"required"`
	MongoDB   *MongoDBConfig `yaml:"mongodb_config" validate:"required_if=UserStore mongo,omitempty"`
}

type SQLConfig struct {
	DSN     string           `yaml:"dsn" validate:"required"`
	Options SQLServerOptions `yaml:"sql_server_options"`
}

type SQLServerOptions struct {
	MaxOpenConns    int           `yaml:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `yaml:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// MongoDBConfig holds the MongoDB user store configuration.
type MongoDBConfig struct {
	DSN              string             `yaml:"dsn" validate:"required"`
	Timeout          time.Duration      `yaml:"timeout"`
	Options          MongoServerOptions `yaml:"mongo_server_options"`
	ValidCollections []string           `yaml:"valid_collections" validate:"required"`
	ValidFields      []string           `yaml:"valid_fields" validate:"required"`
}

type MongoServerOptions struct {
	APIVersion           string `yaml:"api_version"`
	SetStrict            bool   `yaml:"set_strict"`
	SetDeprecationErrors bool   `yaml:"set_deprecation_errors"`
}

// CoversConfig selects where book cover images are kept.
type CoversConfig struct {
	Backend   string    `yaml:"backend" validate:"required,oneof=filesystem s3"`
	Directory string    `yaml:"directory" validate:"required_if=Backend filesystem"`
	S3        *S3Config `yaml:"s3" validate:"required_if=Backend s3,omitempty"`
}

type S3Config struct {
	Bucket       string `yaml:"bucket" validate:"required"`
	Region       string `yaml:"region" validate:"required"`
	Endpoint     string `yaml:"endpoint" validate:"omitempty,url"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowCredentials bool     `yaml:"allow_credentials"`
}

// RateLimitConfig throttles the register and login routes.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gte=0"`
	Burst             int     `yaml:"burst" validate:"gte=0"`
}

// ReadLocalConfig reads the service configuration from a YAML file at the specified path.
// It unmarshals the YAML content into a ServiceConfig struct and fills unset optional
// values with their defaults. If there is an error reading the file or unmarshaling the
// content, it returns an error.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	config := &ServiceConfig{}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, config)
	if err != nil {
		return nil, err
	}

	config.applyDefaults()
	return config, nil
}

func (c *ServiceConfig) applyDefaults() {
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Database.UserStore == "" {
		c.Database.UserStore = UserStoreSQL
	}
	opts := &c.Database.SQL.Options
	if opts.MaxOpenConns == 0 {
		opts.MaxOpenConns = DefaultMaxOpenConns
	}
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = DefaultMaxIdleConns
	}
	if opts.ConnMaxLifetime == 0 {
		opts.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = DefaultBurst
	}
}

// Validate checks the configuration against its validate tags.
func (c *ServiceConfig) Validate(validator *structValidator.Validate) error {
	if err := validator.Struct(c); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

func BuildServerAPIOptions(cfg MongoServerOptions) *options.ServerAPIOptions {
	opts := options.ServerAPI(options.ServerAPIVersion(cfg.APIVersion))
	opts.SetStrict(cfg.SetStrict)
	opts.SetDeprecationErrors(cfg.SetDeprecationErrors)

	return opts
}

func ListToMap(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range list {
		result[item] = true
	}
	return result
}
