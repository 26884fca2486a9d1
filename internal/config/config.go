package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Addr        string   `yaml:"address" env:"HTTP_ADDRESS" env-default:":4000"`
	CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"http://localhost:3000"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"1m"`
	AutoMigrate     bool          `yaml:"AUTO_MIGRATE" env:"PG_AUTO_MIGRATE" env-default:"true"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
	ListTTL    time.Duration `yaml:"list_ttl" env:"CACHE_LIST_TTL" env-default:"30s"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15m"`
}

type Security struct {
	AccessTokenSecret  string        `yaml:"ACCESS_TOKEN_SECRET" env:"ACCESS_TOKEN_SECRET" env-required:"true"`
	AccessTokenExpiry  time.Duration `yaml:"ACCESS_TOKEN_EXPIRY" env:"ACCESS_TOKEN_EXPIRY" env-default:"1h"`
	RefreshTokenSecret string        `yaml:"REFRESH_TOKEN_SECRET" env:"REFRESH_TOKEN_SECRET" env-required:"true"`
	RefreshTokenExpiry time.Duration `yaml:"REFRESH_TOKEN_EXPIRY" env:"REFRESH_TOKEN_EXPIRY" env-default:"240h"`
	Issuer             string        `yaml:"TOKEN_ISSUER" env:"TOKEN_ISSUER" env-default:"storefront"`
	ResetTokenExpiry   time.Duration `yaml:"RESET_TOKEN_EXPIRY" env:"RESET_TOKEN_EXPIRY" env-default:"1h"`
}

type Stripe struct {
	APIKey              string   `yaml:"STRIPE_API_KEY" env:"STRIPE_API_KEY" env-default:""`
	SupportedCurrencies []string `yaml:"STRIPE_SUPPORTED_CURRENCIES" env:"STRIPE_SUPPORTED_CURRENCIES" env-default:"inr,usd,eur"`
}

type SendGrid struct {
	APIKey     string `yaml:"API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail  string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"no-reply@storefront.local"`
	FromName   string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Storefront"`
	AppBaseURL string `yaml:"APP_BASE_URL" env:"APP_BASE_URL" env-default:"http://localhost:3000"`
}

type OrderNumber struct {
	Salt      string `yaml:"ORDER_NUMBER_SALT" env:"ORDER_NUMBER_SALT" env-default:"storefront"`
	MinLength int    `yaml:"ORDER_NUMBER_MIN_LENGTH" env:"ORDER_NUMBER_MIN_LENGTH" env-default:"8"`
}

// Admin seeds the first administrator account when Email is set.
type Admin struct {
	Email         string `yaml:"ADMIN_EMAIL" env:"ADMIN_EMAIL"`
	Password      string `yaml:"ADMIN_PASSWORD" env:"ADMIN_PASSWORD"`
	FullName      string `yaml:"ADMIN_NAME" env:"ADMIN_NAME" env-default:"Store Admin"`
	ContactNumber string `yaml:"ADMIN_CONTACT" env:"ADMIN_CONTACT" env-default:"+10000000000"`
}

type Otel struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"SERVICE_NAME" env-default:"storefront"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"development"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	Cache        CacheConfig  `yaml:"cache"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Security     Security     `yaml:"security"`
	Stripe       Stripe       `yaml:"stripe"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	OrderNumber  OrderNumber  `yaml:"orderNumber"`
	Admin        Admin        `yaml:"admin"`
	Otel         Otel         `yaml:"otel"`
}

// MustLoad reads .env (when present), then the optional YAML file, then the environment.
func MustLoad() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("can not read .env file: %s", err.Error())
	}

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "path to an optional YAML config file")

		flag.Parse()

		configPath = *flags
	}

	var (
		cfg *Config
		err error
	)

	if configPath == "" {
		cfg, err = LoadFromEnv()
	} else {
		cfg, err = LoadConfigFromPath(configPath)
	}

	if err != nil {
		log.Fatalf("can not load config: %s", err.Error())
	}

	return cfg
}

func LoadConfigFromPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	return &cfg, nil
}

func LoadFromEnv() (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("can not read environment: %w", err)
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
