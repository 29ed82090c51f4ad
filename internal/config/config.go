package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	HTTP        HTTPConfig        `yaml:"http"`
	Postgres    PostgresConfig    `yaml:"postgres"`
	KV          KVConfig          `yaml:"kv"`
	BlobStorage BlobStorageConfig `yaml:"blob_storage"`
	Auth        AuthConfig        `yaml:"auth"`
	Email       EmailConfig       `yaml:"email"`
	Cache       CacheConfig       `yaml:"cache"`
}

type HTTPConfig struct {
	Host    string        `yaml:"host"`
	Port    string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn" env:"DATABASE_URL" env-required:"true"`
}

// KVConfig selects the key-value backend. Driver is "redis" or "memory".
type KVConfig struct {
	Driver        string `yaml:"driver" env:"KV_DRIVER" env-default:"redis"`
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB" env-default:"0"`
}

type BlobStorageConfig struct {
	BaseDir string `yaml:"base_dir" env:"BLOB_BASE_DIR" env-default:"./uploads"`
	BaseURL string `yaml:"base_url" env:"BLOB_BASE_URL" env-default:"/media"`
	MaxSize int64  `yaml:"max_size" env-default:"10485760"`
}

type AuthConfig struct {
	Header  string `yaml:"header" env-default:"Cf-Access-Jwt-Assertion"`
	Enforce bool   `yaml:"enforce" env:"AUTH_ENFORCE" env-default:"true"`
}

type EmailConfig struct {
	Enabled      bool   `yaml:"enabled" env:"EMAIL_ENABLED" env-default:"false"`
	ResendAPIKey string `yaml:"resend_api_key" env:"RESEND_API_KEY"`
	FromEmail    string `yaml:"from_email" env:"EMAIL_SENDER_ADDRESS" env-default:"noreply@example.com"`
	FromName     string `yaml:"from_name" env:"EMAIL_SENDER_NAME" env-default:"Wedding"`
	AdminEmail   string `yaml:"admin_email" env:"EMAIL_ADMIN_ADDRESS"`
}

type CacheConfig struct {
	TTL time.Duration `yaml:"ttl" env-default:"30s"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := LoadPath(configPath)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

// LoadPath reads an optional .env next to the working directory, then the yaml file, then env overrides.
func LoadPath(configPath string) (*Config, error) {
	_ = godotenv.Load()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &LoadError{Reason: "config file does not exist: " + configPath}
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, &LoadError{Reason: "cannot read config: " + err.Error()}
	}

	return &cfg, nil
}

type LoadError struct {
	Reason string
}

func (e *LoadError) Error() string {
	return e.Reason
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
