package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config top-level struct
type Config struct {
	Gateway   GatewayConfig   `yaml:"gateway"`
	Orders    ServiceConfig   `yaml:"orders"`
	Catalog   ServiceConfig   `yaml:"catalog"`
	Notifier  NotifierConfig  `yaml:"notifier"`
	Auth      AuthConfig      `yaml:"auth"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
}

type ServiceConfig struct {
	Port int `yaml:"port"`
}

type GatewayConfig struct {
	Port int `yaml:"port"`
	// DevTokens gates the /dev/token endpoint. Anyone who can reach that
	// endpoint gets a valid token, so it must stay off outside local dev.
	DevTokens bool    `yaml:"dev_tokens"`
	Routes    []Route `yaml:"routes"`
}

// Route maps a path prefix to a backend base URL.
type Route struct {
	Prefix  string `yaml:"prefix"`
	Backend string `yaml:"backend"`
}

type NotifierConfig struct {
	Port           int  `yaml:"port"`
	MaxAttempts    int  `yaml:"max_attempts"`
	BackoffSeconds int  `yaml:"backoff_seconds"`
	BufferSize     int  `yaml:"buffer_size"`
	ResetOnSuccess bool `yaml:"reset_attempts_on_success"`
}

type AuthConfig struct {
	Secret        string `yaml:"secret"`
	Issuer        string `yaml:"issuer"`
	Audience      string `yaml:"audience"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
	SkewSeconds   int    `yaml:"skew_seconds"`
}

type PostgresConfig struct {
	OrdersDSN  string `yaml:"orders_dsn"`
	CatalogDSN string `yaml:"catalog_dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers               []string `yaml:"brokers"`
	Topic                 string   `yaml:"topic"`
	GroupID               string   `yaml:"group_id"`
	PublishTimeoutSeconds int      `yaml:"publish_timeout_seconds"`
}

type RateLimitConfig struct {
	RPS   int `yaml:"rps"`
	Burst int `yaml:"burst"`
}

// Path returns the config file location, overridable via CONFIG_PATH.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "internal/config/config.yaml"
}

// Load reads yaml file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	// env overrides for the settings that differ per deployment
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		cfg.Kafka.Brokers = []string{broker}
	}
	if pw := os.Getenv("POSTGRES_PASSWORD"); pw != "" {
		cfg.Postgres.OrdersDSN = cfg.Postgres.OrdersDSN + " password=" + pw
		cfg.Postgres.CatalogDSN = cfg.Postgres.CatalogDSN + " password=" + pw
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.Secret = secret
	}
	return &cfg, nil
}
