package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type Config struct {
	Server       Server       `koanf:"server"`
	Database     Database     `koanf:"db"`
	Redis        Redis        `koanf:"redis"`
	Kafka        Kafka        `koanf:"kafka"`
	Auth         Auth         `koanf:"auth"`
	Payslip      Payslip      `koanf:"payslip"`
	Payroll      Payroll      `koanf:"payroll"`
	Notification Notification `koanf:"notification"`
}

type Server struct {
	Port         string        `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	// Requests per second allowed per authenticated user.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`
}

type Database struct {
	Host       string `koanf:"host"`
	Port       string `koanf:"port"`
	User       string `koanf:"user"`
	Password   string `koanf:"password"`
	Name       string `koanf:"name"`
	SSLMode    string `koanf:"sslmode"`
	MaxRetries int    `koanf:"max_retries"`
}

type Redis struct {
	Addr string `koanf:"addr"`
}

type Kafka struct {
	Broker             string        `koanf:"broker"`
	PayslipGroupID     string        `koanf:"payslip_group_id"`
	OutboxPollInterval time.Duration `koanf:"outbox_poll_interval"`
}

type Auth struct {
	JWTSecret string `koanf:"jwt_secret"`
}

type Payslip struct {
	StorageDir  string `koanf:"storage_dir"`
	CompanyName string `koanf:"company_name"`
	Currency    string `koanf:"currency"`
}

type Payroll struct {
	LockTTL time.Duration `koanf:"lock_ttl"`
}

type Notification struct {
	// "kafka" publishes notification events, anything else logs them.
	Sender string `koanf:"sender"`
}

// envKeys maps the supported environment variables onto config paths.
var envKeys = map[string]string{
	"PORT":                 "server.port",
	"RATE_LIMIT_RPS":       "server.rate_limit",
	"RATE_LIMIT_BURST":     "server.rate_burst",
	"DB_HOST":              "db.host",
	"DB_PORT":              "db.port",
	"DB_USER":              "db.user",
	"DB_PASSWORD":          "db.password",
	"DB_NAME":              "db.name",
	"DB_SSLMODE":           "db.sslmode",
	"REDIS_ADDR":           "redis.addr",
	"KAFKA_BROKER":         "kafka.broker",
	"KAFKA_PAYSLIP_GROUP":  "kafka.payslip_group_id",
	"OUTBOX_POLL_INTERVAL": "kafka.outbox_poll_interval",
	"JWT_SECRET":           "auth.jwt_secret",
	"PAYSLIP_STORAGE_DIR":  "payslip.storage_dir",
	"PAYSLIP_COMPANY_NAME": "payslip.company_name",
	"PAYSLIP_CURRENCY":     "payslip.currency",
	"PAYROLL_LOCK_TTL":     "payroll.lock_ttl",
	"NOTIFICATION_SENDER":  "notification.sender",
}

func defaults() Config {
	return Config{
		Server: Server{
			Port:         "3000",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
			RateLimit:    10,
			RateBurst:    20,
		},
		Database: Database{
			Host:       "localhost",
			Port:       "5432",
			SSLMode:    "disable",
			MaxRetries: 5,
		},
		Redis: Redis{Addr: "localhost:6379"},
		Kafka: Kafka{
			PayslipGroupID:     "go-payroll-payslip",
			OutboxPollInterval: 3 * time.Second,
		},
		Payslip: Payslip{
			StorageDir:  "storage/payslips",
			CompanyName: "Payroll",
			Currency:    "USD",
		},
		Payroll:      Payroll{LockTTL: 5 * time.Minute},
		Notification: Notification{Sender: "noop"},
	}
}

// Load layers defaults, an optional YAML file (CONFIG_FILE, default
// config.yaml) and environment variables. A .env file is read first when
// present.
func Load() (Config, error) {
	log := zap.L().Named("config")
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return Config{}, err
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
		log.Debug("config file not found, using defaults and environment", zap.String("path", path))
	} else {
		log.Info("loaded config file", zap.String("path", path))
	}

	err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			target, ok := envKeys[key]
			if !ok || strings.TrimSpace(value) == "" {
				return "", nil
			}
			return target, value
		},
	}), nil)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) ValidateAPI() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

func (c Config) ValidateKafka() error {
	if c.Kafka.Broker == "" {
		return errors.New("KAFKA_BROKER is required")
	}
	return nil
}
