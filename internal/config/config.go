package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	BackendRedis  = "redis"
	BackendBadger = "badger"
)

type Config struct {
	LogLevel   string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	HTTPPort   string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090" validate:"required,numeric"`
	SocketPort string   `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080" validate:"required,numeric"`
	Storage    Storage  `yaml:"storage"`
	Redis      Redis    `yaml:"redis"`
	Badger     Badger   `yaml:"badger"`
	Timeouts   Timeouts `yaml:"timeouts"`
}

type Storage struct {
	Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"redis" validate:"oneof=redis badger"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost" validate:"required"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379" validate:"required,numeric"`
}

type Badger struct {
	Path     string `yaml:"path" env:"BADGER_PATH" env-default:"./data/badger"`
	InMemory bool   `yaml:"in-memory" env:"BADGER_IN_MEMORY" env-default:"false"`
}

type Timeouts struct {
	PerCell time.Duration `yaml:"per-cell" env:"TIMEOUT_PER_CELL" env-default:"30s" validate:"gt=0"`
	Slack   time.Duration `yaml:"slack" env:"TIMEOUT_SLACK" env-default:"5s" validate:"gte=0"`
	Vote    time.Duration `yaml:"vote" env:"TIMEOUT_VOTE" env-default:"30s" validate:"gt=0"`
	Grace   time.Duration `yaml:"grace" env:"TIMEOUT_GRACE" env-default:"5s" validate:"gte=0"`
	Setup   time.Duration `yaml:"setup" env:"TIMEOUT_SETUP" env-default:"5m" validate:"gt=0"`
}

// Load reads path, lets the environment (and an optional .env file) override it and validates the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to load .env file: %w", err)
	}

	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(that); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if that.Storage.Backend == BackendBadger && !that.Badger.InMemory && that.Badger.Path == "" {
		return errors.New("invalid config: badger path is required unless in-memory is set")
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
