package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config del API. Viene de un YAML opcional (CONFIG_FILE, default config.yaml)
// con override por variables de entorno.
type Config struct {
	Port    string `yaml:"port" env:"PORT" env-default:"8080"`
	AppName string `yaml:"app_name" env:"APP_NAME" env-default:"cat-adoption"`

	// Vacío => store in-memory (modo dev).
	DatabaseDSN string `yaml:"-" env:"DB_DSN"`

	UploadDir      string `yaml:"upload_dir" env:"UPLOAD_DIR" env-default:"static/uploads"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"MAX_UPLOAD_BYTES" env-default:"33554432"`

	ModelPath  string `yaml:"model_path" env:"MODEL_PATH" env-default:"artifacts/model.json"`
	SchemaPath string `yaml:"schema_path" env:"SCHEMA_PATH" env-default:"artifacts/schema.json"`

	CORSOrigin string `yaml:"cors_origin" env:"CORS_ORIGIN" env-default:"*"`

	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"text"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

const defaultFile = "config.yaml"

// Load lee el archivo si existe; si no, solo env + defaults.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = defaultFile
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read env: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("config: port is required")
	}
	if strings.TrimSpace(c.UploadDir) == "" {
		return errors.New("config: upload_dir is required")
	}
	if strings.TrimSpace(c.ModelPath) == "" || strings.TrimSpace(c.SchemaPath) == "" {
		return errors.New("config: model_path and schema_path are required")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("config: max_upload_bytes must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
