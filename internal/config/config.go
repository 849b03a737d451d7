// Package config loads server settings from an optional YAML file, the
// environment and a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type (
	Config struct {
		HTTP    HTTP    `yaml:"http"    env-prefix:"HTTP_"`
		DB      DB      `yaml:"db"      env-prefix:"DB_"`
		Storage Storage `yaml:"storage" env-prefix:"STORAGE_"`
		Listing Listing `yaml:"listing" env-prefix:"LISTING_"`
		Log     Log     `yaml:"log"     env-prefix:"LOG_"`
		AMQP    AMQP    `yaml:"amqp"    env-prefix:"AMQP_"`
	}

	HTTP struct {
		Addr              string        `yaml:"addr"                env:"ADDR"                env-default:":8080" validate:"required"`
		PublicURL         string        `yaml:"public_url"          env:"PUBLIC_URL"                              validate:"omitempty,url"`
		ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"READ_HEADER_TIMEOUT" env-default:"10s"   validate:"gte=100ms,lte=1m"`
		ReadTimeout       time.Duration `yaml:"read_timeout"        env:"READ_TIMEOUT"        env-default:"30s"   validate:"gte=100ms,lte=5m"`
		WriteTimeout      time.Duration `yaml:"write_timeout"       env:"WRITE_TIMEOUT"       env-default:"60s"   validate:"gte=100ms,lte=5m"`
		IdleTimeout       time.Duration `yaml:"idle_timeout"        env:"IDLE_TIMEOUT"        env-default:"120s"  validate:"gte=1s,lte=10m"`
		ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"    env:"SHUTDOWN_TIMEOUT"    env-default:"5s"    validate:"gte=100ms,lte=1m"`
	}

	DB struct {
		Driver string `yaml:"driver" env:"DRIVER" env-default:"sqlite"          validate:"oneof=sqlite pgx"`
		DSN    string `yaml:"dsn"    env:"DSN"    env-default:"trznica.sqlite3" validate:"required"`
	}

	Storage struct {
		Bucket        string `yaml:"bucket"          env:"BUCKET"          env-default:"posts-images" validate:"required"`
		MaxPhotoBytes int64  `yaml:"max_photo_bytes" env:"MAX_PHOTO_BYTES" env-default:"5242880"      validate:"gte=1024,lte=104857600"`
	}

	Listing struct {
		PhotoRejection string `yaml:"photo_rejection" env:"PHOTO_REJECTION" env-default:"silent"  validate:"oneof=silent loud"`
		UploadFailure  string `yaml:"upload_failure"  env:"UPLOAD_FAILURE"  env-default:"degrade" validate:"oneof=degrade abort"`
		RecentLimit    int    `yaml:"recent_limit"    env:"RECENT_LIMIT"    env-default:"12"      validate:"min=1,max=100"`
	}

	Log struct {
		Level      string `yaml:"level"       env:"LEVEL"       env-default:"info" validate:"oneof=debug info warn error"`
		File       string `yaml:"file"        env:"FILE"`
		MaxSize    int    `yaml:"max_size"    env:"MAX_SIZE"    env-default:"100"  validate:"min=1,max=1000"`
		MaxBackups int    `yaml:"max_backups" env:"MAX_BACKUPS" env-default:"3"    validate:"min=0,max=20"`
		MaxAge     int    `yaml:"max_age"     env:"MAX_AGE"     env-default:"28"   validate:"min=1,max=365"`
	}

	AMQP struct {
		URL      string `yaml:"url"      env:"URL"      validate:"omitempty,url"`
		Exchange string `yaml:"exchange" env:"EXCHANGE" env-default:"trznica.events"`
	}
)

// Load reads .env if present, then the YAML file at path if path is not
// empty, then the environment. Environment variables win over the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("checking config file: %w", err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field constraint and reports all violations at once.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, ve := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s=%v must satisfy '%s'", ve.Namespace(), ve.Value(), ve.Tag()))
	}
	return fmt.Errorf("validating config: %s", strings.Join(msgs, "; "))
}

// SlogLevel maps the configured level name to a slog.Level.
func (l Log) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
