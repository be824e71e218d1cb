package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	CameraDeviceFeed      = "feed"
	CameraDeviceSynthetic = "synthetic"
)

// Config agrupa todo lo que el proceso lee del entorno.
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	AppName string `env:"APP_NAME" envDefault:"livestock-assessment"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Opcional: si viene, el catálogo de animales se lee de Postgres.
	DBDSN string `env:"DB_DSN"`

	ProcessingDelay      time.Duration `env:"PROCESSING_DELAY" envDefault:"3s"`
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`

	CameraDevice         string        `env:"CAMERA_DEVICE" envDefault:"feed"`
	CameraIdealWidth     int           `env:"CAMERA_IDEAL_WIDTH" envDefault:"1280"`
	CameraIdealHeight    int           `env:"CAMERA_IDEAL_HEIGHT" envDefault:"720"`
	CameraAcquireTimeout time.Duration `env:"CAMERA_ACQUIRE_TIMEOUT" envDefault:"2m"`
	CaptureJPEGQuality   int           `env:"CAPTURE_JPEG_QUALITY" envDefault:"80"`
}

// Load parsea el entorno del proceso y valida el resultado.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom permite inyectar el entorno (tests). nil => entorno del proceso.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.ProcessingDelay < 0 {
		errs = append(errs, errors.New("PROCESSING_DELAY must not be negative"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.SessionSweepInterval <= 0 {
		errs = append(errs, errors.New("SESSION_SWEEP_INTERVAL must be positive"))
	}
	switch c.CameraDevice {
	case CameraDeviceFeed, CameraDeviceSynthetic:
	default:
		errs = append(errs, fmt.Errorf("CAMERA_DEVICE must be %q or %q, got %q", CameraDeviceFeed, CameraDeviceSynthetic, c.CameraDevice))
	}
	if c.CameraIdealWidth <= 0 || c.CameraIdealHeight <= 0 {
		errs = append(errs, errors.New("CAMERA_IDEAL_WIDTH and CAMERA_IDEAL_HEIGHT must be positive"))
	}
	if c.CaptureJPEGQuality < 1 || c.CaptureJPEGQuality > 100 {
		errs = append(errs, errors.New("CAPTURE_JPEG_QUALITY must be in 1..100"))
	}

	return errors.Join(errs...)
}

// Addr devuelve la dirección de escucha para http.Server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}
