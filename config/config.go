package config

import (
	"fmt"
	"time"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/configparser"
	"github.com/joho/godotenv"
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Backend  BackendConfig
		Geocoder GeocoderConfig
		Session  SessionConfig
		Tracking TrackingConfig
		Metrics  MetricsConfig
		Log      LogConfig
	}

	BackendConfig struct {
		BaseURL string        `env:"BACKEND_BASE_URL" default:"http://localhost:8911/api"`
		Timeout time.Duration `env:"BACKEND_TIMEOUT" default:"15s"`
	}

	GeocoderConfig struct {
		// LocationIQ credential. Its absence is a recoverable widget error,
		// never a startup failure.
		APIKey  string        `env:"LOCATIONIQ_API_KEY"`
		BaseURL string        `env:"LOCATIONIQ_BASE_URL" default:"https://us1.locationiq.com"`
		Timeout time.Duration `env:"LOCATIONIQ_TIMEOUT" default:"10s"`
	}

	SessionConfig struct {
		StorePath string `env:"SESSION_STORE_PATH" default:".carshare/session.json"`
	}

	TrackingConfig struct {
		PollInterval time.Duration `env:"TRACKING_POLL_INTERVAL" default:"30s"`
		LiveURL      string        `env:"TRACKING_LIVE_URL"`
	}

	MetricsConfig struct {
		Enabled bool   `env:"METRICS_ENABLED" default:"false"`
		Addr    string `env:"METRICS_ADDR" default:":9190"`
	}

	LogConfig struct {
		Level string `env:"LOG_LEVEL" default:"INFO"`
	}
)

// NewConfig loads .env, the optional YAML file, and the environment into a
// fully populated Config.
func NewConfig(filepath string) (*Config, error) {
	// .env is optional, ignore a missing file.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	return cfg, nil
}
