package app

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"stockpick/internal/domain"
)

// EnvPrefix prefixes every environment variable read into Config.
const EnvPrefix = "STOCKPICK"

// Config holds runtime wiring options for building the app.
type Config struct {
	Catalog    string          `envconfig:"CATALOG"`                  // catalog file, .json or .xlsx
	Ceiling    decimal.Decimal `envconfig:"CEILING" default:"13"`     // price limit per combination
	Size       int             `envconfig:"SIZE" default:"5"`         // items per combination
	MaxResults int             `envconfig:"MAX_RESULTS" default:"0"`  // 0 = unlimited
	LogLevel   string          `envconfig:"LOG_LEVEL" default:"info"` // logrus level name
	LogFormat  string          `envconfig:"LOG_FORMAT" default:"text"`
	ExportDir  string          `envconfig:"EXPORT_DIR" default:"."`
}

// LoadConfig reads an optional .env file from the working directory, then
// decodes STOCKPICK_* variables. Variables already set win over .env.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, errors.Wrap(err, "load .env")
	}
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "read environment")
	}
	return cfg, nil
}

// Validate checks option ranges.
func (c Config) Validate() error {
	if c.Size < 1 {
		return domain.InvalidArgumentf(domain.ErrMsgSizeNotPositive+" (got %d)", c.Size)
	}
	if c.MaxResults < 0 {
		return domain.InvalidArgumentf("max results must not be negative (got %d)", c.MaxResults)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return domain.InvalidArgumentf("log format must be text or json (got %q)", c.LogFormat)
	}
	return nil
}
