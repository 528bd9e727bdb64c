package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data       DataConfig       `yaml:"data" mapstructure:"data"`
	Fetch      FetchConfig      `yaml:"fetch" mapstructure:"fetch"`
	Scale      ScaleConfig      `yaml:"scale" mapstructure:"scale"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Preprocess PreprocessConfig `yaml:"preprocess" mapstructure:"preprocess"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the prediction and boundary datasets. Locations may be
// local paths or file, http(s) and ftp URLs.
type DataConfig struct {
	Predictions    string `yaml:"predictions" mapstructure:"predictions"`
	Boundaries     string `yaml:"boundaries" mapstructure:"boundaries"`
	BoundaryFormat string `yaml:"boundary_format" mapstructure:"boundary_format"`
	BoundaryObject string `yaml:"boundary_object" mapstructure:"boundary_object"`
	SplitNYC       bool   `yaml:"split_nyc" mapstructure:"split_nyc"`
	TempDir        string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

// FetchConfig configures outbound downloads.
type FetchConfig struct {
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	MaxAttempts int    `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// Timeout returns the per-request timeout.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSecs) * time.Second
}

// ScaleConfig holds the color ramp, lowest bucket first.
type ScaleConfig struct {
	Colors []string `yaml:"colors" mapstructure:"colors"`
}

// ServerConfig configures the map API server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	StaticDir   string   `yaml:"static_dir" mapstructure:"static_dir"`
}

// CacheConfig configures the rendered-collection cache.
type CacheConfig struct {
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Cleanup time.Duration `yaml:"cleanup" mapstructure:"cleanup"`
}

// PreprocessConfig configures wave label generation.
type PreprocessConfig struct {
	SourceURL string  `yaml:"source_url" mapstructure:"source_url"`
	Output    string  `yaml:"output" mapstructure:"output"`
	Epsilon   float64 `yaml:"epsilon" mapstructure:"epsilon"`
	MinDays   int     `yaml:"min_days" mapstructure:"min_days"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Boundary formats accepted by data.boundary_format.
const (
	FormatTopoJSON  = "topojson"
	FormatShapefile = "shapefile"
	FormatGeoJSON   = "geojson"
)

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("WAVEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.predictions", "county_predictions.json")
	v.SetDefault("data.boundaries", "county_map.json")
	v.SetDefault("data.boundary_format", "")
	v.SetDefault("data.boundary_object", "cb_2018_us_county_20m")
	v.SetDefault("data.split_nyc", true)
	v.SetDefault("data.temp_dir", "")
	v.SetDefault("fetch.timeout_secs", 60)
	v.SetDefault("fetch.user_agent", "wavemap/1.0")
	v.SetDefault("fetch.max_attempts", 1)
	v.SetDefault("scale.colors", []string{
		"#ffffcc", "#ffeda0", "#fed976", "#feb24c", "#fd8d3c",
		"#fc4e2a", "#e31a1c", "#bd0026", "#800026",
	})
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.static_dir", "")
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.cleanup", "30m")
	v.SetDefault("preprocess.source_url", "https://raw.githubusercontent.com/nytimes/covid-19-data/master/us-counties.csv")
	v.SetDefault("preprocess.output", "counties_data.json")
	v.SetDefault("preprocess.epsilon", 1.05)
	v.SetDefault("preprocess.min_days", 30)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validation modes.
const (
	ModeData       = "data"
	ModeServe      = "serve"
	ModePreprocess = "preprocess"
)

// Validate checks the settings a command mode depends on and reports every
// problem at once. ModeServe implies ModeData.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case ModeData, ModeServe:
		errs = append(errs, c.validateData()...)
		if mode == ModeServe {
			if c.Server.Port <= 0 || c.Server.Port > 65535 {
				errs = append(errs, fmt.Sprintf("server.port must be > 0 and <= 65535, got %d", c.Server.Port))
			}
			if c.Cache.TTL < 0 {
				errs = append(errs, "cache.ttl must be >= 0")
			}
		}
	case ModePreprocess:
		if c.Preprocess.SourceURL == "" {
			errs = append(errs, "preprocess.source_url is required")
		}
		if c.Preprocess.Epsilon <= 0 {
			errs = append(errs, "preprocess.epsilon must be > 0")
		}
		if c.Preprocess.MinDays < 22 {
			errs = append(errs, "preprocess.min_days must be >= 22")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Fetch.MaxAttempts < 1 {
		errs = append(errs, "fetch.max_attempts must be >= 1")
	}
	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) validateData() []string {
	var errs []string
	if c.Data.Predictions == "" {
		errs = append(errs, "data.predictions is required")
	}
	if c.Data.Boundaries == "" {
		errs = append(errs, "data.boundaries is required")
	}
	switch c.Data.BoundaryFormat {
	case "", FormatTopoJSON, FormatShapefile, FormatGeoJSON:
	default:
		errs = append(errs, fmt.Sprintf("data.boundary_format %q is not one of topojson, shapefile, geojson", c.Data.BoundaryFormat))
	}
	if c.Data.BoundaryFormat == FormatTopoJSON && c.Data.BoundaryObject == "" {
		errs = append(errs, "data.boundary_object is required for topojson")
	}
	if len(c.Scale.Colors) < 2 {
		errs = append(errs, fmt.Sprintf("scale.colors needs at least 2 colors, got %d", len(c.Scale.Colors)))
	}
	return errs
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
