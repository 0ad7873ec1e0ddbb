package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data      DataConfig      `yaml:"data" mapstructure:"data"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Reviews   ReviewsConfig   `yaml:"reviews" mapstructure:"reviews"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	NLP       NLPConfig       `yaml:"nlp" mapstructure:"nlp"`
	Geocode   GeocodeConfig   `yaml:"geocode" mapstructure:"geocode"`
	Heatmap   HeatmapConfig   `yaml:"heatmap" mapstructure:"heatmap"`
}

// DataConfig locates the flat files the pipeline reads and writes.
type DataConfig struct {
	Dir          string `yaml:"dir" mapstructure:"dir"`
	OutputFormat string `yaml:"output_format" mapstructure:"output_format"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// PipelineConfig configures the reconciliation and synthesis stages.
type PipelineConfig struct {
	Seed int64 `yaml:"seed" mapstructure:"seed"`
}

// ReviewsConfig selects the review text provider.
type ReviewsConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// NLPConfig tunes review segmentation.
type NLPConfig struct {
	MaxFeatures int   `yaml:"max_features" mapstructure:"max_features"`
	Topics      int   `yaml:"topics" mapstructure:"topics"`
	Clusters    int   `yaml:"clusters" mapstructure:"clusters"`
	NInit       int   `yaml:"n_init" mapstructure:"n_init"`
	Iterations  int   `yaml:"iterations" mapstructure:"iterations"`
	Seed        int64 `yaml:"seed" mapstructure:"seed"`
}

// GeocodeConfig configures the Photon geocoder.
type GeocodeConfig struct {
	BaseURL          string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent        string  `yaml:"user_agent" mapstructure:"user_agent"`
	Retries          int     `yaml:"retries" mapstructure:"retries"`
	RetryDelaySecs   float64 `yaml:"retry_delay_secs" mapstructure:"retry_delay_secs"`
	RequestDelaySecs float64 `yaml:"request_delay_secs" mapstructure:"request_delay_secs"`
	TimeoutSecs      int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// HeatmapConfig configures heatmap layer output.
type HeatmapConfig struct {
	OutDir string `yaml:"out_dir" mapstructure:"out_dir"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ECOMPREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.output_format", "csv")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "ecom-prep.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("pipeline.seed", 42)
	v.SetDefault("reviews.provider", "template")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 256)
	v.SetDefault("nlp.max_features", 1000)
	v.SetDefault("nlp.topics", 5)
	v.SetDefault("nlp.clusters", 5)
	v.SetDefault("nlp.n_init", 10)
	v.SetDefault("nlp.iterations", 200)
	v.SetDefault("nlp.seed", 42)
	v.SetDefault("geocode.base_url", "https://photon.komoot.io")
	v.SetDefault("geocode.user_agent", "ecom-prep")
	v.SetDefault("geocode.retries", 3)
	v.SetDefault("geocode.retry_delay_secs", 2)
	v.SetDefault("geocode.request_delay_secs", 1)
	v.SetDefault("geocode.timeout_secs", 10)
	v.SetDefault("heatmap.out_dir", "heatmaps")

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

// Validate checks the settings a command depends on. Mode is one of clean,
// reviews, segment, heatmap or run.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch c.Data.OutputFormat {
	case "csv", "xlsx":
	default:
		errs = append(errs, fmt.Sprintf("data.output_format must be csv or xlsx, got %q", c.Data.OutputFormat))
	}
	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Sprintf("store.driver must be sqlite or postgres, got %q", c.Store.Driver))
	}
	if c.Store.DatabaseURL == "" {
		errs = append(errs, "store.database_url is required")
	}

	switch mode {
	case "clean", "transactions", "tracking":
	case "reviews":
		errs = append(errs, c.validateReviews()...)
	case "segment":
		errs = append(errs, c.validateNLP()...)
	case "heatmap":
		errs = append(errs, c.validateGeocode()...)
	case "run":
		errs = append(errs, c.validateReviews()...)
		errs = append(errs, c.validateNLP()...)
		errs = append(errs, c.validateGeocode()...)
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) validateReviews() []string {
	switch c.Reviews.Provider {
	case "template":
		return nil
	case "anthropic":
		if c.Anthropic.Key == "" {
			return []string{"anthropic.key is required when reviews.provider is anthropic"}
		}
		return nil
	default:
		return []string{fmt.Sprintf("reviews.provider must be template or anthropic, got %q", c.Reviews.Provider)}
	}
}

func (c *Config) validateNLP() []string {
	var errs []string
	if c.NLP.MaxFeatures < 1 {
		errs = append(errs, "nlp.max_features must be > 0")
	}
	if c.NLP.Topics < 1 || c.NLP.Clusters < 1 {
		errs = append(errs, "nlp.topics and nlp.clusters must be > 0")
	}
	if c.NLP.NInit < 1 {
		errs = append(errs, "nlp.n_init must be > 0")
	}
	return errs
}

func (c *Config) validateGeocode() []string {
	var errs []string
	if c.Geocode.BaseURL == "" {
		errs = append(errs, "geocode.base_url is required")
	}
	if c.Geocode.Retries < 1 {
		errs = append(errs, "geocode.retries must be >= 1")
	}
	if c.Geocode.RetryDelaySecs < 0 || c.Geocode.RequestDelaySecs < 0 {
		errs = append(errs, "geocode delays must be >= 0")
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
