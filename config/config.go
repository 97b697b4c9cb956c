package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Classify  ClassifyConfig  `mapstructure:"classify"`
	Translate TranslateConfig `mapstructure:"translate"`
	Cache     CacheConfig     `mapstructure:"cache"`
}

// ServerConfig holds configuration for the read-only dataset API
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	DatasetPath    string   `mapstructure:"dataset_path"`
}

// FetchConfig holds the remote catalog acquisition settings
type FetchConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Country      string        `mapstructure:"country"`
	PageSize     int           `mapstructure:"page_size"`
	PageCap      int           `mapstructure:"page_cap"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	Throttle     time.Duration `mapstructure:"throttle"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Output       string        `mapstructure:"output"`
}

// ClassifyConfig holds the dump classification settings
type ClassifyConfig struct {
	Inputs []string `mapstructure:"inputs"`
	Output string   `mapstructure:"output"`
}

// TranslateConfig holds the dataset translation settings
type TranslateConfig struct {
	Endpoint   string        `mapstructure:"endpoint"`
	TargetLang string        `mapstructure:"target_lang"`
	Input      string        `mapstructure:"input"`
	Output     string        `mapstructure:"output"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryPause time.Duration `mapstructure:"retry_pause"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files.
// An explicit path overrides the default search locations.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/phetrack/")
	}

	// Environment variable settings
	v.SetEnvPrefix("PHETRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.dataset_path", "usda_phe_detailed.csv")

	// Fetch defaults match the remote search contract: page size 100,
	// always-true nutrient filters, completeness sort.
	v.SetDefault("fetch.base_url", "https://ru.openfoodfacts.org/cgi/search.pl")
	v.SetDefault("fetch.country", "Russia")
	v.SetDefault("fetch.page_size", 100)
	v.SetDefault("fetch.page_cap", 500)
	v.SetDefault("fetch.max_retries", 5)
	v.SetDefault("fetch.retry_backoff", "5s")
	v.SetDefault("fetch.throttle", "1s")
	v.SetDefault("fetch.timeout", "60s")
	v.SetDefault("fetch.output", "products_full.csv")

	// Classify defaults
	v.SetDefault("classify.inputs", []string{
		"FoodData_Central_foundation_food_json_2025-04-24.json",
		"surveyDownload.json",
		"FoodData_Central_sr_legacy_food_json_2018-04.json",
	})
	v.SetDefault("classify.output", "usda_phe_detailed.csv")

	// Translate defaults
	v.SetDefault("translate.endpoint", "https://translate.googleapis.com/translate_a/single")
	v.SetDefault("translate.target_lang", "ru")
	v.SetDefault("translate.input", "usda_phe_detailed.csv")
	v.SetDefault("translate.output", "usda_phe_translated.csv")
	v.SetDefault("translate.max_retries", 3)
	v.SetDefault("translate.retry_pause", "1s")
	v.SetDefault("translate.timeout", "30s")

	// Cache defaults
	v.SetDefault("cache.ttl", "1h")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Fetch.PageSize <= 0 {
		return fmt.Errorf("fetch page size must be positive, got: %d", config.Fetch.PageSize)
	}

	if config.Fetch.PageCap <= 0 {
		return fmt.Errorf("fetch page cap must be positive, got: %d", config.Fetch.PageCap)
	}

	if config.Fetch.MaxRetries <= 0 {
		return fmt.Errorf("fetch max retries must be positive, got: %d", config.Fetch.MaxRetries)
	}

	if config.Fetch.Output == "" {
		return fmt.Errorf("fetch output path is required")
	}

	if config.Classify.Output == "" {
		return fmt.Errorf("classify output path is required")
	}

	return nil
}
