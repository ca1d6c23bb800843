package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application-level configuration
type Config struct {
	LLM      LLMConfig      `mapstructure:"llm"`
	Places   PlacesConfig   `mapstructure:"places"`
	Scraper  ScraperConfig  `mapstructure:"scraper"`
	Research ResearchConfig `mapstructure:"research"`
	Planner  PlannerConfig  `mapstructure:"planner"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

// LLMConfig points at an OpenAI-compatible chat completion endpoint
type LLMConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	Model   string `mapstructure:"model" validate:"required"`
}

type PlacesConfig struct {
	APIKey string        `mapstructure:"api_key"`
	Delay  time.Duration `mapstructure:"delay" validate:"gte=0"`
}

// ScraperConfig controls the headless listings extractor
type ScraperConfig struct {
	BaseURL            string        `mapstructure:"base_url" validate:"required,url"`
	Limit              int           `mapstructure:"limit" validate:"min=1,max=200"`
	NavigationTimeout  time.Duration `mapstructure:"navigation_timeout" validate:"gt=0"`
	InitialWaitTimeout time.Duration `mapstructure:"initial_wait_timeout" validate:"gt=0"`
	PageWaitTimeout    time.Duration `mapstructure:"page_wait_timeout" validate:"gt=0"`
	PageDelay          time.Duration `mapstructure:"page_delay" validate:"gte=0"`
	MaxRetries         int           `mapstructure:"max_retries" validate:"min=1,max=10"`
	Headless           bool          `mapstructure:"headless"`
}

// ResearchConfig bounds each concurrent research task
type ResearchConfig struct {
	ListingsTimeout    time.Duration `mapstructure:"listings_timeout" validate:"gt=0"`
	AttractionsTimeout time.Duration `mapstructure:"attractions_timeout" validate:"gt=0"`
}

type PlannerConfig struct {
	// AllocationRatio is the share of the total budget earmarked for lodging
	AllocationRatio float64 `mapstructure:"allocation_ratio" validate:"gt=0,lte=1"`
}

type ServerConfig struct {
	Addr           string   `mapstructure:"addr" validate:"required"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	GinMode        string   `mapstructure:"gin_mode" validate:"oneof=debug release test"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

var envBindings = map[string]string{
	"llm.api_key":                  "GROQ_API_KEY",
	"llm.base_url":                 "LLM_BASE_URL",
	"llm.model":                    "MODEL",
	"places.api_key":               "GOOGLE_API_KEY",
	"places.delay":                 "PLACES_DELAY",
	"scraper.base_url":             "AIRBNB_URL",
	"scraper.limit":                "LISTINGS_LIMIT",
	"scraper.navigation_timeout":   "NAVIGATION_TIMEOUT",
	"scraper.initial_wait_timeout": "INITIAL_WAIT_TIMEOUT",
	"scraper.page_wait_timeout":    "PAGE_WAIT_TIMEOUT",
	"scraper.page_delay":           "PAGE_DELAY",
	"scraper.max_retries":          "MAX_RETRIES",
	"scraper.headless":             "HEADLESS",
	"research.listings_timeout":    "LISTINGS_TIMEOUT",
	"research.attractions_timeout": "ATTRACTIONS_TIMEOUT",
	"planner.allocation_ratio":     "ALLOCATION_RATIO",
	"server.addr":                  "SERVER_ADDR",
	"server.allowed_origins":       "ALLOWED_ORIGINS",
	"server.gin_mode":              "GIN_MODE",
	"log.level":                    "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.model", "meta-llama/llama-4-scout-17b-16e-instruct")
	v.SetDefault("places.delay", 200*time.Millisecond)
	v.SetDefault("scraper.base_url", "https://www.airbnb.com")
	v.SetDefault("scraper.limit", 20)
	v.SetDefault("scraper.navigation_timeout", 60*time.Second)
	v.SetDefault("scraper.initial_wait_timeout", 15*time.Second)
	v.SetDefault("scraper.page_wait_timeout", 10*time.Second)
	v.SetDefault("scraper.page_delay", time.Second)
	v.SetDefault("scraper.max_retries", 2)
	v.SetDefault("scraper.headless", true)
	v.SetDefault("research.listings_timeout", 3*time.Minute)
	v.SetDefault("research.attractions_timeout", 30*time.Second)
	v.SetDefault("planner.allocation_ratio", 0.6)
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost:5173",
		"http://127.0.0.1:5173",
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	})
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("log.level", "info")
}

// Load reads configuration from an optional YAML file and the environment,
// falling back to defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Server.AllowedOrigins = splitOrigins(cfg.Server.AllowedOrigins)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg and lists every offending field
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("configuration is nil")
	}
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validation error: %w", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s (got: %v)", field, e.Param(), e.Value())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s (got: %v)", field, e.Param(), e.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s (got: %v)", field, e.Param(), e.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got: %v)", field, e.Param(), e.Value())
	case "url":
		return fmt.Sprintf("%s must be a valid URL (got: %v)", field, e.Value())
	default:
		return fmt.Sprintf("%s failed %s validation (got: %v)", field, e.Tag(), e.Value())
	}
}

// splitOrigins accepts both a YAML list and a comma separated env value
func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, o := range strings.Split(item, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
