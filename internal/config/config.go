package config

import (
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const configPathEnv = "REFERENT_CONFIG"

// Config holds high-level settings required across the application.
type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	Fetcher     FetcherConfig     `yaml:"fetcher"`
	OpenRouter  OpenRouterConfig  `yaml:"openRouter"`
	HuggingFace HuggingFaceConfig `yaml:"huggingFace"`
}

// LoggingConfig controls console log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// FetcherConfig bounds the article download.
type FetcherConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// OpenRouterConfig defines how to contact the text-generation provider.
// OpenRouter speaks the OpenAI chat-completions dialect.
type OpenRouterConfig struct {
	BaseURL  string        `yaml:"baseUrl" env:"OPENROUTER_BASE_URL"`
	Model    string        `yaml:"model" env:"OPENROUTER_MODEL"`
	APIKey   string        `yaml:"apiKey" env:"OPENROUTER_API_KEY"`
	Referer  string        `yaml:"referer" env:"APP_URL"`
	AppTitle string        `yaml:"appTitle"`
	Timeout  time.Duration `yaml:"timeout"`
}

// HuggingFaceConfig describes the ranked image-generation candidates behind
// the Hugging Face inference router.
type HuggingFaceConfig struct {
	BaseURL        string        `yaml:"baseUrl" env:"HUGGINGFACE_BASE_URL"`
	APIKey         string        `yaml:"apiKey" env:"HUGGINGFACE_API_KEY"`
	Models         []string      `yaml:"models"`
	InferenceSteps int           `yaml:"inferenceSteps"`
	GuidanceScale  float64       `yaml:"guidanceScale"`
	Timeout        time.Duration `yaml:"timeout"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		log.Printf("config: cannot apply environment overrides: %v", err)
	}

	return cfg
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Fetcher.Timeout > 0 {
		base.Fetcher.Timeout = override.Fetcher.Timeout
	}

	if override.OpenRouter.BaseURL != "" {
		base.OpenRouter.BaseURL = override.OpenRouter.BaseURL
	}
	if override.OpenRouter.Model != "" {
		base.OpenRouter.Model = override.OpenRouter.Model
	}
	if override.OpenRouter.APIKey != "" {
		base.OpenRouter.APIKey = override.OpenRouter.APIKey
	}
	if override.OpenRouter.Referer != "" {
		base.OpenRouter.Referer = override.OpenRouter.Referer
	}
	if override.OpenRouter.AppTitle != "" {
		base.OpenRouter.AppTitle = override.OpenRouter.AppTitle
	}
	if override.OpenRouter.Timeout > 0 {
		base.OpenRouter.Timeout = override.OpenRouter.Timeout
	}

	if override.HuggingFace.BaseURL != "" {
		base.HuggingFace.BaseURL = override.HuggingFace.BaseURL
	}
	if override.HuggingFace.APIKey != "" {
		base.HuggingFace.APIKey = override.HuggingFace.APIKey
	}
	if len(override.HuggingFace.Models) > 0 {
		base.HuggingFace.Models = override.HuggingFace.Models
	}
	if override.HuggingFace.InferenceSteps > 0 {
		base.HuggingFace.InferenceSteps = override.HuggingFace.InferenceSteps
	}
	if override.HuggingFace.GuidanceScale > 0 {
		base.HuggingFace.GuidanceScale = override.HuggingFace.GuidanceScale
	}
	if override.HuggingFace.Timeout > 0 {
		base.HuggingFace.Timeout = override.HuggingFace.Timeout
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Fetcher: FetcherConfig{Timeout: 30 * time.Second},
		OpenRouter: OpenRouterConfig{
			BaseURL:  "https://openrouter.ai/api/v1",
			Model:    "deepseek/deepseek-chat",
			Referer:  "http://localhost:3000",
			AppTitle: "Referent N - Article AI Processor",
			Timeout:  60 * time.Second,
		},
		HuggingFace: HuggingFaceConfig{
			BaseURL: "https://router.huggingface.co/hf-inference/models",
			Models: []string{
				"black-forest-labs/FLUX.1-dev",
				"stabilityai/stable-diffusion-xl-base-1.0",
				"runwayml/stable-diffusion-v1-5",
				"stabilityai/stable-diffusion-2-1",
			},
			InferenceSteps: 30,
			GuidanceScale:  7.5,
			Timeout:        60 * time.Second,
		},
	}
}
