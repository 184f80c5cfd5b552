package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
)

// Defaults applied when neither env nor config file say otherwise.
const (
	DefaultModel            = "openai/gpt-4o-mini"
	DefaultMaxIterations    = 10
	DefaultMaxSearchResults = 5
	DefaultTemperature      = 0.7
)

// Config holds runtime configuration for a research run. The API key is read
// from the environment or the config dir at runtime; never committed.
type Config struct {
	// OpenRouterAPIKey is set from env OPENROUTER_API_KEY or from config file.
	OpenRouterAPIKey string `json:"open_router_api_key"`
	// Model is the OpenRouter model id (e.g. openai/gpt-4o-mini).
	Model string `json:"model"`
	// MaxIterations caps the number of model round-trips per session.
	MaxIterations int `json:"max_iterations"`
	// MaxSearchResults caps hits returned by the web_search tool.
	MaxSearchResults int `json:"max_search_results"`
	// Temperature is the sampling temperature for model requests.
	Temperature float64 `json:"temperature"`
	// SearchProvider names the registered search backend (default "duckduckgo").
	SearchProvider string `json:"search_provider"`
	// ToolOutputMaxRunes caps tool output length fed back to the model (0 = no cap).
	ToolOutputMaxRunes int `json:"tool_output_max_runes"`

	// ConfigDir is where config.json and the session DB live.
	ConfigDir string `json:"-"`
	// DBPath is the SQLite session archive. Empty disables persistence.
	DBPath string `json:"-"`
}

// DefaultConfigDir returns the default config directory (project-local
// .researchbot if present, else ~/.config/researchbot).
func DefaultConfigDir() string {
	cwd, _ := os.Getwd()
	local := filepath.Join(cwd, ".researchbot")
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "researchbot")
}

// New builds config from env and optional config dir. configDir can be empty
// to use the default. A config.json in the config dir overrides env values.
func New(configDir string) *Config {
	if configDir == "" {
		if d := os.Getenv("RESEARCHBOT_CONFIG_DIR"); d != "" {
			configDir = d
		} else {
			configDir = DefaultConfigDir()
		}
	}

	cfg := &Config{
		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
		Model:            envOr("RESEARCHBOT_MODEL", DefaultModel),
		MaxIterations:    envInt("RESEARCHBOT_MAX_ITERATIONS", DefaultMaxIterations),
		MaxSearchResults: envInt("RESEARCHBOT_MAX_SEARCH_RESULTS", DefaultMaxSearchResults),
		Temperature:      envFloat("RESEARCHBOT_TEMPERATURE", DefaultTemperature),
		SearchProvider:   envOr("RESEARCHBOT_SEARCH_PROVIDER", "duckduckgo"),
		ConfigDir:        configDir,
		DBPath:           filepath.Join(configDir, "researchbot.db"),
	}
	if v, ok := os.LookupEnv("RESEARCHBOT_DB"); ok {
		cfg.DBPath = v // empty value disables persistence
	}
	if v := os.Getenv("RESEARCHBOT_TOOL_OUTPUT_MAX_RUNES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ToolOutputMaxRunes = n
		}
	}

	// Priority: Env < Config File. Keys present in config.json overwrite the
	// struct; keys missing leave the env-derived values untouched.
	configPath := filepath.Join(configDir, "config.json")
	if data, err := os.ReadFile(configPath); err == nil {
		_ = json.Unmarshal(data, cfg)
	}

	return cfg
}

// Validate reports configuration errors that must stop the run before any
// session starts.
func (c *Config) Validate() error {
	if c.OpenRouterAPIKey == "" {
		return errors.New("OPENROUTER_API_KEY is required; set it in your environment or .env file")
	}
	if c.MaxIterations <= 0 {
		return errors.New("max_iterations must be positive")
	}
	if c.MaxSearchResults <= 0 {
		return errors.New("max_search_results must be positive")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
