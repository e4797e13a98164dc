package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the comps API configuration.
type Config struct {
	HTTP       HTTPConfig          `yaml:"http"`
	Auth       AuthConfig          `yaml:"auth"`
	Database   DatabaseConfig      `yaml:"database"`
	Embedding  EmbeddingConfig     `yaml:"embedding"`
	Enrichment EnrichmentConfig    `yaml:"enrichment"`
	Retrieval  RetrievalConfig     `yaml:"retrieval"`
	Scoring    ScoringConfig       `yaml:"scoring"`
	Families   map[string][]string `yaml:"tld_families"` // empty: built-in table
	Logging    LoggingConfig       `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds vector store connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, memory (default: redis)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	IndexName        string   `yaml:"index_name"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"`
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// EnrichmentConfig holds LLM classification settings.
type EnrichmentConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// RetrievalConfig holds candidate retrieval settings.
type RetrievalConfig struct {
	LengthBand       int     `yaml:"length_band"`
	ResultsPerQuery  int     `yaml:"results_per_query"`
	TLDFallback      *bool   `yaml:"tld_fallback"`
	MinResults       int     `yaml:"min_results"`
	NumericFilter    *bool   `yaml:"numeric_filter"`
	NumericThreshold float64 `yaml:"numeric_threshold"`
}

// RecencyBand maps a maximum sale age in days to a recency weight.
type RecencyBand struct {
	MaxAgeDays int     `yaml:"max_age_days"`
	Weight     float64 `yaml:"weight"`
}

// ScoringConfig holds ranking settings.
type ScoringConfig struct {
	SemanticWeight float64       `yaml:"semantic_weight"`
	CategoryWeight float64       `yaml:"category_weight"`
	RecencyWeight  float64       `yaml:"recency_weight"`
	MinScore       float64       `yaml:"min_score"`
	TopK           int           `yaml:"top_k"`
	RecencyBands   []RecencyBand `yaml:"recency_bands"`
	OldestWeight   float64       `yaml:"oldest_weight"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.IndexName == "" {
		c.Database.IndexName = "idx:domain_embeddings"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Enrichment.Model == "" {
		c.Enrichment.Model = "gpt-4o-mini"
	}
	if c.Retrieval.LengthBand <= 0 {
		c.Retrieval.LengthBand = 2
	}
	if c.Retrieval.ResultsPerQuery <= 0 {
		c.Retrieval.ResultsPerQuery = 50
	}
	if c.Retrieval.TLDFallback == nil {
		c.Retrieval.TLDFallback = boolPtr(true)
	}
	if c.Retrieval.MinResults <= 0 {
		c.Retrieval.MinResults = 10
	}
	if c.Retrieval.NumericFilter == nil {
		c.Retrieval.NumericFilter = boolPtr(true)
	}
	if c.Retrieval.NumericThreshold <= 0 {
		c.Retrieval.NumericThreshold = 0.3
	}
	if c.Scoring.SemanticWeight <= 0 {
		c.Scoring.SemanticWeight = 0.6
	}
	if c.Scoring.CategoryWeight <= 0 {
		c.Scoring.CategoryWeight = 0.2
	}
	if c.Scoring.RecencyWeight <= 0 {
		c.Scoring.RecencyWeight = 0.2
	}
	if c.Scoring.MinScore <= 0 {
		c.Scoring.MinScore = 0.5
	}
	if c.Scoring.TopK <= 0 {
		c.Scoring.TopK = 10
	}
	if len(c.Scoring.RecencyBands) == 0 {
		c.Scoring.RecencyBands = []RecencyBand{
			{MaxAgeDays: 90, Weight: 1.0},
			{MaxAgeDays: 180, Weight: 0.9},
			{MaxAgeDays: 365, Weight: 0.8},
			{MaxAgeDays: 730, Weight: 0.6},
		}
	}
	if c.Scoring.OldestWeight <= 0 {
		c.Scoring.OldestWeight = 0.3
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "redis":
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for the redis driver")
		}
	case "memory":
		// no connection settings
	default:
		return fmt.Errorf("database.driver must be \"redis\" or \"memory\", got %q", c.Database.Driver)
	}
	if sum := c.Scoring.SemanticWeight + c.Scoring.CategoryWeight + c.Scoring.RecencyWeight; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("scoring weights must sum to 1, got %g", sum)
	}
	for i, band := range c.Scoring.RecencyBands {
		if band.MaxAgeDays <= 0 {
			return fmt.Errorf("scoring.recency_bands[%d].max_age_days must be positive", i)
		}
		if i > 0 && band.MaxAgeDays <= c.Scoring.RecencyBands[i-1].MaxAgeDays {
			return fmt.Errorf("scoring.recency_bands must be ordered by increasing max_age_days")
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func boolPtr(v bool) *bool { return &v }

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
