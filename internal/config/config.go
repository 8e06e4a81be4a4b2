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

// Config holds the postfind API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Cache     CacheConfig     `yaml:"cache"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds Postgres connection settings.
type DatabaseConfig struct {
	DSN             string `yaml:"dsn"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnLifetimeSec int    `yaml:"conn_lifetime_sec"`
}

// CacheConfig holds the optional Redis embedding cache settings.
// When Addrs is empty the cache is disabled and every query hits the
// embedding provider directly.
type CacheConfig struct {
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	TTLSec   int      `yaml:"ttl_sec"`
}

// EmbeddingConfig holds the embedding provider settings.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	Provider   string `yaml:"provider"`
	TimeoutMS  int    `yaml:"timeout_ms"` // strict per-call timeout, distinct from the request timeout
}

// LexicalSource describes one full-text source: a named tsvector column and
// the text search configuration used to parse queries against it. Adding a
// language is adding an entry here plus its column and index in the schema.
type LexicalSource struct {
	Name         string `yaml:"name"`
	VectorColumn string `yaml:"vector_column"`
	TSConfig     string `yaml:"ts_config"`
}

// SearchConfig holds rank fusion tunables.
type SearchConfig struct {
	RRFK                   int             `yaml:"rrf_k"`
	LexicalWeight          float64         `yaml:"lexical_weight"`
	SemanticWeight         float64         `yaml:"semantic_weight"`
	SemanticMatchThreshold float64         `yaml:"semantic_match_threshold"` // cosine distance bound for the uncapped count
	LexicalSources         []LexicalSource `yaml:"lexical_sources"`
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
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns <= 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnLifetimeSec <= 0 {
		c.Database.ConnLifetimeSec = 300
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 86400
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 768
	}
	if c.Embedding.TimeoutMS <= 0 {
		c.Embedding.TimeoutMS = 1500
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
	if c.Search.RRFK <= 0 {
		c.Search.RRFK = 50
	}
	if c.Search.LexicalWeight <= 0 {
		c.Search.LexicalWeight = 1.0
	}
	if c.Search.SemanticWeight <= 0 {
		c.Search.SemanticWeight = 1.0
	}
	if c.Search.SemanticMatchThreshold <= 0 {
		c.Search.SemanticMatchThreshold = 0.6
	}
	if len(c.Search.LexicalSources) == 0 {
		c.Search.LexicalSources = []LexicalSource{
			{Name: "en", VectorColumn: "search_vector_en", TSConfig: "english"},
			{Name: "ko", VectorColumn: "search_vector_ko", TSConfig: "simple"},
		}
	}
	for i := range c.Search.LexicalSources {
		src := &c.Search.LexicalSources[i]
		if src.VectorColumn == "" {
			src.VectorColumn = "search_vector_" + src.Name
		}
		if src.TSConfig == "" {
			src.TSConfig = "simple"
		}
	}
}

// identRegex matches safe SQL identifiers. Column and regconfig names come
// from config, not user input, but they are interpolated into SQL text and
// must never contain anything else.
var identRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Embedding.BaseURL == "" {
		return fmt.Errorf("embedding.base_url is required")
	}
	if c.Embedding.Model == "" {
		return fmt.Errorf("embedding.model is required")
	}
	seen := make(map[string]bool, len(c.Search.LexicalSources))
	for _, src := range c.Search.LexicalSources {
		if src.Name == "" {
			return fmt.Errorf("search.lexical_sources entries require a name")
		}
		if seen[src.Name] {
			return fmt.Errorf("search.lexical_sources has duplicate name %q", src.Name)
		}
		seen[src.Name] = true
		if !identRegex.MatchString(src.VectorColumn) {
			return fmt.Errorf("search.lexical_sources.%s.vector_column %q is not a valid identifier", src.Name, src.VectorColumn)
		}
		if !identRegex.MatchString(src.TSConfig) {
			return fmt.Errorf("search.lexical_sources.%s.ts_config %q is not a valid identifier", src.Name, src.TSConfig)
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
