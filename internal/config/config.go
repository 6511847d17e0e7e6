package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported embedding providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Supported vector index drivers.
const (
	DriverPinecone = "pinecone"
	DriverValkey   = "valkey"
	DriverRedis    = "redis"
)

// Config holds the addictiontube service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Index     IndexConfig     `yaml:"index"`
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

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider string `yaml:"provider"` // openai (default), gemini
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
	// Dimensions is the vector length the index expects.
	Dimensions int `yaml:"dimensions"`
	// RequestDimensions asks the provider for shortened vectors; 0 sends nothing.
	RequestDimensions int          `yaml:"request_dimensions"`
	TimeoutSec        int          `yaml:"timeout_sec"`
	Gemini            GeminiConfig `yaml:"gemini"`
}

// GeminiConfig holds Gemini-specific settings.
type GeminiConfig struct {
	Backend  string `yaml:"backend"` // gemini (default), vertex
	Project  string `yaml:"project"`
	Location string `yaml:"location"`
}

// IndexConfig holds vector index settings.
type IndexConfig struct {
	Driver        string `yaml:"driver"` // pinecone (default), valkey, redis
	Name          string `yaml:"name"`
	CategoryField string `yaml:"category_field"`
	TimeoutSec    int    `yaml:"timeout_sec"`
	// ReadinessTimeout bounds the startup wait for the index.
	ReadinessTimeout int `yaml:"readiness_timeout_sec"`

	// Pinecone
	APIKey    string `yaml:"api_key"`
	Host      string `yaml:"host"`
	Namespace string `yaml:"namespace"`

	// Valkey / Redis
	Addrs     []string `yaml:"addrs"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
	KeyPrefix string   `yaml:"key_prefix"`
}

// SearchConfig holds request defaults.
type SearchConfig struct {
	DefaultQuery    string `yaml:"default_query"`
	DefaultCategory string `yaml:"default_category"`
	Limit           int    `yaml:"limit"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// Callers that rely on .env apply LoadDotEnv first.
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse decodes YAML with ${VAR} substitution, applies defaults and validates.
func Parse(data []byte) (Config, error) {
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
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 5000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}

	if c.Embedding.Provider == "" {
		c.Embedding.Provider = ProviderOpenAI
	}
	if c.Embedding.Model == "" {
		switch c.Embedding.Provider {
		case ProviderGemini:
			c.Embedding.Model = "text-embedding-004"
		default:
			c.Embedding.Model = "text-embedding-ada-002"
		}
	}
	if c.Embedding.Dimensions <= 0 {
		switch {
		case c.Embedding.RequestDimensions > 0:
			c.Embedding.Dimensions = c.Embedding.RequestDimensions
		case c.Embedding.Provider == ProviderGemini:
			c.Embedding.Dimensions = 768
		default:
			c.Embedding.Dimensions = 1536
		}
	}
	if c.Embedding.TimeoutSec <= 0 {
		c.Embedding.TimeoutSec = 10
	}
	if c.Embedding.Gemini.Backend == "" {
		c.Embedding.Gemini.Backend = "gemini"
	}

	if c.Index.Driver == "" {
		c.Index.Driver = DriverPinecone
	}
	if c.Index.Name == "" {
		c.Index.Name = "addictiontube-index"
	}
	if c.Index.CategoryField == "" {
		c.Index.CategoryField = "category"
	}
	if c.Index.TimeoutSec <= 0 {
		c.Index.TimeoutSec = 10
	}
	if c.Index.ReadinessTimeout <= 0 {
		c.Index.ReadinessTimeout = 10
	}

	if c.Search.DefaultQuery == "" {
		c.Search.DefaultQuery = "recovery from addiction"
	}
	if c.Search.DefaultCategory == "" {
		c.Search.DefaultCategory = "1028"
	}
	if c.Search.Limit <= 0 {
		c.Search.Limit = 5
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}

	switch c.Embedding.Provider {
	case ProviderOpenAI:
		if c.Embedding.APIKey == "" {
			return errors.New("embedding.api_key is required for provider openai")
		}
	case ProviderGemini:
		switch c.Embedding.Gemini.Backend {
		case "gemini":
			if c.Embedding.APIKey == "" {
				return errors.New("embedding.api_key is required for the gemini backend")
			}
		case "vertex":
			if c.Embedding.Gemini.Project == "" || c.Embedding.Gemini.Location == "" {
				return errors.New("embedding.gemini.project and location are required for the vertex backend")
			}
		default:
			return fmt.Errorf("embedding.gemini.backend must be \"gemini\" or \"vertex\", got %q",
				c.Embedding.Gemini.Backend)
		}
	default:
		return fmt.Errorf("embedding.provider must be \"openai\" or \"gemini\", got %q", c.Embedding.Provider)
	}
	if c.Embedding.RequestDimensions < 0 {
		return fmt.Errorf("embedding.request_dimensions must not be negative, got %d", c.Embedding.RequestDimensions)
	}
	if c.Embedding.RequestDimensions > 0 && c.Embedding.RequestDimensions != c.Embedding.Dimensions {
		return fmt.Errorf("embedding.request_dimensions (%d) must equal embedding.dimensions (%d)",
			c.Embedding.RequestDimensions, c.Embedding.Dimensions)
	}

	switch c.Index.Driver {
	case DriverPinecone:
		if c.Index.APIKey == "" {
			return errors.New("index.api_key is required for driver pinecone")
		}
	case DriverValkey, DriverRedis:
		if len(c.Index.Addrs) == 0 {
			return fmt.Errorf("index.addrs is required for driver %s", c.Index.Driver)
		}
	default:
		return fmt.Errorf("index.driver must be pinecone, valkey or redis, got %q", c.Index.Driver)
	}

	if c.Search.Limit > 100 {
		return fmt.Errorf("search.limit must be at most 100, got %d", c.Search.Limit)
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
