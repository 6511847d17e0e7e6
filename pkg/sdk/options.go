package addictiontube

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver string // "pinecone", "valkey" or "redis"

	// pinecone
	apiKey    string
	indexName string
	host      string
	namespace string

	// valkey / redis
	addrs      []string
	password   string
	keyPrefix  string
	standalone bool

	categoryField string
	timeout       time.Duration

	embedder        Embedder
	provider        string
	providerKey     string
	providerModel   string
	providerBaseURL string
	dimensions      int

	defaultQuery    string
	defaultCategory string
	limit           int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithPinecone uses the named Pinecone index.
func WithPinecone(apiKey, indexName string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "pinecone"
		c.apiKey = apiKey
		c.indexName = indexName
	})
}

// WithPineconeHost skips the index host lookup.
func WithPineconeHost(host string) Option {
	return optionFunc(func(c *clientConfig) {
		c.host = host
	})
}

// WithNamespace restricts Pinecone queries to one namespace.
func WithNamespace(ns string) Option {
	return optionFunc(func(c *clientConfig) {
		c.namespace = ns
	})
}

// WithValkey uses a Valkey search index.
func WithValkey(addr, password, indexName string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
		c.indexName = indexName
	})
}

// WithRedis uses a Redis search index.
func WithRedis(addr, password, indexName string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
		c.indexName = indexName
	})
}

// WithKeyPrefix strips prefix from Valkey/Redis document keys to form story IDs.
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithStandalone disables cluster topology discovery.
// Use for standalone Valkey/Redis instances (not managed by cluster operator).
func WithStandalone() Option {
	return optionFunc(func(c *clientConfig) {
		c.standalone = true
	})
}

// WithCategoryField sets the metadata field holding the category. Default: "category".
func WithCategoryField(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.categoryField = name
	})
}

// WithTimeout bounds each outbound provider and index request.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithEmbedder sets a custom text embedding provider.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithOpenAI embeds queries with an OpenAI-compatible API.
// An empty model selects text-embedding-ada-002.
func WithOpenAI(apiKey, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.provider = "openai"
		c.providerKey = apiKey
		c.providerModel = model
	})
}

// WithGemini embeds queries with the Gemini Developer API.
// An empty model selects text-embedding-004.
func WithGemini(apiKey, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.provider = "gemini"
		c.providerKey = apiKey
		c.providerModel = model
	})
}

// WithBaseURL points the built-in embedding provider at another endpoint.
func WithBaseURL(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.providerBaseURL = url
	})
}

// WithDimensions sets the expected embedding length. Zero disables the check.
func WithDimensions(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.dimensions = n
	})
}

// WithDefaults overrides the query and category used when a call passes empty strings.
func WithDefaults(query, category string) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultQuery = query
		c.defaultCategory = category
	})
}

// WithLimit sets the maximum number of stories returned. Default: 5.
func WithLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.limit = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
