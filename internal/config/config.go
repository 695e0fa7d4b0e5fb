// Package config loads and validates recoengine configuration.
//
// Configuration is layered (lowest to highest precedence):
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or $CONFIG_PATH)
//  3. Environment variables
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	UseBroker bool `koanf:"use_broker"`

	Broker    BrokerConfig    `koanf:"broker"`
	Graph     GraphConfig     `koanf:"graph"`
	Vector    VectorConfig    `koanf:"vector"`
	Retry     RetryConfig     `koanf:"retry"`
	Worker    WorkerConfig    `koanf:"worker"`
	Queue     QueueConfig     `koanf:"queue"`
	DeadLetter DeadLetterConfig `koanf:"deadletter"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// BrokerConfig configures the AMQP broker connection.
type BrokerConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	VHost    string `koanf:"vhost"`

	// Heartbeat and blocked-publish timeout, per spec.md §5.
	Heartbeat            time.Duration `koanf:"heartbeat"`
	BlockedPublishTimeout time.Duration `koanf:"blocked_publish_timeout"`
}

// URL renders the AMQP connection string.
func (b BrokerConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/%s", b.User, b.Password, b.Host, b.Port, b.VHost)
}

// GraphConfig configures the graph store connection.
type GraphConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Path is the on-disk DuckDB database file backing the graph adapter.
	Path string `koanf:"path"`
}

// VectorConfig configures the vector store connection.
type VectorConfig struct {
	Host       string `koanf:"host"`
	Port       int    `koanf:"port"`
	APIKey     string `koanf:"api_key"`
	Collection string `koanf:"collection"`
	Dimensions int    `koanf:"dimensions"`
}

// RetryConfig configures the projector retry-delay schedule.
type RetryConfig struct {
	// Schedule is the fixed delay for each successive retry, e.g. [5s, 30s, 300s].
	Schedule []time.Duration `koanf:"schedule"`
}

// WorkerConfig configures the projector worker pools.
type WorkerConfig struct {
	Prefetch   int              `koanf:"prefetch"`
	PerQueue   int              `koanf:"per_queue"`
	Batch      WorkerBatchConfig `koanf:"batch"`
}

// WorkerBatchConfig configures the optional batch projector.
type WorkerBatchConfig struct {
	Size       int           `koanf:"size"`
	IntervalS  time.Duration `koanf:"interval_s"`
}

// QueueConfig configures broker queue bounds.
type QueueConfig struct {
	Primary QueuePrimaryConfig `koanf:"primary"`
	DLQ     QueueDLQConfig     `koanf:"dlq"`
}

// QueuePrimaryConfig configures the two primary projector queues.
type QueuePrimaryConfig struct {
	TTLMillis  int64 `koanf:"ttl_ms"`
	MaxLength  int   `koanf:"max_length"`
}

// QueueDLQConfig configures the dead-letter queue.
type QueueDLQConfig struct {
	TTLMillis int64 `koanf:"ttl_ms"`
}

// DeadLetterConfig configures the local Badger-backed dead-letter mirror
// that backs the DLQPeek control-surface operation (SPEC_FULL.md §4).
type DeadLetterConfig struct {
	// Path is the on-disk BadgerDB directory.
	Path string `koanf:"path"`
	// TTL is how long a dead-lettered envelope stays peekable, default 7 days.
	TTL time.Duration `koanf:"ttl"`
	// GCInterval is how often BadgerDB value-log GC runs.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// RecommendConfig configures the recommendation orchestrator.
type RecommendConfig struct {
	DefaultWeights           WeightsConfig `koanf:"default_weights"`
	MMRDiversityDefault      float64       `koanf:"mmr_diversity_default"`
	PostPurchaseLookbackHrs  int           `koanf:"post_purchase_lookback_hours"`
	CacheTTL                 time.Duration `koanf:"cache_ttl"`
	CacheCapacity            int           `koanf:"cache_capacity"`
}

// WeightsConfig is the default budget-allocation weight triple (§4.6.2).
type WeightsConfig struct {
	Behavioral float64 `koanf:"behavioral"`
	Trending   float64 `koanf:"trending"`
	Activity   float64 `koanf:"activity"`
}

// ServerConfig configures the HTTP control surface.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DefaultConfig returns a Config populated with the defaults documented in spec.md §6.4.
func DefaultConfig() *Config {
	return &Config{
		UseBroker: false,
		Broker: BrokerConfig{
			Host:                  "localhost",
			Port:                  5672,
			User:                  "guest",
			Password:              "guest",
			VHost:                 "/",
			Heartbeat:             600 * time.Second,
			BlockedPublishTimeout: 300 * time.Second,
		},
		Graph: GraphConfig{
			Host: "localhost",
			Port: 7687,
			Path: "./data/graph.duckdb",
		},
		Vector: VectorConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: "products",
			Dimensions: 384,
		},
		Retry: RetryConfig{
			Schedule: []time.Duration{5 * time.Second, 30 * time.Second, 300 * time.Second},
		},
		Worker: WorkerConfig{
			Prefetch: 10,
			PerQueue: 2,
			Batch: WorkerBatchConfig{
				Size:      100,
				IntervalS: 10 * time.Second,
			},
		},
		Queue: QueueConfig{
			Primary: QueuePrimaryConfig{
				TTLMillis: 86_400_000,
				MaxLength: 100_000,
			},
			DLQ: QueueDLQConfig{
				TTLMillis: 604_800_000,
			},
		},
		DeadLetter: DeadLetterConfig{
			Path:       "./data/deadletter",
			TTL:        7 * 24 * time.Hour,
			GCInterval: 10 * time.Minute,
		},
		Recommend: RecommendConfig{
			DefaultWeights: WeightsConfig{
				Behavioral: 0.3,
				Trending:   0.2,
				Activity:   0.5,
			},
			MMRDiversityDefault:     0.7,
			PostPurchaseLookbackHrs: 24,
			CacheTTL:                5 * time.Minute,
			CacheCapacity:           10_000,
		},
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks invariants that koanf unmarshaling cannot express directly.
func (c *Config) Validate() error {
	if len(c.Retry.Schedule) == 0 {
		return fmt.Errorf("retry.schedule must not be empty")
	}
	for i, d := range c.Retry.Schedule {
		if d <= 0 {
			return fmt.Errorf("retry.schedule[%d] must be positive", i)
		}
	}
	if c.Worker.Prefetch <= 0 {
		return fmt.Errorf("worker.prefetch must be positive")
	}
	if c.Worker.PerQueue <= 0 {
		return fmt.Errorf("worker.per_queue must be positive")
	}
	w := c.Recommend.DefaultWeights
	if w.Behavioral < 0 || w.Trending < 0 || w.Activity < 0 {
		return fmt.Errorf("recommend.default_weights must be non-negative")
	}
	if w.Behavioral+w.Trending+w.Activity == 0 {
		return fmt.Errorf("recommend.default_weights must not all be zero")
	}
	if c.Recommend.MMRDiversityDefault < 0 || c.Recommend.MMRDiversityDefault > 1 {
		return fmt.Errorf("recommend.mmr_diversity_default must be in [0,1]")
	}
	if c.Vector.Dimensions <= 0 {
		return fmt.Errorf("vector.dimensions must be positive")
	}
	return nil
}
