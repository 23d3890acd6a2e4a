package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database   DatabaseConfig   `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Schedule   ScheduleConfig   `yaml:"schedule" json:"schedule" jsonschema:"description=Ingestion scheduler configuration"`
	LLM        LLMConfig        `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for article summarization"`
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Full page extraction for entries with thin content"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	APIKeys []string      `yaml:"api_keys" json:"api_keys" jsonschema:"description=API keys allowed to call write endpoints"`
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Public base URL used for links in generated feeds"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:blogdb.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// ScheduleConfig holds ingestion scheduler settings
type ScheduleConfig struct {
	Interval               time.Duration `yaml:"interval" json:"interval" jsonschema:"default=1h,description=Interval between ingestion sweeps"`
	MaxWorkers             int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=1,minimum=1,description=Feeds processed concurrently within a sweep"`
	FetchTimeout           time.Duration `yaml:"fetch_timeout" json:"fetch_timeout" jsonschema:"default=30s,description=Feed fetch timeout"`
	MaxConsecutiveFailures int           `yaml:"max_consecutive_failures" json:"max_consecutive_failures" jsonschema:"default=0,minimum=0,description=Fail the feed run after this many summarization failures in a row (0 disables)"`
}

// LLMConfig holds LLM configuration for article summarization
type LLMConfig struct {
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=OpenAI-compatible API endpoint"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"required,description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature *float64      `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation (unset means 0.3 and an explicit 0 is kept)"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=2000,description=Maximum tokens in response"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
	RateLimit   int           `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=0,minimum=0,description=Maximum requests per second (0 for no limit)"`
	UseJSONMode bool          `yaml:"use_json_mode" json:"use_json_mode" jsonschema:"default=false,description=Use JSON response format (not all models support this)"`
	Summary     SummaryConfig `yaml:"summary" json:"summary" jsonschema:"description=Chain of density summarization parameters"`
}

// SummaryConfig holds chain of density parameters, fixed when the summarizer is built
type SummaryConfig struct {
	ContentCategory string `yaml:"content_category" json:"content_category" jsonschema:"default=Article,description=Content category label used in the prompt"`
	EntityRange     string `yaml:"entity_range" json:"entity_range" jsonschema:"default=2-3,description=Number of new entities added per iteration"`
	MaxWords        int    `yaml:"max_words" json:"max_words" jsonschema:"default=100,minimum=1,description=Word budget for each summary"`
	Iterations      int    `yaml:"iterations" json:"iterations" jsonschema:"default=6,minimum=1,description=Number of densification iterations"`
}

// ExtractionConfig holds full page extraction settings
type ExtractionConfig struct {
	Enabled       bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Fetch the article page when feed content is too short"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction timeout per article"`
	MinTextLength int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=300,description=Feed content shorter than this triggers page extraction"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=BlogDB/1.0,description=User agent for HTTP requests"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.SetDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// SetDefaults fills zero values with defaults
func (c *Config) SetDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}

	if c.Database.DSN == "" {
		c.Database.DSN = "file:blogdb.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.Schedule.Interval == 0 {
		c.Schedule.Interval = 3600 * time.Second
	}
	if c.Schedule.MaxWorkers == 0 {
		c.Schedule.MaxWorkers = 1
	}
	if c.Schedule.FetchTimeout == 0 {
		c.Schedule.FetchTimeout = 30 * time.Second
	}

	if c.LLM.Temperature == nil {
		t := 0.3
		c.LLM.Temperature = &t
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 2000
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60 * time.Second
	}
	if c.LLM.Summary.ContentCategory == "" {
		c.LLM.Summary.ContentCategory = "Article"
	}
	if c.LLM.Summary.EntityRange == "" {
		c.LLM.Summary.EntityRange = "2-3"
	}
	if c.LLM.Summary.MaxWords == 0 {
		c.LLM.Summary.MaxWords = 100
	}
	if c.LLM.Summary.Iterations == 0 {
		c.LLM.Summary.Iterations = 6
	}

	if c.Extraction.Timeout == 0 {
		c.Extraction.Timeout = 30 * time.Second
	}
	if c.Extraction.MinTextLength == 0 {
		c.Extraction.MinTextLength = 300
	}
	if c.Extraction.UserAgent == "" {
		c.Extraction.UserAgent = "BlogDB/1.0"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if t := cfg.LLM.Temperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.RateLimit < 0 {
		return fmt.Errorf("llm.rate_limit must be non-negative")
	}
	if cfg.LLM.Summary.MaxWords < 1 {
		return fmt.Errorf("llm.summary.max_words must be at least 1")
	}
	if cfg.LLM.Summary.Iterations < 1 {
		return fmt.Errorf("llm.summary.iterations must be at least 1")
	}

	if cfg.Schedule.Interval < time.Second {
		return fmt.Errorf("schedule.interval must be at least 1 second")
	}
	if cfg.Schedule.MaxWorkers < 1 {
		return fmt.Errorf("schedule.max_workers must be at least 1")
	}
	if cfg.Schedule.MaxConsecutiveFailures < 0 {
		return fmt.Errorf("schedule.max_consecutive_failures must be non-negative")
	}

	if cfg.Extraction.Enabled {
		if cfg.Extraction.Timeout < time.Second {
			return fmt.Errorf("extraction timeout must be at least 1 second")
		}
		if cfg.Extraction.MinTextLength < 0 {
			return fmt.Errorf("extraction min_text_length must be non-negative")
		}
	}

	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetBaseURL returns the public base URL of the server
func (c *Config) GetBaseURL() string {
	return c.Server.BaseURL
}

// GetAPIKeys returns keys accepted by write endpoints
func (c *Config) GetAPIKeys() []string {
	return c.Server.APIKeys
}
