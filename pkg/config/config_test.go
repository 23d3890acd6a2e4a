package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configPath := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 45s
  api_keys: ["secret1", "secret2"]

schedule:
  interval: 15m
  max_workers: 2
  max_consecutive_failures: 3

llm:
  endpoint: http://localhost:11434/v1
  model: llama3
  temperature: 0.5
  summary:
    content_category: Blog post
    entity_range: 1-2
    max_words: 80
    iterations: 4
`)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, []string{"secret1", "secret2"}, cfg.GetAPIKeys())

		assert.Equal(t, 15*time.Minute, cfg.Schedule.Interval)
		assert.Equal(t, 2, cfg.Schedule.MaxWorkers)
		assert.Equal(t, 3, cfg.Schedule.MaxConsecutiveFailures)

		assert.Equal(t, "llama3", cfg.LLM.Model)
		require.NotNil(t, cfg.LLM.Temperature)
		assert.InEpsilon(t, 0.5, *cfg.LLM.Temperature, 0.001)
		assert.Equal(t, SummaryConfig{ContentCategory: "Blog post", EntityRange: "1-2", MaxWords: 80, Iterations: 4}, cfg.LLM.Summary)
	})

	t.Run("defaults", func(t *testing.T) {
		configPath := writeConfig(t, `
llm:
  endpoint: http://localhost:11434/v1
  model: llama3
`)

		cfg, err := Load(configPath)
		require.NoError(t, err)

		// server defaults
		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Empty(t, cfg.Server.APIKeys)
		assert.Equal(t, "http://localhost:8080", cfg.GetBaseURL())

		// schedule defaults
		assert.Equal(t, 3600*time.Second, cfg.Schedule.Interval)
		assert.Equal(t, 1, cfg.Schedule.MaxWorkers)
		assert.Equal(t, 30*time.Second, cfg.Schedule.FetchTimeout)
		assert.Equal(t, 0, cfg.Schedule.MaxConsecutiveFailures)

		// summary defaults
		assert.Equal(t, "Article", cfg.LLM.Summary.ContentCategory)
		assert.Equal(t, "2-3", cfg.LLM.Summary.EntityRange)
		assert.Equal(t, 100, cfg.LLM.Summary.MaxWords)
		assert.Equal(t, 6, cfg.LLM.Summary.Iterations)
		assert.Equal(t, 2000, cfg.LLM.MaxTokens)
		assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
		require.NotNil(t, cfg.LLM.Temperature)
		assert.InEpsilon(t, 0.3, *cfg.LLM.Temperature, 0.001)

		// database and extraction defaults
		assert.Contains(t, cfg.Database.DSN, "blogdb.db")
		assert.False(t, cfg.Extraction.Enabled)
		assert.Equal(t, 300, cfg.Extraction.MinTextLength)
		assert.Equal(t, "BlogDB/1.0", cfg.Extraction.UserAgent)
	})

	t.Run("zero temperature kept", func(t *testing.T) {
		configPath := writeConfig(t, `
llm:
  endpoint: http://localhost:11434/v1
  model: llama3
  temperature: 0
`)
		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg.LLM.Temperature)
		assert.Zero(t, *cfg.LLM.Temperature)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("BLOGDB_TEST_LLM_KEY", "sk-from-env")
		configPath := writeConfig(t, `
llm:
  endpoint: http://localhost:11434/v1
  model: llama3
  api_key: ${BLOGDB_TEST_LLM_KEY}
`)
		cfg, err := Load(configPath)
		require.NoError(t, err)
		assert.Equal(t, "sk-from-env", cfg.LLM.APIKey)
	})

	t.Run("missing model", func(t *testing.T) {
		configPath := writeConfig(t, `
llm:
  endpoint: http://localhost:11434/v1
`)
		cfg, err := Load(configPath)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "llm.model is required")
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configPath := writeConfig(t, `
invalid yaml content
  with bad indentation
    and no structure
`)
		cfg, err := Load(configPath)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{LLM: LLMConfig{Endpoint: "http://localhost", Model: "m"}}
		cfg.SetDefaults()
		return cfg
	}

	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "bad temperature", modify: func(c *Config) { v := 3.0; c.LLM.Temperature = &v }, errMsg: "llm.temperature"},
		{name: "negative temperature", modify: func(c *Config) { v := -0.1; c.LLM.Temperature = &v }, errMsg: "llm.temperature"},
		{name: "zero temperature", modify: func(c *Config) { v := 0.0; c.LLM.Temperature = &v }},
		{name: "negative rate limit", modify: func(c *Config) { c.LLM.RateLimit = -1 }, errMsg: "llm.rate_limit"},
		{name: "interval too short", modify: func(c *Config) { c.Schedule.Interval = time.Millisecond }, errMsg: "schedule.interval"},
		{name: "negative failures", modify: func(c *Config) { c.Schedule.MaxConsecutiveFailures = -1 }, errMsg: "max_consecutive_failures"},
		{name: "zero max words", modify: func(c *Config) { c.LLM.Summary.MaxWords = -5 }, errMsg: "max_words"},
		{name: "server timeout", modify: func(c *Config) { c.Server.Timeout = time.Millisecond }, errMsg: "server timeout"},
		{
			name:   "extraction timeout",
			modify: func(c *Config) { c.Extraction.Enabled = true; c.Extraction.Timeout = time.Millisecond },
			errMsg: "extraction timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.modify(cfg)
			err := validate(cfg)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Listen: ":9090", Timeout: 45 * time.Second}}

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)
}
