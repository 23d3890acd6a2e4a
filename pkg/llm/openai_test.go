package llm

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/blogdb/pkg/config"
)

func chatServer(t *testing.T, content string, check func(req openai.ChatCompletionRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if check != nil {
			check(req)
		}

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: content}}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	var gotReq openai.ChatCompletionRequest
	server := chatServer(t, `[{"denser_summary":"dense"}]`, func(req openai.ChatCompletionRequest) { gotReq = req })
	defer server.Close()

	gen := NewOpenAIGenerator(config.LLMConfig{
		Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "gpt-4o-mini",
		Temperature: ptr(0.3), MaxTokens: 2000, Timeout: 5 * time.Second,
	})
	out, err := gen.Generate(context.Background(), DensityRequest{
		Content: "Go 1.24 ships generic type aliases.", ContentCategory: "Article", EntityRange: "2-3", MaxWords: 80, Iterations: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, `[{"denser_summary":"dense"}]`, out)

	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.Equal(t, 2000, gotReq.MaxTokens)
	assert.Nil(t, gotReq.ResponseFormat)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, gotReq.Messages[0].Role)
	user := gotReq.Messages[1].Content
	assert.Contains(t, user, "Go 1.24 ships generic type aliases.")
	assert.Contains(t, user, "Repeat the following 2 steps 4 times.")
	assert.Contains(t, user, "Identify 2-3 informative entities")
	assert.Contains(t, user, "(80 words)")
	assert.Contains(t, user, `"denser_summary"`)
}

func TestOpenAIGenerator_Temperature(t *testing.T) {
	tbl := []struct {
		name        string
		temperature *float64
		want        float32
	}{
		{name: "configured", temperature: ptr(0.7), want: 0.7},
		{name: "explicit zero", temperature: ptr(0), want: math.SmallestNonzeroFloat32},
		{name: "unset", temperature: nil, want: 0},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			var raw map[string]any
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
					Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "ok"}}},
				})
			}))
			defer server.Close()

			gen := NewOpenAIGenerator(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "m", Temperature: tt.temperature})
			_, err := gen.Generate(context.Background(), DensityRequest{Content: "x"})
			require.NoError(t, err)

			got, ok := raw["temperature"]
			if tt.want == 0 {
				assert.False(t, ok, "temperature left to the server default")
				return
			}
			require.True(t, ok, "temperature is sent")
			assert.Greater(t, got, 0.0)
			assert.InDelta(t, float64(tt.want), got, 1e-6)
			assert.Equal(t, tt.want, requestTemperature(tt.temperature))
		})
	}
}

func ptr(v float64) *float64 { return &v }

func TestOpenAIGenerator_JSONMode(t *testing.T) {
	server := chatServer(t, `{"summaries":[{"denser_summary":"x"}]}`, func(req openai.ChatCompletionRequest) {
		if !assert.NotNil(t, req.ResponseFormat) {
			return
		}
		assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)
		assert.Contains(t, req.Messages[1].Content, `{"summaries": [...]}`)
	})
	defer server.Close()

	gen := NewOpenAIGenerator(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "m", UseJSONMode: true})
	summary, err := NewSummarizer(gen, config.SummaryConfig{}).Summarize(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "x", summary)
}

func TestOpenAIGenerator_Errors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
		}))
		defer server.Close()

		gen := NewOpenAIGenerator(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "m"})
		_, err := gen.Generate(context.Background(), DensityRequest{Content: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm request failed")
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		gen := NewOpenAIGenerator(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "m"})
		_, err := gen.Generate(context.Background(), DensityRequest{Content: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no response from llm")
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
		}))
		defer server.Close()

		gen := NewOpenAIGenerator(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "m", Timeout: 50 * time.Millisecond})
		_, err := gen.Generate(context.Background(), DensityRequest{Content: "x"})
		require.Error(t, err)
	})
}

func TestOpenAIGenerator_RateLimit(t *testing.T) {
	var calls int32
	server := chatServer(t, `[]`, func(openai.ChatCompletionRequest) { atomic.AddInt32(&calls, 1) })
	defer server.Close()

	gen := NewOpenAIGenerator(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "m", RateLimit: 1})
	require.NotNil(t, gen.limiter)

	_, err := gen.Generate(context.Background(), DensityRequest{Content: "x"})
	require.NoError(t, err)

	// burst is used up, the next call has to wait longer than the context allows
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = gen.Generate(ctx, DensityRequest{Content: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestBuildPrompt(t *testing.T) {
	req := DensityRequest{Content: "body", ContentCategory: "Blog Post", EntityRange: "1-2", MaxWords: 50, Iterations: 3}

	plain := buildPrompt(req, false)
	assert.Contains(t, plain, "Blog Post:\nbody")
	assert.Contains(t, plain, "of the above blog post")
	assert.Contains(t, plain, "list (length 3)")
	assert.NotContains(t, plain, `{"summaries"`)

	jsonMode := buildPrompt(req, true)
	assert.Contains(t, jsonMode, `{"summaries": [...]}`)
}
