package llm

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/umputun/blogdb/pkg/config"
)

// OpenAIGenerator runs chain of density prompts against any OpenAI-compatible chat completion API
type OpenAIGenerator struct {
	client  *openai.Client
	config  config.LLMConfig
	limiter *rate.Limiter // nil when rate limiting is off
}

// NewOpenAIGenerator creates a generator for the configured endpoint and model
func NewOpenAIGenerator(cfg config.LLMConfig) *OpenAIGenerator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	res := &OpenAIGenerator{client: openai.NewClientWithConfig(clientConfig), config: cfg}
	if cfg.RateLimit > 0 {
		res.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)
	}
	return res
}

// Generate sends a single chat completion request and returns the message content as is
func (g *OpenAIGenerator) Generate(ctx context.Context, req DensityRequest) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       g.config.Model,
		Temperature: requestTemperature(g.config.Temperature),
		MaxTokens:   g.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req, g.config.UseJSONMode)},
		},
	}
	if g.config.UseJSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from llm")
	}
	return resp.Choices[0].Message.Content, nil
}

// requestTemperature maps the configured temperature to the request field. The client drops a zero
// temperature from the request, so an explicit 0 is sent as the smallest positive float32.
func requestTemperature(t *float64) float32 {
	switch {
	case t == nil:
		return 0
	case *t == 0:
		return math.SmallestNonzeroFloat32
	default:
		return float32(*t)
	}
}

const systemPrompt = `You are an expert at writing concise, entity-dense summaries. Write each summary in the same language as the source content.`

// buildPrompt renders the chain of density instructions for the request
func buildPrompt(req DensityRequest, jsonMode bool) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s:\n%s\n\n", req.ContentCategory, req.Content))
	sb.WriteString(fmt.Sprintf("You will generate increasingly concise, entity-dense summaries of the above %s.\n\n",
		strings.ToLower(req.ContentCategory)))
	sb.WriteString(fmt.Sprintf("Repeat the following 2 steps %d times.\n\n", req.Iterations))
	sb.WriteString(fmt.Sprintf("Step 1. Identify %s informative entities (\";\" delimited) from the %s which are missing from the previously generated summary.\n",
		req.EntityRange, strings.ToLower(req.ContentCategory)))
	sb.WriteString("Step 2. Write a new, denser summary of identical length which covers every entity and detail from the previous summary plus the missing entities.\n\n")
	sb.WriteString("A missing entity is:\n")
	sb.WriteString("- relevant to the main story,\n- specific yet concise (5 words or fewer),\n")
	sb.WriteString("- novel (not in the previous summary),\n- faithful (present in the source),\n- anywhere (can be located anywhere in the source).\n\n")
	sb.WriteString("Guidelines:\n")
	sb.WriteString(fmt.Sprintf("- The first summary should be long (%d words) yet highly non-specific, containing little information beyond the entities marked as missing.\n", req.MaxWords))
	sb.WriteString("- Make every word count: rewrite the previous summary to improve flow and make space for additional entities.\n")
	sb.WriteString("- Make space with fusion, compression, and removal of uninformative phrases.\n")
	sb.WriteString("- The summaries should become highly dense and concise yet self-contained.\n")
	sb.WriteString("- Missing entities can appear anywhere in the new summary.\n")
	sb.WriteString("- Never drop entities from the previous summary. If space cannot be made, add fewer new entities.\n\n")
	sb.WriteString(fmt.Sprintf("Remember, use the exact same number of words (%d) for each summary.\n\n", req.MaxWords))

	if jsonMode {
		sb.WriteString(fmt.Sprintf(`Answer with a JSON object {"summaries": [...]} holding a list of %d dictionaries`, req.Iterations))
	} else {
		sb.WriteString(fmt.Sprintf("Answer in JSON. The JSON should be a list (length %d) of dictionaries", req.Iterations))
	}
	sb.WriteString(` whose keys are "missing_entities" and "denser_summary".`)
	return sb.String()
}
