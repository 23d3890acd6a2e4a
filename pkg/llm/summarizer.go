package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/umputun/blogdb/pkg/config"
)

//go:generate moq -out mocks/generator.go -pkg mocks -skip-ensure -fmt goimports . Generator

var (
	// ErrEmptyInput is returned for blank text, the generator is not called
	ErrEmptyInput = errors.New("empty input")
	// ErrNoOutput is returned when the model produced an empty summary sequence
	ErrNoOutput = errors.New("no output produced")
	// ErrMissingSummary is returned when the last element has no denser_summary field
	ErrMissingSummary = errors.New("malformed output: missing summary field")
	// ErrMalformedOutput wraps any other structural problem with the model response
	ErrMalformedOutput = errors.New("malformed output")
)

// DensityRequest holds everything the generation service needs for one chain of density run
type DensityRequest struct {
	Content         string
	ContentCategory string
	EntityRange     string
	MaxWords        int
	Iterations      int
}

// Generator sends a chain of density request to a text generation service and returns the raw response
type Generator interface {
	Generate(ctx context.Context, req DensityRequest) (string, error)
}

// Summarizer produces a dense summary of a text with the chain of density technique.
// It makes exactly one Generate call per Summarize and never retries.
type Summarizer struct {
	gen Generator
	cfg config.SummaryConfig
}

// NewSummarizer makes a summarizer with parameters fixed for its lifetime, zero values get defaults
func NewSummarizer(gen Generator, cfg config.SummaryConfig) *Summarizer {
	if cfg.ContentCategory == "" {
		cfg.ContentCategory = "Article"
	}
	if cfg.EntityRange == "" {
		cfg.EntityRange = "2-3"
	}
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = 100
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = 6
	}
	return &Summarizer{gen: gen, cfg: cfg}
}

// Summarize returns the denser_summary of the last element in the model's summary sequence
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}

	raw, err := s.gen.Generate(ctx, DensityRequest{
		Content:         text,
		ContentCategory: s.cfg.ContentCategory,
		EntityRange:     s.cfg.EntityRange,
		MaxWords:        s.cfg.MaxWords,
		Iterations:      s.cfg.Iterations,
	})
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}

	return lastSummary(raw)
}

// lastSummary decodes the summary sequence and picks denser_summary from its last element
func lastSummary(raw string) (string, error) {
	seq, err := decodeSequence(raw)
	if err != nil {
		return "", err
	}
	if len(seq) == 0 {
		return "", ErrNoOutput
	}

	var last map[string]json.RawMessage
	if err := json.Unmarshal(seq[len(seq)-1], &last); err != nil {
		return "", fmt.Errorf("%w: last element is not an object", ErrMalformedOutput)
	}
	val, ok := last["denser_summary"]
	if !ok {
		return "", ErrMissingSummary
	}
	var summary string
	if err := json.Unmarshal(val, &summary); err != nil {
		return "", fmt.Errorf("%w: denser_summary is not a string", ErrMalformedOutput)
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", fmt.Errorf("%w: empty denser_summary", ErrMalformedOutput)
	}
	return summary, nil
}

// decodeSequence accepts a bare JSON array, an object holding the array (json mode),
// or an array embedded in surrounding prose or code fences
func decodeSequence(raw string) ([]json.RawMessage, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedOutput)
	}

	var seq []json.RawMessage
	if err := json.Unmarshal([]byte(s), &seq); err == nil {
		return seq, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err == nil {
		if v, ok := obj["summaries"]; ok {
			if err := json.Unmarshal(v, &seq); err != nil {
				return nil, fmt.Errorf("%w: summaries is not an array", ErrMalformedOutput)
			}
			return seq, nil
		}
		return nil, fmt.Errorf("%w: object without summaries array", ErrMalformedOutput)
	}

	if body, ok := fencedBlock(s); ok {
		if err := json.Unmarshal([]byte(body), &seq); err == nil {
			return seq, nil
		}
		if err := json.Unmarshal([]byte(body), &obj); err == nil {
			if v, ok := obj["summaries"]; ok && json.Unmarshal(v, &seq) == nil {
				return seq, nil
			}
		}
	}

	// first '[' that starts an array of objects, trailing prose is ignored
	lastErr := errors.New("no json array found")
	for i := strings.Index(s, "["); i != -1; {
		var candidate []json.RawMessage
		err := json.NewDecoder(strings.NewReader(s[i:])).Decode(&candidate)
		if err == nil && objectsOnly(candidate) {
			return candidate, nil
		}
		if err != nil {
			lastErr = err
		}
		next := strings.Index(s[i+1:], "[")
		if next == -1 {
			break
		}
		i += next + 1
	}
	return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, lastErr)
}

func objectsOnly(seq []json.RawMessage) bool {
	for _, v := range seq {
		if !strings.HasPrefix(strings.TrimSpace(string(v)), "{") {
			return false
		}
	}
	return true
}

// fencedBlock returns the body of the first ``` code fence, skipping the language tag
func fencedBlock(s string) (string, bool) {
	start := strings.Index(s, "```")
	if start == -1 {
		return "", false
	}
	rest := s[start+3:]
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}
