package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/blogdb/pkg/config"
	"github.com/umputun/blogdb/pkg/llm"
	"github.com/umputun/blogdb/pkg/llm/mocks"
)

func TestSummarizer_Summarize(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr error
	}{
		{
			name:   "last element wins",
			output: `[{"missing_entities":"a","denser_summary":"S1"},{"missing_entities":"b","denser_summary":"S2"},{"missing_entities":"c","denser_summary":"S3"}]`,
			want:   "S3",
		},
		{name: "single element", output: `[{"denser_summary":"only"}]`, want: "only"},
		{
			name:   "array inside prose and fences",
			output: "Here you go:\n```json\n[{\"denser_summary\":\"first\"},{\"denser_summary\":\"second\"}]\n```",
			want:   "second",
		},
		{
			name:   "brackets in prose before fence",
			output: "Here are the 2 summaries [as requested]:\n```json\n[{\"denser_summary\":\"A\"},{\"denser_summary\":\"B\"}]\n```",
			want:   "B",
		},
		{
			name:   "brackets in prose after fence",
			output: "```json\n[{\"denser_summary\":\"A\"},{\"denser_summary\":\"B\"}]\n```\nNote: entities [x] added",
			want:   "B",
		},
		{
			name:   "fenced json mode object",
			output: "```\n{\"summaries\":[{\"denser_summary\":\"A\"}]}\n```",
			want:   "A",
		},
		{
			name:   "unfenced array between bracketed prose",
			output: `Sure [ok], see [1]: [{"denser_summary":"A"},{"denser_summary":"B"}] and entities [x] were added`,
			want:   "B",
		},
		{name: "json mode object", output: `{"summaries":[{"denser_summary":"x"},{"denser_summary":"y"}]}`, want: "y"},
		{name: "empty sequence", output: `[]`, wantErr: llm.ErrNoOutput},
		{name: "empty sequence in object", output: `{"summaries":[]}`, wantErr: llm.ErrNoOutput},
		{name: "last element missing field", output: `[{"denser_summary":"x"},{"summary":"y"}]`, wantErr: llm.ErrMissingSummary},
		{name: "not json", output: "I cannot help with that", wantErr: llm.ErrMalformedOutput},
		{name: "broken json", output: `[{"denser_summary": "x"`, wantErr: llm.ErrMalformedOutput},
		{name: "empty response", output: "  ", wantErr: llm.ErrMalformedOutput},
		{name: "last element not an object", output: `[{"denser_summary":"x"}, "y"]`, wantErr: llm.ErrMalformedOutput},
		{name: "summary not a string", output: `[{"denser_summary":42}]`, wantErr: llm.ErrMalformedOutput},
		{name: "blank summary", output: `[{"denser_summary":"  "}]`, wantErr: llm.ErrMalformedOutput},
		{name: "object without summaries", output: `{"denser_summary":"x"}`, wantErr: llm.ErrMalformedOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &mocks.GeneratorMock{
				GenerateFunc: func(ctx context.Context, req llm.DensityRequest) (string, error) {
					return tt.output, nil
				},
			}
			s := llm.NewSummarizer(gen, config.SummaryConfig{})
			got, err := s.Summarize(context.Background(), "some article text")
			require.Len(t, gen.GenerateCalls(), 1, "exactly one request, no retries")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummarizer_MissingSummaryMessage(t *testing.T) {
	gen := &mocks.GeneratorMock{
		GenerateFunc: func(ctx context.Context, req llm.DensityRequest) (string, error) {
			return `[{"foo":"bar"}]`, nil
		},
	}
	_, err := llm.NewSummarizer(gen, config.SummaryConfig{}).Summarize(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, "malformed output: missing summary field", err.Error())
	assert.NotErrorIs(t, err, llm.ErrMalformedOutput, "missing field is its own kind")
}

func TestSummarizer_EmptyInput(t *testing.T) {
	gen := &mocks.GeneratorMock{
		GenerateFunc: func(ctx context.Context, req llm.DensityRequest) (string, error) {
			t.Fatal("generator must not be called")
			return "", nil
		},
	}
	s := llm.NewSummarizer(gen, config.SummaryConfig{})
	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := s.Summarize(context.Background(), text)
		require.ErrorIs(t, err, llm.ErrEmptyInput)
	}
	assert.Empty(t, gen.GenerateCalls())
}

func TestSummarizer_GeneratorError(t *testing.T) {
	upstream := errors.New("503 service unavailable")
	gen := &mocks.GeneratorMock{
		GenerateFunc: func(ctx context.Context, req llm.DensityRequest) (string, error) {
			return "", upstream
		},
	}
	_, err := llm.NewSummarizer(gen, config.SummaryConfig{}).Summarize(context.Background(), "text")
	require.ErrorIs(t, err, upstream)
	assert.Len(t, gen.GenerateCalls(), 1)
}

func TestSummarizer_RequestParameters(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		gen := &mocks.GeneratorMock{
			GenerateFunc: func(ctx context.Context, req llm.DensityRequest) (string, error) {
				return `[{"denser_summary":"ok"}]`, nil
			},
		}
		_, err := llm.NewSummarizer(gen, config.SummaryConfig{}).Summarize(context.Background(), "body")
		require.NoError(t, err)
		require.Len(t, gen.GenerateCalls(), 1)
		assert.Equal(t, llm.DensityRequest{Content: "body", ContentCategory: "Article", EntityRange: "2-3", MaxWords: 100, Iterations: 6},
			gen.GenerateCalls()[0].Req)
	})

	t.Run("configured", func(t *testing.T) {
		gen := &mocks.GeneratorMock{
			GenerateFunc: func(ctx context.Context, req llm.DensityRequest) (string, error) {
				return `[{"denser_summary":"ok"}]`, nil
			},
		}
		cfg := config.SummaryConfig{ContentCategory: "Blog Post", EntityRange: "1-2", MaxWords: 60, Iterations: 3}
		_, err := llm.NewSummarizer(gen, cfg).Summarize(context.Background(), "body")
		require.NoError(t, err)
		assert.Equal(t, llm.DensityRequest{Content: "body", ContentCategory: "Blog Post", EntityRange: "1-2", MaxWords: 60, Iterations: 3},
			gen.GenerateCalls()[0].Req)
	})
}
