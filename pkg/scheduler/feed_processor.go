package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/blogdb/pkg/content"
	"github.com/umputun/blogdb/pkg/domain"
	"github.com/umputun/blogdb/pkg/repository"
)

//go:generate moq -out mocks/feed_store.go -pkg mocks -skip-ensure -fmt goimports . FeedStore
//go:generate moq -out mocks/article_store.go -pkg mocks -skip-ensure -fmt goimports . ArticleStore
//go:generate moq -out mocks/parser.go -pkg mocks -skip-ensure -fmt goimports . Parser
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor
//go:generate moq -out mocks/summarizer.go -pkg mocks -skip-ensure -fmt goimports . Summarizer

// FeedStore is the part of the feed repository the processor needs for status transitions
type FeedStore interface {
	TryStartAnalysis(ctx context.Context, id int64) (bool, error)
	FinishAnalysis(ctx context.Context, id int64, status domain.AnalysisStatus, errMsg string) error
}

// ArticleStore looks up and stores articles by url
type ArticleStore interface {
	FindByURL(ctx context.Context, url string) (*domain.Article, error)
	Insert(ctx context.Context, article *domain.Article) (*domain.Article, error)
}

// Parser fetches a feed document
type Parser interface {
	Parse(ctx context.Context, url string) (*domain.ParsedFeed, error)
}

// Extractor turns a raw entry into normalized text
type Extractor interface {
	Extract(ctx context.Context, entry domain.RawEntry) (*domain.NormalizedEntry, error)
}

// Summarizer produces a dense summary of a text
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// finishTimeout bounds the final status write, which runs even after ctx is canceled
const finishTimeout = 10 * time.Second

// FeedProcessor runs one analysis of a feed: it takes the feed to in_progress, fetches its
// entries, stores a summarized article for every entry with an unseen url and finally marks
// the feed done or failed. Entry problems skip the entry, anything else fails the run.
type FeedProcessor struct {
	feeds      FeedStore
	articles   ArticleStore
	parser     Parser
	extractor  Extractor
	summarizer Summarizer

	fetchTimeout           time.Duration
	summarizeTimeout       time.Duration
	maxConsecutiveFailures int
}

// FeedProcessorConfig holds configuration for FeedProcessor
type FeedProcessorConfig struct {
	Feeds      FeedStore
	Articles   ArticleStore
	Parser     Parser
	Extractor  Extractor
	Summarizer Summarizer

	FetchTimeout     time.Duration // zero means no timeout beyond the parser's own
	SummarizeTimeout time.Duration // zero means no timeout beyond the generator's own
	// MaxConsecutiveFailures fails the run after that many summarization failures in a row, 0 disables
	MaxConsecutiveFailures int
}

// NewFeedProcessor creates a new feed processor
func NewFeedProcessor(cfg FeedProcessorConfig) *FeedProcessor {
	return &FeedProcessor{
		feeds:                  cfg.Feeds,
		articles:               cfg.Articles,
		parser:                 cfg.Parser,
		extractor:              cfg.Extractor,
		summarizer:             cfg.Summarizer,
		fetchTimeout:           cfg.FetchTimeout,
		summarizeTimeout:       cfg.SummarizeTimeout,
		maxConsecutiveFailures: cfg.MaxConsecutiveFailures,
	}
}

// ProcessFeed runs one analysis of feed. It never returns an error, the outcome is in the returned FeedRun
// and in the feed status. A feed already in progress is left alone.
func (fp *FeedProcessor) ProcessFeed(ctx context.Context, feed domain.Feed) domain.FeedRun {
	res := domain.FeedRun{FeedID: feed.ID}

	started, err := fp.feeds.TryStartAnalysis(ctx, feed.ID)
	if err != nil {
		lgr.Printf("[ERROR] can't start analysis of feed %d %s: %v", feed.ID, feed.URL, err)
		res.Err = fmt.Errorf("start analysis: %w", err)
		return res
	}
	if !started {
		lgr.Printf("[INFO] feed %d %s is already being processed, skip", feed.ID, feed.URL)
		res.Busy = true
		return res
	}

	res.Status = domain.StatusDone
	if err := fp.run(ctx, feed, &res); err != nil {
		res.Status, res.Err = domain.StatusFailed, err
		lgr.Printf("[WARN] feed %d %s failed: %v", feed.ID, feed.URL, err)
	}

	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finishTimeout)
	defer cancel()
	errMsg := ""
	if res.Err != nil {
		errMsg = res.Err.Error()
	}
	if err := fp.feeds.FinishAnalysis(fctx, feed.ID, res.Status, errMsg); err != nil {
		lgr.Printf("[ERROR] can't set status %s for feed %d: %v", res.Status, feed.ID, err)
	}

	lgr.Printf("[INFO] feed %d %s %s: %d entries, %d new, %d existing, %d skipped, %d not summarized",
		feed.ID, feed.URL, res.Status, res.Entries, res.Inserted, res.Existing, res.Skipped, res.NotSummarized)
	return res
}

// run fetches the feed and processes its entries in document order. A panic is reported as an error.
func (fp *FeedProcessor) run(ctx context.Context, feed domain.Feed, res *domain.FeedRun) (err error) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] panic processing feed %d: %v\n%s", feed.ID, r, debug.Stack())
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	parsed, err := fp.fetch(ctx, feed.URL)
	if err != nil {
		return err
	}
	res.Entries = len(parsed.Entries)

	consecutiveFailures := 0
	for _, entry := range parsed.Entries {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("interrupted: %w", err)
		}

		outcome, err := fp.processEntry(ctx, feed, entry, res)
		if err != nil {
			return err
		}
		switch outcome {
		case entrySummaryFailed:
			consecutiveFailures++
			if fp.maxConsecutiveFailures > 0 && consecutiveFailures >= fp.maxConsecutiveFailures {
				return fmt.Errorf("%d summarization failures in a row, giving up", consecutiveFailures)
			}
		case entrySummarized:
			consecutiveFailures = 0
		}
	}
	return nil
}

func (fp *FeedProcessor) fetch(ctx context.Context, url string) (*domain.ParsedFeed, error) {
	if fp.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, fp.fetchTimeout)
		defer cancel()
	}
	parsed, err := fp.parser.Parse(ctx, url)
	if err != nil {
		return nil, err
	}
	if parsed == nil {
		return nil, errors.New("fetch feed: empty result")
	}
	return parsed, nil
}

type entryOutcome int

const (
	entrySkipped entryOutcome = iota
	entrySummaryFailed
	entrySummarized
)

// processEntry handles a single entry, errors are feed-level failures
func (fp *FeedProcessor) processEntry(ctx context.Context, feed domain.Feed, entry domain.RawEntry, res *domain.FeedRun) (entryOutcome, error) {
	link := strings.TrimSpace(entry.Link)
	if link == "" {
		lgr.Printf("[WARN] entry %q of feed %d has no link, skip", entry.Title, feed.ID)
		res.Skipped++
		return entrySkipped, nil
	}

	existing, err := fp.articles.FindByURL(ctx, link)
	if err != nil {
		return entrySkipped, fmt.Errorf("check article %s: %w", link, err)
	}
	if existing != nil {
		lgr.Printf("[DEBUG] article %s already stored, skip", link)
		res.Existing++
		return entrySkipped, nil
	}

	normalized, err := fp.extractor.Extract(ctx, entry)
	if err != nil {
		if errors.Is(err, content.ErrNoContent) {
			lgr.Printf("[WARN] no content in %s, skip", link)
		} else {
			lgr.Printf("[WARN] can't extract %s, skip: %v", link, err)
		}
		res.Skipped++
		return entrySkipped, nil
	}

	summary, err := fp.summarize(ctx, normalized.Text)
	if err != nil {
		if ctx.Err() != nil {
			return entrySkipped, fmt.Errorf("interrupted: %w", ctx.Err())
		}
		lgr.Printf("[WARN] can't summarize %s, skip: %v", link, err)
		res.NotSummarized++
		return entrySummaryFailed, nil
	}

	_, err = fp.articles.Insert(ctx, &domain.Article{
		FeedID:    feed.ID,
		Title:     entry.Title,
		URL:       link,
		Summary:   summary,
		Published: normalized.Published,
	})
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		lgr.Printf("[DEBUG] article %s stored concurrently, skip", link)
		res.Existing++
	case err != nil:
		return entrySkipped, fmt.Errorf("store article %s: %w", link, err)
	default:
		lgr.Printf("[DEBUG] stored article %s", link)
		res.Inserted++
	}
	return entrySummarized, nil
}

func (fp *FeedProcessor) summarize(ctx context.Context, text string) (string, error) {
	if fp.summarizeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, fp.summarizeTimeout)
		defer cancel()
	}
	return fp.summarizer.Summarize(ctx, text)
}
