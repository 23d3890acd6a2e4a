package content

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/blogdb/pkg/domain"
)

// ErrNoContent is returned when an entry has neither content nor description
var ErrNoContent = errors.New("entry has no content")

// PageExtractor fetches the main text of an article page
type PageExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// EntryExtractor converts raw feed entries into normalized plain text
type EntryExtractor struct {
	sanitizer     *bluemonday.Policy
	page          PageExtractor
	minTextLength int
}

// EntryOption configures EntryExtractor
type EntryOption func(*EntryExtractor)

// WithPageExtractor enables page extraction for entries whose feed text is shorter than minLen runes
func WithPageExtractor(p PageExtractor, minLen int) EntryOption {
	return func(e *EntryExtractor) {
		e.page = p
		e.minTextLength = minLen
	}
}

// NewEntryExtractor makes an extractor. Without options it works on the feed document alone.
func NewEntryExtractor(opts ...EntryOption) *EntryExtractor {
	res := &EntryExtractor{sanitizer: bluemonday.UGCPolicy()}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Extract picks the entry body (content, falling back to description), renders it as
// markdown-like text with runs of newlines collapsed, and resolves the published time.
// Returns ErrNoContent if the entry carries no usable text.
func (e *EntryExtractor) Extract(ctx context.Context, entry domain.RawEntry) (*domain.NormalizedEntry, error) {
	src := entry.Content
	if strings.TrimSpace(src) == "" {
		src = entry.Description
	}
	if strings.TrimSpace(src) == "" {
		return nil, ErrNoContent
	}

	text := Normalize(e.sanitizer.Sanitize(src))
	if text == "" {
		return nil, ErrNoContent
	}

	if e.page != nil && entry.Link != "" && utf8.RuneCountInString(text) < e.minTextLength {
		text = e.enrich(ctx, entry.Link, text)
	}

	res := &domain.NormalizedEntry{RawEntry: entry, Text: text, Published: entry.PublishedParsed}
	if res.Published == nil {
		res.Published = ParsePublished(entry.Published)
	}
	return res, nil
}

// Normalize renders sanitized HTML to text and collapses newline runs
func Normalize(htmlSrc string) string {
	return strings.TrimSpace(CollapseNewlines(ToMarkdown(htmlSrc)))
}

// enrich replaces thin feed text with the extracted page text when that is longer.
// Page failures keep the feed text.
func (e *EntryExtractor) enrich(ctx context.Context, link, text string) string {
	page, err := e.page.Extract(ctx, link)
	if err != nil {
		lgr.Printf("[WARN] page extraction for %s failed, using feed text: %v", link, err)
		return text
	}
	page = strings.TrimSpace(CollapseNewlines(page))
	if utf8.RuneCountInString(page) <= utf8.RuneCountInString(text) {
		return text
	}
	lgr.Printf("[DEBUG] using extracted page text for %s, %d chars", link, len(page))
	return page
}
