package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/blogdb/pkg/domain"
)

// Parser fetches and parses RSS/Atom feeds
type Parser struct {
	client    *http.Client
	userAgent string
}

// NewParser creates a new feed parser. timeout bounds the whole fetch, including reading the body.
func NewParser(timeout time.Duration, userAgent string) *Parser {
	return &Parser{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// Parse fetches a feed document from url and returns its entries in document order.
// Network failures, non-200 responses and malformed documents are returned as errors.
func (p *Parser) Parse(ctx context.Context, url string) (*domain.ParsedFeed, error) {
	body, err := p.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	result := &domain.ParsedFeed{
		Title:   feed.Title,
		Link:    feed.Link,
		Entries: make([]domain.RawEntry, 0, len(feed.Items)),
	}
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		result.Entries = append(result.Entries, toRawEntry(item))
	}
	return result, nil
}

// toRawEntry maps a gofeed item to the raw entry. Atom entries often carry only <updated>,
// so it is used when <published> is absent.
func toRawEntry(item *gofeed.Item) domain.RawEntry {
	entry := domain.RawEntry{
		Title:       item.Title,
		Link:        item.Link,
		Content:     item.Content,
		Description: item.Description,
		Published:   item.Published,
	}
	if entry.Published == "" {
		entry.Published = item.Updated
	}

	switch {
	case item.PublishedParsed != nil:
		ts := item.PublishedParsed.UTC()
		entry.PublishedParsed = &ts
	case item.UpdatedParsed != nil:
		ts := item.UpdatedParsed.UTC()
		entry.PublishedParsed = &ts
	}
	return entry
}

// fetch retrieves content from a URL
func (p *Parser) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", p.userAgent)
	addBrowserHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
