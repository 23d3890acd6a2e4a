package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/blogdb/pkg/domain"
	"github.com/umputun/blogdb/pkg/repository"
)

//go:generate moq -out mocks/feed_store.go -pkg mocks -skip-ensure -fmt goimports . FeedStore
//go:generate moq -out mocks/trigger.go -pkg mocks -skip-ensure -fmt goimports . Trigger

// ErrInvalidURL is returned for feed urls that are not absolute http(s) urls
var ErrInvalidURL = errors.New("invalid feed url")

// FeedStore creates and looks up feeds
type FeedStore interface {
	FindByURL(ctx context.Context, url string) (*domain.Feed, error)
	CreateFeed(ctx context.Context, feed *domain.Feed) error
}

// Trigger starts an asynchronous run of a feed
type Trigger interface {
	TriggerFeed(feed domain.Feed)
}

// FeedService registers feeds and kicks off their first run
type FeedService struct {
	feeds   FeedStore
	trigger Trigger
}

// NewFeedService creates a new feed service
func NewFeedService(feeds FeedStore, trigger Trigger) *FeedService {
	return &FeedService{feeds: feeds, trigger: trigger}
}

// Register adds a feed by url. Registration is idempotent: for a known url the stored
// feed is returned with created=false and nothing is triggered. A new feed is stored
// as pending and one processing run is triggered for it.
func (s *FeedService) Register(ctx context.Context, feedURL string) (feed *domain.Feed, created bool, err error) {
	feedURL = strings.TrimSpace(feedURL)
	if err := validateURL(feedURL); err != nil {
		return nil, false, err
	}

	existing, err := s.feeds.FindByURL(ctx, feedURL)
	if err != nil {
		return nil, false, fmt.Errorf("find feed: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	feed = &domain.Feed{URL: feedURL, Status: domain.StatusPending}
	if err := s.feeds.CreateFeed(ctx, feed); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, false, fmt.Errorf("create feed: %w", err)
		}
		// registered concurrently
		existing, err := s.feeds.FindByURL(ctx, feedURL)
		if err != nil {
			return nil, false, fmt.Errorf("find feed: %w", err)
		}
		if existing == nil {
			return nil, false, fmt.Errorf("feed %s vanished after duplicate insert", feedURL)
		}
		return existing, false, nil
	}

	lgr.Printf("[INFO] registered feed %d %s", feed.ID, feed.URL)
	s.trigger.TriggerFeed(*feed)
	return feed, true, nil
}

func validateURL(feedURL string) error {
	if feedURL == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	u, err := url.Parse(feedURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https", ErrInvalidURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return nil
}
