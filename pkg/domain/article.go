package domain

import "time"

// Article is a deduplicated, summarized feed entry. URL is the dedup key.
type Article struct {
	ID        int64
	FeedID    int64
	Title     string
	URL       string
	Summary   string // empty when no summary was produced
	Published *time.Time
	CreatedAt time.Time
}
