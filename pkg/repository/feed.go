package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/blogdb/pkg/domain"
)

// FeedRepository handles feed-related database operations
type FeedRepository struct {
	db *sqlx.DB
}

// feedSQL represents a feed for SQL operations
type feedSQL struct {
	ID        int64     `db:"id"`
	URL       string    `db:"url"`
	Status    string    `db:"status"`
	LastError string    `db:"last_error"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(database *sqlx.DB) *FeedRepository {
	return &FeedRepository{db: database}
}

// CreateFeed inserts a new feed in pending state and fills feed with the stored record.
// Returns ErrDuplicate if a feed with the same url exists.
func (r *FeedRepository) CreateFeed(ctx context.Context, feed *domain.Feed) error {
	var id int64
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, `INSERT INTO feeds (url, status) VALUES (?, ?)`, feed.URL, domain.StatusPending)
		if err != nil {
			if isUniqueViolation(err) {
				return &criticalError{err: fmt.Errorf("create feed %s: %w", feed.URL, ErrDuplicate)}
			}
			return classify(fmt.Errorf("create feed: %w", err))
		}
		if id, err = res.LastInsertId(); err != nil {
			return &criticalError{err: fmt.Errorf("get insert id: %w", err)}
		}
		return nil
	})
	if err != nil {
		return err
	}

	stored, err := r.GetFeed(ctx, id)
	if err != nil {
		return err
	}
	*feed = *stored
	return nil
}

// GetFeed retrieves a feed by ID
func (r *FeedRepository) GetFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	var f feedSQL
	if err := r.db.GetContext(ctx, &f, "SELECT * FROM feeds WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("feed %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get feed: %w", err)
	}
	return f.toDomain(), nil
}

// FindByURL returns the feed registered with url, or nil if there is none
func (r *FeedRepository) FindByURL(ctx context.Context, url string) (*domain.Feed, error) {
	var f feedSQL
	if err := r.db.GetContext(ctx, &f, "SELECT * FROM feeds WHERE url = ?", url); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil //nolint:nilnil // absence is not an error
		}
		return nil, fmt.Errorf("find feed by url: %w", err)
	}
	return f.toDomain(), nil
}

// FindAll returns all feeds in registration order
func (r *FeedRepository) FindAll(ctx context.Context) ([]domain.Feed, error) {
	var rows []feedSQL
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM feeds ORDER BY id"); err != nil {
		return nil, fmt.Errorf("get feeds: %w", err)
	}
	feeds := make([]domain.Feed, 0, len(rows))
	for _, f := range rows {
		feeds = append(feeds, *f.toDomain())
	}
	return feeds, nil
}

// Replace overwrites the mutable fields (status, last_error) of an existing feed
func (r *FeedRepository) Replace(ctx context.Context, feed *domain.Feed) error {
	if !feed.Status.Valid() {
		return fmt.Errorf("replace feed %d: invalid status %q", feed.ID, feed.Status)
	}
	return withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx,
			`UPDATE feeds SET status = ?, last_error = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			feed.Status, feed.LastError, feed.ID)
		if err != nil {
			return classify(fmt.Errorf("replace feed: %w", err))
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return &criticalError{err: fmt.Errorf("replace feed %d: %w", feed.ID, ErrNotFound)}
		}
		return nil
	})
}

// TryStartAnalysis atomically moves the feed to in_progress unless it already is.
// Returns false if the feed is in progress (or missing), in which case nothing is changed.
func (r *FeedRepository) TryStartAnalysis(ctx context.Context, id int64) (bool, error) {
	var started bool
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx,
			`UPDATE feeds SET status = ?, last_error = '', updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status != ?`,
			domain.StatusInProgress, id, domain.StatusInProgress)
		if err != nil {
			return classify(fmt.Errorf("start analysis: %w", err))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get rows affected: %w", err)}
		}
		started = n == 1
		return nil
	})
	return started, err
}

// FinishAnalysis moves an in_progress feed to done or failed, recording errMsg as last_error
func (r *FeedRepository) FinishAnalysis(ctx context.Context, id int64, status domain.AnalysisStatus, errMsg string) error {
	if !domain.StatusInProgress.CanTransition(status) {
		return fmt.Errorf("finish analysis of feed %d: illegal status %q", id, status)
	}
	return withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx,
			`UPDATE feeds SET status = ?, last_error = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`,
			status, errMsg, id, domain.StatusInProgress)
		if err != nil {
			return classify(fmt.Errorf("finish analysis: %w", err))
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return &criticalError{err: fmt.Errorf("finish analysis: feed %d is not in progress", id)}
		}
		return nil
	})
}

func (f *feedSQL) toDomain() *domain.Feed {
	return &domain.Feed{
		ID:        f.ID,
		URL:       f.URL,
		Status:    domain.AnalysisStatus(f.Status),
		LastError: f.LastError,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
