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

// ArticleRepository handles article-related database operations
type ArticleRepository struct {
	db *sqlx.DB
}

// articleSQL represents an article for SQL operations
type articleSQL struct {
	ID        int64      `db:"id"`
	FeedID    int64      `db:"feed_id"`
	Title     string     `db:"title"`
	URL       string     `db:"url"`
	Summary   string     `db:"summary"`
	Published *time.Time `db:"published"`
	CreatedAt time.Time  `db:"created_at"`
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(database *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: database}
}

// FindByURL returns the article stored under url, or nil if there is none
func (r *ArticleRepository) FindByURL(ctx context.Context, url string) (*domain.Article, error) {
	var a articleSQL
	if err := r.db.GetContext(ctx, &a, "SELECT * FROM articles WHERE url = ?", url); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil //nolint:nilnil // absence is not an error
		}
		return nil, fmt.Errorf("find article by url: %w", err)
	}
	return a.toDomain(), nil
}

// Insert stores a new article and returns the stored record.
// Returns ErrDuplicate if an article with the same url already exists.
func (r *ArticleRepository) Insert(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	rec := articleSQL{
		FeedID:  article.FeedID,
		Title:   article.Title,
		URL:     article.URL,
		Summary: article.Summary,
	}
	if article.Published != nil {
		ts := article.Published.UTC()
		rec.Published = &ts
	}

	var id int64
	err := withRetry(ctx, func() error {
		res, err := r.db.NamedExecContext(ctx,
			`INSERT INTO articles (feed_id, title, url, summary, published) VALUES (:feed_id, :title, :url, :summary, :published)`, rec)
		if err != nil {
			if isUniqueViolation(err) {
				return &criticalError{err: fmt.Errorf("insert article %s: %w", article.URL, ErrDuplicate)}
			}
			return classify(fmt.Errorf("insert article: %w", err))
		}
		if id, err = res.LastInsertId(); err != nil {
			return &criticalError{err: fmt.Errorf("get insert id: %w", err)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetArticle(ctx, id)
}

// GetArticle retrieves an article by ID
func (r *ArticleRepository) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	var a articleSQL
	if err := r.db.GetContext(ctx, &a, "SELECT * FROM articles WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("article %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return a.toDomain(), nil
}

// ListArticles returns articles newest first
func (r *ArticleRepository) ListArticles(ctx context.Context, limit, offset int) ([]domain.Article, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	var rows []articleSQL
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM articles ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	res := make([]domain.Article, 0, len(rows))
	for _, a := range rows {
		res = append(res, *a.toDomain())
	}
	return res, nil
}

// CountArticles returns the number of stored articles
func (r *ArticleRepository) CountArticles(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM articles"); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

func (a *articleSQL) toDomain() *domain.Article {
	return &domain.Article{
		ID:        a.ID,
		FeedID:    a.FeedID,
		Title:     a.Title,
		URL:       a.URL,
		Summary:   a.Summary,
		Published: a.Published,
		CreatedAt: a.CreatedAt,
	}
}
