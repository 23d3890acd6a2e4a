package server

import (
	"context"

	"github.com/umputun/blogdb/pkg/domain"
	"github.com/umputun/blogdb/pkg/repository"
)

// RepositoryAdapter adapts repositories to server.Database interface
type RepositoryAdapter struct {
	repos *repository.Repositories
}

// NewRepositoryAdapter creates a new repository adapter
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{repos: repos}
}

// ListArticles returns a page of articles, newest first
func (r *RepositoryAdapter) ListArticles(ctx context.Context, limit, offset int) ([]domain.Article, error) {
	return r.repos.Article.ListArticles(ctx, limit, offset)
}

// GetArticle returns an article by id, repository.ErrNotFound if absent
func (r *RepositoryAdapter) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	return r.repos.Article.GetArticle(ctx, id)
}

// CountArticles returns the number of stored articles
func (r *RepositoryAdapter) CountArticles(ctx context.Context) (int, error) {
	return r.repos.Article.CountArticles(ctx)
}

// GetFeeds returns all feeds in registration order
func (r *RepositoryAdapter) GetFeeds(ctx context.Context) ([]domain.Feed, error) {
	feeds, err := r.repos.Feed.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if feeds == nil {
		feeds = []domain.Feed{}
	}
	return feeds, nil
}
