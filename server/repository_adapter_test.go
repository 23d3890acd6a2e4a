package server

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/blogdb/pkg/domain"
	"github.com/umputun/blogdb/pkg/repository"
)

func setupTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	repos, err := repository.NewRepositories(context.Background(), repository.Config{
		DSN: "file:" + filepath.Join(t.TempDir(), "test.db") + "?mode=rwc&_txlock=immediate&_pragma=busy_timeout(5000)",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos
}

func TestRepositoryAdapter(t *testing.T) {
	ctx := context.Background()
	repos := setupTestRepos(t)
	adapter := NewRepositoryAdapter(repos)

	feeds, err := adapter.GetFeeds(ctx)
	require.NoError(t, err)
	assert.NotNil(t, feeds, "empty list, not nil")
	assert.Empty(t, feeds)

	feed := &domain.Feed{URL: "https://example.com/rss"}
	require.NoError(t, repos.Feed.CreateFeed(ctx, feed))

	stored, err := repos.Article.Insert(ctx, &domain.Article{FeedID: feed.ID, Title: "one", URL: "https://example.com/1", Summary: "s1"})
	require.NoError(t, err)
	_, err = repos.Article.Insert(ctx, &domain.Article{FeedID: feed.ID, Title: "two", URL: "https://example.com/2", Summary: "s2"})
	require.NoError(t, err)

	feeds, err = adapter.GetFeeds(ctx)
	require.NoError(t, err)
	require.Len(t, feeds, 1)
	assert.Equal(t, domain.StatusPending, feeds[0].Status)

	count, err := adapter.CountArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	articles, err := adapter.ListArticles(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "two", articles[0].Title, "newest first")

	got, err := adapter.GetArticle(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "s1", got.Summary)

	_, err = adapter.GetArticle(ctx, 12345)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
