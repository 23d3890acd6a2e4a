package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/blogdb/pkg/domain"
)

func createTestFeed(t *testing.T, repos *Repositories, url string) *domain.Feed {
	t.Helper()
	feed := &domain.Feed{URL: url}
	require.NoError(t, repos.Feed.CreateFeed(context.Background(), feed))
	return feed
}

func TestArticleRepository_InsertAndFind(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	feed := createTestFeed(t, repos, "https://example.com/feed.xml")

	published := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	stored, err := repos.Article.Insert(ctx, &domain.Article{
		FeedID: feed.ID, Title: "Post", URL: "https://example.com/post", Summary: "dense", Published: &published,
	})
	require.NoError(t, err)
	assert.NotZero(t, stored.ID)
	assert.Equal(t, "Post", stored.Title)
	assert.Equal(t, "dense", stored.Summary)
	require.NotNil(t, stored.Published)
	assert.True(t, published.Equal(*stored.Published))
	assert.False(t, stored.CreatedAt.IsZero())

	found, err := repos.Article.FindByURL(ctx, "https://example.com/post")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, stored.ID, found.ID)

	missing, err := repos.Article.FindByURL(ctx, "https://example.com/other")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repos.Article.GetArticle(ctx, 4242)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestArticleRepository_InsertWithoutPublished(t *testing.T) {
	repos := setupTestDB(t)
	feed := createTestFeed(t, repos, "https://example.com/feed.xml")

	stored, err := repos.Article.Insert(context.Background(), &domain.Article{FeedID: feed.ID, Title: "t", URL: "https://example.com/a"})
	require.NoError(t, err)
	assert.Nil(t, stored.Published)
	assert.Empty(t, stored.Summary)
}

func TestArticleRepository_DuplicateURLAcrossFeeds(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	feed1 := createTestFeed(t, repos, "https://one.example.com/feed.xml")
	feed2 := createTestFeed(t, repos, "https://two.example.com/feed.xml")

	_, err := repos.Article.Insert(ctx, &domain.Article{FeedID: feed1.ID, Title: "a", URL: "https://shared.example.com/post"})
	require.NoError(t, err)

	_, err = repos.Article.Insert(ctx, &domain.Article{FeedID: feed2.ID, Title: "b", URL: "https://shared.example.com/post"})
	require.ErrorIs(t, err, ErrDuplicate)

	count, err := repos.Article.CountArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestArticleRepository_ListArticles(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	feed := createTestFeed(t, repos, "https://example.com/feed.xml")

	for i := 1; i <= 5; i++ {
		_, err := repos.Article.Insert(ctx, &domain.Article{FeedID: feed.ID, Title: fmt.Sprintf("post %d", i), URL: fmt.Sprintf("https://example.com/%d", i)})
		require.NoError(t, err)
	}

	all, err := repos.Article.ListArticles(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "post 5", all[0].Title, "newest first")
	assert.Equal(t, "post 1", all[4].Title)

	page, err := repos.Article.ListArticles(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "post 4", page[0].Title)
	assert.Equal(t, "post 3", page[1].Title)

	empty, err := repos.Article.ListArticles(ctx, 10, 100)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
