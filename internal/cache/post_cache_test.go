package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/blog-service/internal/model"
)

func setupCache(t *testing.T) *PostCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPostCache(client, time.Minute)
}

func TestPostCache_PostRoundTrip(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	_, ok := c.GetPost(ctx, "p1")
	assert.False(t, ok)

	p := &model.Post{ID: "p1", Title: "t", Category: "Coding", AuthorID: "a"}
	c.SetPost(ctx, p)

	got, ok := c.GetPost(ctx, "p1")
	require.True(t, ok)
	assert.Equal(t, "t", got.Title)
	assert.Equal(t, "a", got.AuthorID)

	c.InvalidatePost(ctx, "p1")
	_, ok = c.GetPost(ctx, "p1")
	assert.False(t, ok)
}

func TestPostCache_CategoryStats(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	_, ok := c.GetCategoryStats(ctx)
	assert.False(t, ok)

	stats := []*model.CategoryStat{{Category: "Coding", PostCount: 3}}
	c.SetCategoryStats(ctx, stats)

	got, ok := c.GetCategoryStats(ctx)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].PostCount)

	c.InvalidateCategoryStats(ctx)
	_, ok = c.GetCategoryStats(ctx)
	assert.False(t, ok)
}
