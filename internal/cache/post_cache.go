package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/blog-service/internal/model"
)

const statsKey = "category_stats"

// PostCache 文章详情与分类计数的 read-through 缓存。
// 缓存的是写入时刻的快照：阅读数在 TTL 内不随后台累加刷新，
// 详情被改动时由上层显式失效。
type PostCache struct {
	cache *redis.Client
	ttl   time.Duration
}

func NewPostCache(cache *redis.Client, ttl time.Duration) *PostCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PostCache{cache: cache, ttl: ttl}
}

func postKey(id string) string { return fmt.Sprintf("post:%s", id) }

// GetPost 命中返回缓存的文章；miss 或反序列化失败都按 miss 处理
func (c *PostCache) GetPost(ctx context.Context, id string) (*model.Post, bool) {
	data, err := c.cache.Get(ctx, postKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var p model.Post
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, false
	}
	return &p, true
}

func (c *PostCache) SetPost(ctx context.Context, p *model.Post) {
	payload, err := json.Marshal(p)
	if err != nil {
		return
	}
	_ = c.cache.Set(ctx, postKey(p.ID), payload, c.ttl).Err()
}

func (c *PostCache) InvalidatePost(ctx context.Context, id string) {
	_ = c.cache.Del(ctx, postKey(id)).Err()
}

func (c *PostCache) GetCategoryStats(ctx context.Context) ([]*model.CategoryStat, bool) {
	data, err := c.cache.Get(ctx, statsKey).Bytes()
	if err != nil {
		return nil, false
	}
	var stats []*model.CategoryStat
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, false
	}
	return stats, true
}

func (c *PostCache) SetCategoryStats(ctx context.Context, stats []*model.CategoryStat) {
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	_ = c.cache.Set(ctx, statsKey, payload, c.ttl).Err()
}

func (c *PostCache) InvalidateCategoryStats(ctx context.Context) {
	_ = c.cache.Del(ctx, statsKey).Err()
}
