package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-service/internal/cache"
	"github.com/d60-Lab/blog-service/internal/model"
	"github.com/d60-Lab/blog-service/internal/repository"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrMissingFields   = errors.New("title, summary, content, cover and category are required")
	ErrInvalidCategory = errors.New("unknown category")
	ErrNotAuthor       = errors.New("not the post author")
)

type PublishInput struct {
	Title    string
	Category string
	Summary  string
	Content  string
	Cover    string
}

// UpdateInput 指针字段表示补丁：nil 不动，非 nil 覆盖
type UpdateInput struct {
	Title    *string
	Category *string
	Summary  *string
	Content  *string
	Cover    *string
}

type PostService interface {
	Publish(ctx context.Context, authorID string, in PublishInput) (*model.Post, error)
	Get(ctx context.Context, id string) (*model.Post, error)
	List(ctx context.Context, category string, page, pageSize int) ([]*model.Post, error)
	Update(ctx context.Context, callerID, id string, in UpdateInput) (*model.Post, error)
	CategoryStats(ctx context.Context) ([]*model.CategoryStat, error)
}

type postService struct {
	postRepo repository.PostRepository
	cache    *cache.PostCache
	counter  *ViewCounter
}

// NewPostService cache 与 counter 允许为 nil（测试或禁用场景）
func NewPostService(postRepo repository.PostRepository, pc *cache.PostCache, counter *ViewCounter) PostService {
	return &postService{postRepo: postRepo, cache: pc, counter: counter}
}

// Publish 服务端完整校验后落库，作者取认证身份而非请求体
func (s *postService) Publish(ctx context.Context, authorID string, in PublishInput) (*model.Post, error) {
	if in.Title == "" || in.Summary == "" || in.Content == "" || in.Cover == "" || in.Category == "" {
		return nil, ErrMissingFields
	}
	if !model.ValidCategory(in.Category) {
		return nil, ErrInvalidCategory
	}
	now := time.Now()
	post := &model.Post{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Category:  in.Category,
		Summary:   in.Summary,
		Content:   in.Content,
		Cover:     in.Cover,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.postRepo.CreateWithStats(ctx, post); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.InvalidateCategoryStats(ctx)
	}
	return post, nil
}

// Get 文章详情，命中缓存直接返回。
// 命中时 Views 是缓存写入时刻的值，TTL 内最多落后异步计数一个缓存周期。
func (s *postService) Get(ctx context.Context, id string) (*model.Post, error) {
	if s.cache != nil {
		if p, ok := s.cache.GetPost(ctx, id); ok {
			if s.counter != nil {
				s.counter.Bump(id)
			}
			return p, nil
		}
	}
	p, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetPost(ctx, p)
	}
	if s.counter != nil {
		s.counter.Bump(id)
	}
	return p, nil
}

func (s *postService) List(ctx context.Context, category string, page, pageSize int) ([]*model.Post, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize
	return s.postRepo.List(ctx, category, offset, pageSize)
}

// Update 部分更新；只有作者本人可改
func (s *postService) Update(ctx context.Context, callerID, id string, in UpdateInput) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, ErrNotAuthor
	}

	fields := map[string]interface{}{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Category != nil {
		if !model.ValidCategory(*in.Category) {
			return nil, ErrInvalidCategory
		}
		fields["category"] = *in.Category
	}
	if in.Summary != nil {
		fields["summary"] = *in.Summary
	}
	if in.Content != nil {
		fields["content"] = *in.Content
	}
	if in.Cover != nil {
		fields["cover"] = *in.Cover
	}
	if len(fields) == 0 {
		return post, nil
	}
	fields["updated_at"] = time.Now()
	if err := s.postRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.InvalidatePost(ctx, id)
		if in.Category != nil && *in.Category != post.Category {
			s.cache.InvalidateCategoryStats(ctx)
		}
	}
	return s.postRepo.FindByID(ctx, id)
}

func (s *postService) CategoryStats(ctx context.Context) ([]*model.CategoryStat, error) {
	if s.cache != nil {
		if stats, ok := s.cache.GetCategoryStats(ctx); ok {
			return stats, nil
		}
	}
	stats, err := s.postRepo.CategoryStats(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetCategoryStats(ctx, stats)
	}
	return stats, nil
}
