package service

import (
	"context"

	"github.com/d60-Lab/blog-service/internal/repository"
)

// SavedService 收藏集合的增删，两个操作都返回操作后的完整列表
type SavedService interface {
	Add(ctx context.Context, userID, postID string) ([]string, error)
	Remove(ctx context.Context, userID, postID string) ([]string, error)
}

type savedService struct {
	savedRepo repository.SavedPostRepository
}

func NewSavedService(savedRepo repository.SavedPostRepository) SavedService {
	return &savedService{savedRepo: savedRepo}
}

func (s *savedService) Add(ctx context.Context, userID, postID string) ([]string, error) {
	if err := s.savedRepo.Add(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.savedRepo.ListPostIDs(ctx, userID)
}

func (s *savedService) Remove(ctx context.Context, userID, postID string) ([]string, error) {
	if err := s.savedRepo.Remove(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.savedRepo.ListPostIDs(ctx, userID)
}
