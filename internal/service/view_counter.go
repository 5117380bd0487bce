package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/blog-service/internal/repository"
	"github.com/d60-Lab/blog-service/pkg/logger"
)

// ViewCounter 异步浏览计数器：详情页读取只入队，落库由后台 worker 完成
type ViewCounter struct {
	postRepo repository.PostRepository
	ch       chan string
}

func NewViewCounter(postRepo repository.PostRepository, queueSize int) *ViewCounter {
	if queueSize <= 0 {
		queueSize = 10000
	}
	return &ViewCounter{postRepo: postRepo, ch: make(chan string, queueSize)}
}

// Start 启动 worker，返回停止函数（等待队列自然排空一小段时间）
func (v *ViewCounter) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 2
	}
	stopCh := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			for {
				select {
				case postID := <-v.ch:
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					if err := v.postRepo.AddViews(ctx, postID, 1); err != nil {
						logger.Warn("view counter flush failed", zap.String("post", postID), zap.Error(err))
					}
					cancel()
				case <-stopCh:
					return
				}
			}
		}()
	}
	return func(ctx context.Context) error {
		close(stopCh)
		timeout := time.After(2 * time.Second)
		for {
			select {
			case <-timeout:
				return nil
			default:
				if len(v.ch) == 0 {
					return nil
				}
				time.Sleep(50 * time.Millisecond)
			}
		}
	}
}

// Bump 非阻塞入队，队列满则丢弃
func (v *ViewCounter) Bump(postID string) {
	select {
	case v.ch <- postID:
	default:
		logger.Warn("view counter queue full, drop", zap.String("post", postID))
	}
}

// QueueLen 返回当前队列长度（采样值）。
func (v *ViewCounter) QueueLen() int { return len(v.ch) }
