package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/blog-service/internal/model"
)

type PostRepository interface {
	// CreateWithStats 事务内落地 Post 并累加分类计数
	CreateWithStats(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	List(ctx context.Context, category string, offset, limit int) ([]*model.Post, error)
	// UpdateFields 只更新给到的列，未给到的列保持原值；
	// 若补丁改了 category，同一事务内迁移分类计数
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	AddViews(ctx context.Context, id string, delta int64) error
	CategoryStats(ctx context.Context) ([]*model.CategoryStat, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) CreateWithStats(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return bumpCategoryStat(tx, post.Category, 1)
	})
}

// bumpCategoryStat 分类计数加减；首次出现的分类建行
func bumpCategoryStat(tx *gorm.DB, category string, delta int64) error {
	res := tx.Model(&model.CategoryStat{}).
		Where("category = ?", category).
		UpdateColumn("post_count", gorm.Expr("post_count + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 && delta > 0 {
		stat := &model.CategoryStat{Category: category, PostCount: delta, UpdatedAt: time.Now()}
		return tx.Create(stat).Error
	}
	return nil
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) List(ctx context.Context, category string, offset, limit int) ([]*model.Post, error) {
	var res []*model.Post
	q := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Find(&res).Error
	return res, err
}

func (r *postRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	newCategory, hasCategory := fields["category"].(string)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var oldCategory string
		if hasCategory {
			if err := tx.Model(&model.Post{}).
				Where("id = ?", id).
				Select("category").
				Scan(&oldCategory).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&model.Post{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}
		if hasCategory && oldCategory != "" && oldCategory != newCategory {
			if err := bumpCategoryStat(tx, oldCategory, -1); err != nil {
				return err
			}
			if err := bumpCategoryStat(tx, newCategory, 1); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *postRepository) AddViews(ctx context.Context, id string, delta int64) error {
	return r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", delta)).Error
}

func (r *postRepository) CategoryStats(ctx context.Context) ([]*model.CategoryStat, error) {
	var res []*model.CategoryStat
	err := r.db.WithContext(ctx).Order("category").Find(&res).Error
	return res, err
}
