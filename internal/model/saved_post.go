package model

import "time"

// SavedPost 用户收藏的文章（集合语义，复合唯一键去重）
type SavedPost struct {
	ID     string `gorm:"primaryKey;type:varchar(36)"`
	UserID string `gorm:"type:varchar(36);index:idx_saved_user;index:idx_saved_pair,unique;not null"`
	PostID string `gorm:"type:varchar(36);not null;index:idx_saved_pair,unique"`
	// idx_saved_pair = (user_id, post_id)
	CreatedAt time.Time
}

func (SavedPost) TableName() string { return "saved_posts" }
