package model

import "time"

// CategoryStat 分类文章计数，发布事务内维护
type CategoryStat struct {
	Category  string    `gorm:"primaryKey;type:varchar(64)" json:"category"`
	PostCount int64     `gorm:"not null;default:0" json:"post_count"`
	UpdatedAt time.Time `json:"-"`
}

func (CategoryStat) TableName() string { return "category_stats" }
