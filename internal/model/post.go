package model

import "time"

// Post 文章主体，content 为编辑器序列化后的富文本串
type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Category  string    `gorm:"type:varchar(64);index:idx_post_category;not null" json:"category"`
	Summary   string    `gorm:"type:varchar(512);not null" json:"summary"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Cover     string    `gorm:"type:varchar(255);not null" json:"cover"`
	AuthorID  string    `gorm:"type:varchar(36);index:idx_post_author;not null" json:"author"`
	Views     int64     `gorm:"not null;default:0" json:"views"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

// Categories 固定分类集合（服务端校验用）
var Categories = []string{
	"Software Development",
	"JavaScript",
	"Coding",
	"React",
	"Productivity",
	"Nodejs",
	"Technology",
}

// ValidCategory 判断分类是否在固定集合内
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
