package model

import "time"

type Comment struct {
	ID        uint64  `gorm:"primaryKey"`
	PostID    uint64  `gorm:"not null;index:idx_comment_post"`
	AuthorID  uint64  `gorm:"not null;index:idx_comment_author"`
	ParentID  *uint64 `gorm:"index"` // null=顶层评论
	Content   string  `gorm:"type:text;not null"`
	Status    int     `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
