package model

import "time"

type SavedPost struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_save_user_post"`
	PostID    uint64 `gorm:"not null;uniqueIndex:uk_save_user_post"`
	CreatedAt time.Time
}

func (SavedPost) TableName() string { return "saved_posts" }

type SavedComment struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_save_user_comment"`
	CommentID uint64 `gorm:"not null;uniqueIndex:uk_save_user_comment"`
	CreatedAt time.Time
}

func (SavedComment) TableName() string { return "saved_comments" }
