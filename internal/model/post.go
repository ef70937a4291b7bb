package model

import "time"

const (
	StatusNormal  = 0
	StatusDeleted = 1
)

// DeletedMarker 软删除后替换正文的占位串，行永不硬删
const DeletedMarker = "[deleted]"

type Post struct {
	ID            uint64  `gorm:"primaryKey"`
	AuthorID      uint64  `gorm:"not null;index:idx_post_author"`
	CommunityName *string `gorm:"size:64;index:idx_post_community"` // null=不属于任何社区
	Title         string  `gorm:"size:300;not null"`
	Content       string  `gorm:"type:text"`
	Status        int     `gorm:"not null;default:0"` // 0=normal 1=deleted
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
