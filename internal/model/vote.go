package model

import "time"

// Vote CommentID 为 null 表示投给帖子本身，非 null 表示投给评论。
// Value=0 表示撤回，行保留但不再计入分数。
type Vote struct {
	ID        uint64  `gorm:"primaryKey"`
	UserID    uint64  `gorm:"not null;index:idx_vote_user;uniqueIndex:uk_vote_user_target"`
	PostID    uint64  `gorm:"not null;index:idx_vote_post;uniqueIndex:uk_vote_user_target"`
	CommentID *uint64 `gorm:"index:idx_vote_comment"`
	// CommentKey 帖子票恒为 0，评论票等于 comment_id。comment_id 可空，
	// 空值在唯一索引里彼此不冲突，这列把投票目标物化成非空键，
	// (user_id, post_id, comment_key) 唯一索引在库层兜住同目标重复票。
	CommentKey uint64 `gorm:"not null;default:0;uniqueIndex:uk_vote_user_target"`
	Value      int    `gorm:"not null"` // 1 / -1 / 0
	Status     int    `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// VoteOutbox 投票事件监控表，与投票写入同事务落库，后台派发到 kafka
type VoteOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"` // vote / retract
	VoteID    uint64 `gorm:"not null"`
	PostID    uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0"` // 0=pending 1=sent 2=failed
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (VoteOutbox) TableName() string { return "vote_outbox" }
