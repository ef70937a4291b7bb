package model

import "time"

// 社区可见性
const (
	VisibilityPublic     = "public"
	VisibilityRestricted = "restricted" // 所有人可看，仅成员可发帖
	VisibilityPrivate    = "private"    // 仅成员可看
)

// 成员角色
const (
	RoleMember    = 0
	RoleModerator = 1
)

// Community 名字由用户指定，全局唯一，直接作主键
type Community struct {
	Name        string `gorm:"primaryKey;size:64"`
	Description string `gorm:"type:text"`
	Visibility  string `gorm:"size:16;not null;default:'public'"`
	Mature      bool   `gorm:"not null;default:false"`
	IconKey     string `gorm:"size:64"`
	BannerKey   string `gorm:"size:64"`
	CreatorID   uint64 `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ValidVisibility(v string) bool {
	switch v {
	case VisibilityPublic, VisibilityRestricted, VisibilityPrivate:
		return true
	}
	return false
}

type CommunityMember struct {
	ID            uint64 `gorm:"primaryKey"`
	CommunityName string `gorm:"size:64;not null;index;uniqueIndex:uk_community_user"`
	UserID        uint64 `gorm:"not null;index;uniqueIndex:uk_community_user"`
	Role          int    `gorm:"not null;default:0"` // 0=member 1=moderator
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
