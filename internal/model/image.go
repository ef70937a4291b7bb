package model

import "time"

type Image struct {
	ID          uint64 `gorm:"primaryKey"`
	UserID      uint64 `gorm:"not null;index"`
	ObjectKey   string `gorm:"uniqueIndex;size:64;not null"`
	ContentType string `gorm:"size:64"`
	Size        int64  `gorm:"not null"`
	CreatedAt   time.Time
}
