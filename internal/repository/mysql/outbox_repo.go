package mysql

import (
	"reddigo/internal/model"

	"gorm.io/gorm"
)

// outbox 状态
const (
	OutboxPending int8 = 0
	OutboxSent    int8 = 1
	OutboxFailed  int8 = 2
)

type OutboxRepository struct {
	DB *gorm.DB
}

// FetchPending 按写入顺序取一批待派发事件
func (r *OutboxRepository) FetchPending(limit int) ([]model.VoteOutbox, error) {
	var list []model.VoteOutbox
	err := r.DB.Where("status = ?", OutboxPending).
		Order("id asc").Limit(limit).Find(&list).Error
	return list, err
}

func (r *OutboxRepository) MarkSent(id uint64) error {
	return r.DB.Model(&model.VoteOutbox{}).
		Where("id = ?", id).
		Update("status", OutboxSent).Error
}

// MarkFailed 失败重试计数 +1，超过 maxRetry 置为 failed 不再派发
func (r *OutboxRepository) MarkFailed(id uint64, maxRetry int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.VoteOutbox{}).
			Where("id = ?", id).
			UpdateColumn("retry", gorm.Expr("retry + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&model.VoteOutbox{}).
			Where("id = ? AND retry > ?", id, maxRetry).
			Update("status", OutboxFailed).Error
	})
}
