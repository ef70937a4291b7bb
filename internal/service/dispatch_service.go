package service

import (
	"context"
	"time"

	"reddigo/internal/pkg"
	"reddigo/internal/repository/mysql"

	"go.uber.org/zap"
)

const (
	dispatchInterval = 2 * time.Second
	dispatchBatch    = 100
	dispatchMaxRetry = 5
)

// DispatchService 把 vote_outbox 里 pending 的事件批量发到 kafka。
// 投票写路径不等 kafka，失败只影响事件时延不影响请求。
type DispatchService struct {
	repo     *mysql.OutboxRepository
	producer *pkg.KafkaProducer
}

func NewDispatchService(producer *pkg.KafkaProducer) *DispatchService {
	return &DispatchService{
		repo:     &mysql.OutboxRepository{DB: mysql.DB},
		producer: producer,
	}
}

// Run 轮询循环，ctx 取消后退出
func (s *DispatchService) Run(ctx context.Context) {
	ticker := time.NewTicker(dispatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.dispatchOnce(ctx)
		}
	}
}

func (s *DispatchService) dispatchOnce(ctx context.Context) {
	events, err := s.repo.FetchPending(dispatchBatch)
	if err != nil {
		pkg.Logger.Error("outbox fetch failed", zap.Error(err))
		return
	}

	for _, evt := range events {
		err := s.producer.Send(ctx, pkg.MakeKeyFromID(evt.PostID), []byte(evt.Payload))
		if err != nil {
			pkg.Logger.Warn("vote event publish failed",
				zap.Uint64("outbox_id", evt.ID), zap.Int("retry", evt.Retry), zap.Error(err))
			if err := s.repo.MarkFailed(evt.ID, dispatchMaxRetry); err != nil {
				pkg.Logger.Error("outbox mark failed error", zap.Uint64("outbox_id", evt.ID), zap.Error(err))
			}
			continue
		}
		if err := s.repo.MarkSent(evt.ID); err != nil {
			pkg.Logger.Error("outbox mark sent error", zap.Uint64("outbox_id", evt.ID), zap.Error(err))
		}
	}
}
