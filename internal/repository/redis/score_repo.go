package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ScoreKeyPrefix = "score:post"
	ScoreTTL       = 10 * time.Minute
)

// ScoreCacheRepository 单帖分数的 read-through 缓存，按帖子 id 键控。
// 投票写入后删键，读侧回源 SQL 聚合重建。排序查询始终直接算 SQL 聚合，
// 这里只服务单帖分数读取。
type ScoreCacheRepository struct {
	ttl time.Duration
}

func NewScoreCacheRepository() *ScoreCacheRepository {
	return &ScoreCacheRepository{ttl: ScoreTTL}
}

func (r *ScoreCacheRepository) key(postID uint64) string {
	return fmt.Sprintf("%s:%d", ScoreKeyPrefix, postID)
}

// Get 第二个返回值表示是否命中；redis 未配置时一律按 miss 处理
func (r *ScoreCacheRepository) Get(ctx context.Context, postID uint64) (int64, bool, error) {
	if Client == nil {
		return 0, false, nil
	}
	val, err := Client.Get(ctx, r.key(postID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

func (r *ScoreCacheRepository) Set(ctx context.Context, postID uint64, score int64) error {
	if Client == nil {
		return nil
	}
	return Client.Set(ctx, r.key(postID), score, r.ttl).Err()
}

// Invalidate 投票写路径调用，删键让读侧重建
func (r *ScoreCacheRepository) Invalidate(ctx context.Context, postID uint64) error {
	if Client == nil {
		return nil
	}
	return Client.Del(ctx, r.key(postID)).Err()
}
