package mysql

import (
	"context"
	"encoding/json"
	"errors"

	"reddigo/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrDuplicateVote = errors.New("already voted")
	ErrVoteNotFound  = errors.New("vote not found")
	ErrNotVoteOwner  = errors.New("not vote owner")
)

type VoteRepository struct {
	DB *gorm.DB
}

// Cast 投票写入。查重带 FOR UPDATE：REPEATABLE READ 下普通读不上锁，
// 两个并发事务会同时通过查重，锁定读让后到的一方在间隙锁上撞住；
// (user_id, post_id, comment_key) 唯一索引在库层兜底。outbox 事件同事务落库。
func (r *VoteRepository) Cast(ctx context.Context, vote *model.Vote) error {
	if vote.CommentID != nil {
		vote.CommentKey = *vote.CommentID
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND status = 0", vote.UserID)
		if vote.CommentID == nil {
			// 帖子票：同一 (user, post, null-comment) 至多一条活跃记录
			q = q.Where("post_id = ? AND comment_id IS NULL", vote.PostID)
		} else {
			// 评论票：同一 (user, comment) 至多一条
			q = q.Where("comment_id = ?", *vote.CommentID)
		}

		var existing model.Vote
		err := q.First(&existing).Error
		if err == nil {
			return ErrDuplicateVote
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(vote).Error; err != nil {
			// 并发竞争输掉唯一索引的一方按重复票报
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateVote
			}
			return err
		}
		return enqueueVoteEvent(tx, vote, eventTypeFor(vote.Value))
	})
}

// UpdateValue 按 id 改票。先核对调用者就是这张票的所有者，不匹配按越权处理
// 而不是静默忽略。value=0 即撤回，行保留但不再计分。
func (r *VoteRepository) UpdateValue(ctx context.Context, voteID, userID uint64, value int) (*model.Vote, error) {
	var vote model.Vote
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&vote, "id = ? AND status = 0", voteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVoteNotFound
			}
			return err
		}
		if vote.UserID != userID {
			return ErrNotVoteOwner
		}
		if err := tx.Model(&vote).Update("value", value).Error; err != nil {
			return err
		}
		vote.Value = value
		return enqueueVoteEvent(tx, &vote, eventTypeFor(value))
	})
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// PostScore 单帖分数：帖子级非零票的 value 之和
func (r *VoteRepository) PostScore(ctx context.Context, postID uint64) (int64, error) {
	var score int64
	err := r.DB.WithContext(ctx).Model(&model.Vote{}).
		Select("COALESCE(SUM(value), 0)").
		Where("post_id = ? AND comment_id IS NULL AND value <> 0", postID).
		Scan(&score).Error
	return score, err
}

func eventTypeFor(value int) string {
	if value == 0 {
		return "retract"
	}
	return "vote"
}

func enqueueVoteEvent(tx *gorm.DB, vote *model.Vote, eventType string) error {
	payload, err := json.Marshal(map[string]any{
		"vote_id":    vote.ID,
		"user_id":    vote.UserID,
		"post_id":    vote.PostID,
		"comment_id": vote.CommentID,
		"value":      vote.Value,
	})
	if err != nil {
		return err
	}
	return tx.Create(&model.VoteOutbox{
		EventType: eventType,
		VoteID:    vote.ID,
		PostID:    vote.PostID,
		Payload:   string(payload),
	}).Error
}
