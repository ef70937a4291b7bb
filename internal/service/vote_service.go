package service

import (
	"context"
	"errors"

	"reddigo/internal/model"
	"reddigo/internal/repository/mysql"
	"reddigo/internal/repository/redis"

	"gorm.io/gorm"
)

var (
	ErrInvalidVoteValue = errors.New("invalid vote value")
	ErrCommentNotFound  = errors.New("comment not found")
)

type VoteService struct {
	repo        *mysql.VoteRepository
	postRepo    *mysql.PostRepository
	commentRepo *mysql.CommentRepository
	scoreCache  *redis.ScoreCacheRepository
}

func NewVoteService() *VoteService {
	return &VoteService{
		repo:        &mysql.VoteRepository{DB: mysql.DB},
		postRepo:    &mysql.PostRepository{DB: mysql.DB},
		commentRepo: &mysql.CommentRepository{DB: mysql.DB},
		scoreCache:  redis.NewScoreCacheRepository(),
	}
}

// Cast 新建投票。目标帖子必须对投票者可见；评论票还要求评论属于该帖子。
// 重复投票被事务内的查重拒绝。
func (s *VoteService) Cast(ctx context.Context, userID, postID uint64, commentID *uint64, value int) (*model.Vote, error) {
	if value != 1 && value != -1 {
		return nil, ErrInvalidVoteValue
	}

	if _, err := s.postRepo.FindVisibleByID(userID, postID); err != nil {
		if errors.Is(err, mysql.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if commentID != nil {
		comment, err := s.commentRepo.FindByID(*commentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		if err != nil {
			return nil, err
		}
		// 已删除的评论只剩占位行，和挂错帖子一样按不存在处理
		if comment.PostID != postID || comment.Status == model.StatusDeleted {
			return nil, ErrCommentNotFound
		}
	}

	vote := &model.Vote{
		UserID:    userID,
		PostID:    postID,
		CommentID: commentID,
		Value:     value,
	}
	if err := s.repo.Cast(ctx, vote); err != nil {
		return nil, err
	}

	// 帖子票写入后删分数缓存，读侧回源重建；评论票不影响帖子分数
	if commentID == nil {
		_ = s.scoreCache.Invalidate(ctx, postID)
	}
	return vote, nil
}

// Update 改票（value=0 即撤回）。所有者校验在仓储事务内完成，
// 非所有者按越权报错而不是静默忽略。
func (s *VoteService) Update(ctx context.Context, userID, voteID uint64, value int) (*model.Vote, error) {
	if value != 1 && value != -1 && value != 0 {
		return nil, ErrInvalidVoteValue
	}
	vote, err := s.repo.UpdateValue(ctx, voteID, userID, value)
	if err != nil {
		return nil, err
	}
	if vote.CommentID == nil {
		_ = s.scoreCache.Invalidate(ctx, vote.PostID)
	}
	return vote, nil
}

// Score 单帖分数，read-through：缓存命中直接用，miss 回源 SQL 聚合再回填
func (s *VoteService) Score(ctx context.Context, postID uint64) (int64, error) {
	if v, ok, err := s.scoreCache.Get(ctx, postID); err == nil && ok {
		return v, nil
	}
	v, err := s.repo.PostScore(ctx, postID)
	if err != nil {
		return 0, err
	}
	_ = s.scoreCache.Set(ctx, postID, v)
	return v, nil
}
