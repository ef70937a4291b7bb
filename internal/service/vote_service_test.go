package service

import (
	"context"
	"testing"

	"reddigo/internal/model"
	"reddigo/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteCastValidation(t *testing.T) {
	db := setupDB(t)
	svc := NewVoteService()
	ctx := context.Background()

	createPost(t, db, 1, 1, nil)

	// 新建票只收 1 / -1，撤回走改票接口
	_, err := svc.Cast(ctx, 2, 1, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidVoteValue)
	_, err = svc.Cast(ctx, 2, 1, nil, 5)
	assert.ErrorIs(t, err, ErrInvalidVoteValue)

	// 帖子不存在
	_, err = svc.Cast(ctx, 2, 404, nil, 1)
	assert.ErrorIs(t, err, ErrPostNotFound)

	vote, err := svc.Cast(ctx, 2, 1, nil, 1)
	require.NoError(t, err)
	assert.NotZero(t, vote.ID)

	_, err = svc.Cast(ctx, 2, 1, nil, -1)
	assert.ErrorIs(t, err, mysql.ErrDuplicateVote)
}

// private 社区的帖子对非成员不可投，报不存在而不是无权限
func TestVoteCastRequiresVisibility(t *testing.T) {
	db := setupDB(t)
	svc := NewVoteService()
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Community{Name: "hidden", Visibility: model.VisibilityPrivate, CreatorID: 1}).Error)
	require.NoError(t, db.Create(&model.CommunityMember{CommunityName: "hidden", UserID: 1}).Error)
	createPost(t, db, 1, 1, strptr("hidden"))

	_, err := svc.Cast(ctx, 2, 1, nil, 1)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.Cast(ctx, 1, 1, nil, 1)
	require.NoError(t, err)
}

func TestVoteCastCommentMustBelongToPost(t *testing.T) {
	db := setupDB(t)
	svc := NewVoteService()
	ctx := context.Background()

	createPost(t, db, 1, 1, nil)
	createPost(t, db, 2, 1, nil)
	comment := &model.Comment{PostID: 2, AuthorID: 1, Content: "c"}
	require.NoError(t, db.Create(comment).Error)

	// 评论挂在帖子 2 下，对帖子 1 投评论票非法
	_, err := svc.Cast(ctx, 3, 1, &comment.ID, 1)
	assert.ErrorIs(t, err, ErrCommentNotFound)

	_, err = svc.Cast(ctx, 3, 2, &comment.ID, 1)
	require.NoError(t, err)
}

// 软删除后只剩占位行的评论不能再被投票
func TestVoteCastRejectsDeletedComment(t *testing.T) {
	db := setupDB(t)
	svc := NewVoteService()
	ctx := context.Background()

	createPost(t, db, 1, 1, nil)
	comment := &model.Comment{PostID: 1, AuthorID: 2, Content: "c"}
	require.NoError(t, db.Create(comment).Error)
	require.NoError(t, db.Model(comment).Updates(map[string]any{
		"status":  model.StatusDeleted,
		"content": model.DeletedMarker,
	}).Error)

	_, err := svc.Cast(ctx, 3, 1, &comment.ID, 1)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestVoteUpdateAndScore(t *testing.T) {
	db := setupDB(t)
	svc := NewVoteService()
	ctx := context.Background()

	createPost(t, db, 1, 1, nil)
	vote, err := svc.Cast(ctx, 2, 1, nil, 1)
	require.NoError(t, err)

	score, err := svc.Score(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), score)

	// 改票值域是 1 / -1 / 0
	_, err = svc.Update(ctx, 2, vote.ID, 3)
	assert.ErrorIs(t, err, ErrInvalidVoteValue)

	_, err = svc.Update(ctx, 2, vote.ID, -1)
	require.NoError(t, err)
	score, err = svc.Score(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), score)

	// 撤回后分数只扣一次，重复撤回不再变化
	_, err = svc.Update(ctx, 2, vote.ID, 0)
	require.NoError(t, err)
	_, err = svc.Update(ctx, 2, vote.ID, 0)
	require.NoError(t, err)
	score, err = svc.Score(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), score)

	// 别人的票改不了
	_, err = svc.Update(ctx, 9, vote.ID, 1)
	assert.ErrorIs(t, err, mysql.ErrNotVoteOwner)
}
