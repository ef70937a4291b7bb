package service

import (
	"testing"

	"reddigo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentRules(t *testing.T) {
	db := setupDB(t)
	svc := NewCommentService()

	createPost(t, db, 1, 1, nil)
	createPost(t, db, 2, 1, nil)

	_, err := svc.CreateComment(2, 1, nil, "")
	assert.ErrorIs(t, err, ErrContentRequired)

	_, err = svc.CreateComment(2, 404, nil, "hi")
	assert.ErrorIs(t, err, ErrPostNotFound)

	top, err := svc.CreateComment(2, 1, nil, "top")
	require.NoError(t, err)

	// 父评论必须属于同一帖子
	_, err = svc.CreateComment(3, 2, &top.ID, "reply")
	assert.ErrorIs(t, err, ErrCommentNotFound)

	reply, err := svc.CreateComment(3, 1, &top.ID, "reply")
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, top.ID, *reply.ParentID)
}

func TestListCommentsVisibilityAndPaging(t *testing.T) {
	db := setupDB(t)
	svc := NewCommentService()

	require.NoError(t, db.Create(&model.Community{Name: "hidden", Visibility: model.VisibilityPrivate, CreatorID: 1}).Error)
	require.NoError(t, db.Create(&model.CommunityMember{CommunityName: "hidden", UserID: 1}).Error)
	createPost(t, db, 1, 1, strptr("hidden"))

	for i := 0; i < 4; i++ {
		_, err := svc.CreateComment(1, 1, nil, "c")
		require.NoError(t, err)
	}

	// 帖子本身不可见时评论列表也不可见
	_, _, err := svc.ListByPost(2, 1, 0, 10)
	assert.ErrorIs(t, err, ErrPostNotFound)

	views, next, err := svc.ListByPost(1, 1, 0, 3)
	require.NoError(t, err)
	require.Len(t, views, 3)
	require.NotNil(t, next)

	views, next, err = svc.ListByPost(1, 1, next.CommentID, 3)
	require.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Nil(t, next)
}

func TestDeleteCommentIdempotent(t *testing.T) {
	db := setupDB(t)
	svc := NewCommentService()

	createPost(t, db, 1, 1, nil)
	comment, err := svc.CreateComment(2, 1, nil, "hi")
	require.NoError(t, err)

	err = svc.DeleteComment(9, comment.ID)
	assert.ErrorIs(t, err, ErrNoPermission)

	require.NoError(t, svc.DeleteComment(2, comment.ID))
	require.NoError(t, svc.DeleteComment(2, comment.ID))

	// 占位行保留并打删除标记
	views, _, err := svc.ListByPost(0, 1, 0, 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Deleted)
	assert.Equal(t, model.DeletedMarker, views[0].Content)
}
