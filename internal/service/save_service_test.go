package service

import (
	"testing"

	"reddigo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavePostVisibilityAndPaging(t *testing.T) {
	db := setupDB(t)
	svc := NewSaveService()

	require.NoError(t, db.Create(&model.Community{Name: "hidden", Visibility: model.VisibilityPrivate, CreatorID: 1}).Error)
	require.NoError(t, db.Create(&model.CommunityMember{CommunityName: "hidden", UserID: 1}).Error)
	createPost(t, db, 1, 1, strptr("hidden"))
	createPost(t, db, 2, 1, nil)
	createPost(t, db, 3, 1, nil)

	// 看不见的帖子收藏不了
	assert.ErrorIs(t, svc.SavePost(2, 1), ErrPostNotFound)
	require.NoError(t, svc.SavePost(1, 1))

	require.NoError(t, svc.SavePost(2, 2))
	require.NoError(t, svc.SavePost(2, 3))
	require.NoError(t, svc.SavePost(2, 3)) // 重复收藏幂等

	views, next, err := svc.ListSavedPosts(2, 0, 1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, uint64(3), views[0].Post.ID) // 后收藏的在前
	require.NotNil(t, next)

	views, next, err = svc.ListSavedPosts(2, next.SaveID, 1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, uint64(2), views[0].Post.ID)
	assert.Nil(t, next)
}

func TestSaveCommentFollowsPostVisibility(t *testing.T) {
	db := setupDB(t)
	svc := NewSaveService()

	require.NoError(t, db.Create(&model.Community{Name: "hidden", Visibility: model.VisibilityPrivate, CreatorID: 1}).Error)
	require.NoError(t, db.Create(&model.CommunityMember{CommunityName: "hidden", UserID: 1}).Error)
	createPost(t, db, 1, 1, strptr("hidden"))
	comment := &model.Comment{PostID: 1, AuthorID: 1, Content: "c"}
	require.NoError(t, db.Create(comment).Error)

	assert.ErrorIs(t, svc.SaveComment(2, comment.ID), ErrCommentNotFound)
	assert.ErrorIs(t, svc.SaveComment(2, 10086), ErrCommentNotFound)
	require.NoError(t, svc.SaveComment(1, comment.ID))

	require.NoError(t, svc.UnsaveComment(1, comment.ID))
	var count int64
	require.NoError(t, db.Model(&model.SavedComment{}).Count(&count).Error)
	assert.Zero(t, count)
}
