package mysql

import (
	"testing"

	"reddigo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavePostIdempotentAndList(t *testing.T) {
	db := newTestDB(t)
	repo := &SaveRepository{DB: db}

	seedPost(t, db, 1, 1, nil, "a")
	seedPost(t, db, 2, 1, nil, "b")
	seedPostVote(t, db, 5, 2, 1)

	require.NoError(t, repo.SavePost(9, 1))
	require.NoError(t, repo.SavePost(9, 1)) // 重复收藏不报错
	require.NoError(t, repo.SavePost(9, 2))

	var count int64
	require.NoError(t, db.Model(&model.SavedPost{}).Where("user_id = ?", 9).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	// 收藏时间倒序，带分数
	list, err := repo.ListSavedPosts(9, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, uint64(2), list[0].ID)
	assert.Equal(t, int64(1), list[0].Score)
	assert.Equal(t, uint64(1), list[1].ID)

	// 游标翻页
	list, err = repo.ListSavedPosts(9, list[0].SaveID, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint64(1), list[0].ID)

	require.NoError(t, repo.UnsavePost(9, 2))
	list, err = repo.ListSavedPosts(9, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

// 收藏之后帖子所在社区转私有：非成员的收藏列表里不再出现
func TestListSavedPostsRespectsVisibility(t *testing.T) {
	db := newTestDB(t)
	repo := &SaveRepository{DB: db}

	seedCommunity(t, db, "club", model.VisibilityPublic, 1)
	seedPost(t, db, 1, 1, strptr("club"), "p")
	require.NoError(t, repo.SavePost(9, 1))

	require.NoError(t, db.Model(&model.Community{}).
		Where("name = ?", "club").
		Update("visibility", model.VisibilityPrivate).Error)

	list, err := repo.ListSavedPosts(9, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, list)

	seedMember(t, db, "club", 9, model.RoleMember)
	list, err = repo.ListSavedPosts(9, 0, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
