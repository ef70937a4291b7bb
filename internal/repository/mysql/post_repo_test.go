package mysql

import (
	"testing"

	"reddigo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedIDs(list []FeedPost) []uint64 {
	ids := make([]uint64, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestListNewOrderAndCursor(t *testing.T) {
	db := newTestDB(t)
	repo := &PostRepository{DB: db}

	for i := uint64(1); i <= 5; i++ {
		seedPost(t, db, i, 1, nil, "p")
	}

	// 第一页：id 倒序
	list, err := repo.ListNew(0, nil, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{5, 4, 3, 2, 1}, feedIDs(list))

	// 游标取 id < 3 的下一段
	list, err = repo.ListNew(0, nil, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 1}, feedIDs(list))

	// 游标之后没有更老的行：返回空切片而不是错误
	list, err = repo.ListNew(0, nil, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListPopularOrderTieBreakAndCursor(t *testing.T) {
	db := newTestDB(t)
	repo := &PostRepository{DB: db}

	// A=id10 分数 5，B=id7 分数 5，C=id20 分数 3，D=id30 没有票
	seedPost(t, db, 7, 1, nil, "B")
	seedPost(t, db, 10, 1, nil, "A")
	seedPost(t, db, 20, 1, nil, "C")
	seedPost(t, db, 30, 1, nil, "D")
	for u := uint64(1); u <= 5; u++ {
		seedPostVote(t, db, u, 10, 1)
		seedPostVote(t, db, u, 7, 1)
	}
	for u := uint64(1); u <= 3; u++ {
		seedPostVote(t, db, u, 20, 1)
	}

	list, err := repo.ListPopular(0, nil, 0, 0, false, 10)
	require.NoError(t, err)
	// 同分按 id 倒序打破并列，无票的帖子按 0 分参与排序
	assert.Equal(t, []uint64{10, 7, 20, 30}, feedIDs(list))
	assert.Equal(t, int64(5), list[0].Score)
	assert.Equal(t, int64(5), list[1].Score)
	assert.Equal(t, int64(3), list[2].Score)
	assert.Equal(t, int64(0), list[3].Score)

	// 游标落在同分段中间：(score=5, id=10) 之后应先出 id 更小的同分行
	list, err = repo.ListPopular(0, nil, 5, 10, true, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{7, 20, 30}, feedIDs(list))

	// 游标落在分数边界：(score=5, id=7) 之后只剩更低分的行
	list, err = repo.ListPopular(0, nil, 5, 7, true, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{20, 30}, feedIDs(list))
}

// 翻页全覆盖：逐页走完 popular 序，所有帖子恰好出现一次
func TestListPopularPagingCoversAll(t *testing.T) {
	db := newTestDB(t)
	repo := &PostRepository{DB: db}

	// 制造大量同分：10 个帖子只有 3 种分数
	for i := uint64(1); i <= 10; i++ {
		seedPost(t, db, i, 1, nil, "p")
		for u := uint64(1); u <= i%3; u++ {
			seedPostVote(t, db, u, i, 1)
		}
	}

	seen := map[uint64]int{}
	var cursorScore int64
	var cursorID uint64
	hasCursor := false
	for pages := 0; pages < 10; pages++ {
		list, err := repo.ListPopular(0, nil, cursorScore, cursorID, hasCursor, 3)
		require.NoError(t, err)
		if len(list) == 0 {
			break
		}
		for _, p := range list {
			seen[p.ID]++
		}
		last := list[len(list)-1]
		cursorScore, cursorID, hasCursor = last.Score, last.ID, true
	}

	assert.Len(t, seen, 10)
	for id, n := range seen {
		assert.Equalf(t, 1, n, "post %d appeared %d times", id, n)
	}
}

func TestScoreDerivation(t *testing.T) {
	db := newTestDB(t)
	repo := &PostRepository{DB: db}

	seedPost(t, db, 1, 1, nil, "p")
	seedPostVote(t, db, 1, 1, 1)
	seedPostVote(t, db, 2, 1, 1)
	seedPostVote(t, db, 3, 1, -1)
	seedPostVote(t, db, 4, 1, 0) // 撤回的票不计分

	// 评论票不影响帖子分数
	commentID := uint64(99)
	require.NoError(t, db.Create(&model.Vote{
		UserID: 5, PostID: 1, CommentID: &commentID, CommentKey: commentID, Value: 1,
	}).Error)

	p, err := repo.FindVisibleByID(0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Score)
}

func TestVisibilityFilter(t *testing.T) {
	db := newTestDB(t)
	repo := &PostRepository{DB: db}

	seedCommunity(t, db, "open", model.VisibilityPublic, 1)
	seedCommunity(t, db, "hidden", model.VisibilityPrivate, 1)
	seedMember(t, db, "hidden", 1, model.RoleModerator)

	seedPost(t, db, 1, 1, nil, "no community")
	seedPost(t, db, 2, 1, strptr("open"), "public")
	seedPost(t, db, 3, 1, strptr("hidden"), "private")

	// 成员看得到全部
	list, err := repo.ListNew(1, nil, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 2, 1}, feedIDs(list))

	// 非成员和匿名查看者都看不到 private 社区的帖子
	for _, viewer := range []uint64{2, 0} {
		list, err = repo.ListNew(viewer, nil, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, []uint64{2, 1}, feedIDs(list))
	}

	// 单帖读取对非成员不泄露存在性
	_, err = repo.FindVisibleByID(2, 3)
	assert.ErrorIs(t, err, ErrPostNotFound)
	p, err := repo.FindVisibleByID(1, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), p.ID)
}

func TestListNewScopedToCommunity(t *testing.T) {
	db := newTestDB(t)
	repo := &PostRepository{DB: db}

	seedCommunity(t, db, "go", model.VisibilityPublic, 1)
	seedCommunity(t, db, "rust", model.VisibilityPublic, 1)
	seedPost(t, db, 1, 1, strptr("go"), "a")
	seedPost(t, db, 2, 1, strptr("rust"), "b")
	seedPost(t, db, 3, 1, strptr("go"), "c")

	list, err := repo.ListNew(0, strptr("go"), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 1}, feedIDs(list))
}

func TestSoftDeletePermissionsAndIdempotency(t *testing.T) {
	db := newTestDB(t)
	repo := &PostRepository{DB: db}

	seedCommunity(t, db, "go", model.VisibilityPublic, 1)
	seedMember(t, db, "go", 9, model.RoleModerator)
	seedMember(t, db, "go", 8, model.RoleMember)
	seedPost(t, db, 1, 2, strptr("go"), "by user 2")

	// 路人和普通成员都删不掉
	for _, operator := range []uint64{3, 8} {
		affected, err := repo.SoftDelete(1, operator)
		require.NoError(t, err)
		assert.Zero(t, affected)
	}

	// 作者可删；正文替换为占位串，行保留
	affected, err := repo.SoftDelete(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var p model.Post
	require.NoError(t, db.First(&p, "id = ?", 1).Error)
	assert.Equal(t, model.StatusDeleted, p.Status)
	assert.Equal(t, model.DeletedMarker, p.Content)

	// 删除后不再出现在列表里
	list, err := repo.ListNew(0, nil, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, list)

	// 重复删除不报错也不再变更
	affected, err = repo.SoftDelete(1, 2)
	require.NoError(t, err)
	assert.Zero(t, affected)

	// 版主可以删社区内其他人的帖子
	seedPost(t, db, 2, 2, strptr("go"), "another")
	affected, err = repo.SoftDelete(2, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestUpdateContentOnlyAuthor(t *testing.T) {
	db := newTestDB(t)
	repo := &PostRepository{DB: db}

	seedPost(t, db, 1, 2, nil, "old")

	affected, err := repo.UpdateContent(1, 3, "hack", "hack")
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.UpdateContent(1, 2, "new title", "new body")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var p model.Post
	require.NoError(t, db.First(&p, "id = ?", 1).Error)
	assert.Equal(t, "new title", p.Title)
}
