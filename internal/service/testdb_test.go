package service

import (
	"testing"

	"reddigo/internal/model"
	"reddigo/internal/repository/mysql"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB 把包级 mysql.DB 指向一个内存库，service 构造函数照常取用
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Community{},
		&model.CommunityMember{},
		&model.Post{},
		&model.Comment{},
		&model.Vote{},
		&model.VoteOutbox{},
		&model.SavedPost{},
		&model.SavedComment{},
	))

	mysql.DB = db
	t.Cleanup(func() { mysql.DB = nil })
	return db
}

func createPost(t *testing.T, db *gorm.DB, id, authorID uint64, community *string) {
	t.Helper()
	require.NoError(t, db.Create(&model.Post{
		ID:            id,
		AuthorID:      authorID,
		CommunityName: community,
		Title:         "title",
		Content:       "content",
	}).Error)
}

func castVotes(t *testing.T, db *gorm.DB, postID uint64, n int) {
	t.Helper()
	for u := 1; u <= n; u++ {
		require.NoError(t, db.Create(&model.Vote{
			UserID: uint64(u),
			PostID: postID,
			Value:  1,
		}).Error)
	}
}

func strptr(s string) *string { return &s }
