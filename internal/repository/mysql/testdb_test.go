package mysql

import (
	"testing"

	"reddigo/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个用例一个内存库。限制单连接，避免 :memory: 随连接池散开。
func newTestDB(t *testing.T) *gorm.DB {
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
		&model.Image{},
	))
	return db
}

func seedPost(t *testing.T, db *gorm.DB, id, authorID uint64, community *string, title string) {
	t.Helper()
	require.NoError(t, db.Create(&model.Post{
		ID:            id,
		AuthorID:      authorID,
		CommunityName: community,
		Title:         title,
		Content:       "body of " + title,
	}).Error)
}

func seedPostVote(t *testing.T, db *gorm.DB, userID, postID uint64, value int) {
	t.Helper()
	require.NoError(t, db.Create(&model.Vote{
		UserID: userID,
		PostID: postID,
		Value:  value,
	}).Error)
}

func seedCommunity(t *testing.T, db *gorm.DB, name, visibility string, creatorID uint64) {
	t.Helper()
	require.NoError(t, db.Create(&model.Community{
		Name:       name,
		Visibility: visibility,
		CreatorID:  creatorID,
	}).Error)
}

func seedMember(t *testing.T, db *gorm.DB, community string, userID uint64, role int) {
	t.Helper()
	require.NoError(t, db.Create(&model.CommunityMember{
		CommunityName: community,
		UserID:        userID,
		Role:          role,
	}).Error)
}

func strptr(s string) *string { return &s }
