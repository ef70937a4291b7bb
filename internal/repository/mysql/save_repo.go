package mysql

import (
	"reddigo/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaveRepository struct {
	DB *gorm.DB
}

// SavedFeedPost 收藏列表行：帖子 + 分数 + 收藏记录 id（作游标）
type SavedFeedPost struct {
	model.Post
	Score  int64
	SaveID uint64
}

// SavePost 幂等收藏
func (r *SaveRepository) SavePost(userID, postID uint64) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
		DoNothing: true,
	}).Create(&model.SavedPost{UserID: userID, PostID: postID}).Error
}

func (r *SaveRepository) UnsavePost(userID, postID uint64) error {
	return r.DB.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.SavedPost{}).Error
}

func (r *SaveRepository) SaveComment(userID, commentID uint64) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "comment_id"}},
		DoNothing: true,
	}).Create(&model.SavedComment{UserID: userID, CommentID: commentID}).Error
}

func (r *SaveRepository) UnsaveComment(userID, commentID uint64) error {
	return r.DB.Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&model.SavedComment{}).Error
}

// ListSavedPosts 按收藏时间倒序（save id 倒序）游标分页。
// 可见性过滤照常套用：收藏之后被转私有社区的帖子对非成员不再出现。
func (r *SaveRepository) ListSavedPosts(userID uint64, cursorSaveID uint64, limit int) ([]SavedFeedPost, error) {
	q := r.DB.Table("saved_posts").
		Select("posts.*, "+scoreExpr+" AS score, saved_posts.id AS save_id").
		Joins("JOIN posts ON posts.id = saved_posts.post_id").
		Joins(scoreJoin).
		Where("saved_posts.user_id = ?", userID).
		Where("posts.status = ?", model.StatusNormal).
		Where(visibleExpr, userID)
	if cursorSaveID > 0 {
		q = q.Where("saved_posts.id < ?", cursorSaveID)
	}
	var list []SavedFeedPost
	err := q.Order("saved_posts.id DESC").Limit(limit).Scan(&list).Error
	return list, err
}
