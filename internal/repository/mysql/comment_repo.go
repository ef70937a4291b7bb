package mysql

import (
	"reddigo/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) FindByID(id uint64) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.First(&comment, "id = ?", id).Error
	return &comment, err
}

// ListByPost 楼层顺序（id 升序），游标取 id > cursorID 的下一段。
// 已删除的评论保留占位行，子评论不会脱挂。
func (r *CommentRepository) ListByPost(postID, cursorID uint64, limit int) ([]model.Comment, error) {
	q := r.DB.Where("post_id = ?", postID)
	if cursorID > 0 {
		q = q.Where("id > ?", cursorID)
	}
	var list []model.Comment
	err := q.Order("id asc").Limit(limit).Find(&list).Error
	return list, err
}

// SoftDelete 作者或所在社区版主可删，正文替换为占位串。幂等。
func (r *CommentRepository) SoftDelete(commentID, operatorID uint64) (int64, error) {
	tx := r.DB.Exec(`
		UPDATE comments SET status = ?, content = ?
		WHERE id = ? AND status = ?
		  AND (author_id = ? OR EXISTS (
		       SELECT 1 FROM posts p
		       JOIN community_members m ON m.community_name = p.community_name
		       WHERE p.id = comments.post_id AND m.user_id = ? AND m.role >= ?
		  ))`,
		model.StatusDeleted, model.DeletedMarker,
		commentID, model.StatusNormal,
		operatorID, operatorID, model.RoleModerator,
	)
	return tx.RowsAffected, tx.Error
}
