package mysql

import (
	"errors"

	"reddigo/internal/model"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound = errors.New("post not found")
)

type PostRepository struct {
	DB *gorm.DB
}

// FeedPost 查询结果：帖子 + 动态聚合出的分数（不落库）
type FeedPost struct {
	model.Post
	Score int64
}

// scoreJoin 帖子分数 = 帖子级投票（comment_id 为空）中非零 value 之和。
// 左连接 + COALESCE，保证没有票的帖子分数为 0 而不是被排除。
const scoreJoin = `LEFT JOIN (
	SELECT post_id, SUM(value) AS score
	FROM votes
	WHERE comment_id IS NULL AND value <> 0
	GROUP BY post_id
) v ON v.post_id = posts.id`

const scoreExpr = "COALESCE(v.score, 0)"

// visibleExpr 可见性谓词，所有列表路径和单帖读取统一套用：
// 无社区的帖子、非 private 社区的帖子，或者查看者是该社区成员。
// 匿名查看者传 viewerID=0，第三个分支自然落空。
const visibleExpr = `(posts.community_name IS NULL
	OR EXISTS (SELECT 1 FROM communities c WHERE c.name = posts.community_name AND c.visibility <> 'private')
	OR EXISTS (SELECT 1 FROM community_members m WHERE m.community_name = posts.community_name AND m.user_id = ?))`

// feedBase 公共查询底座：带分数连接、状态过滤、可见性过滤
func (r *PostRepository) feedBase(viewerID uint64) *gorm.DB {
	return r.DB.Table("posts").
		Select("posts.*, "+scoreExpr+" AS score").
		Joins(scoreJoin).
		Where("posts.status = ?", model.StatusNormal).
		Where(visibleExpr, viewerID)
}

// ListNew 按 id 倒序（id 单调递增，即按时间倒序）。
// cursorID=0 表示第一页，否则取 id < cursorID 的下一段。
func (r *PostRepository) ListNew(viewerID uint64, community *string, cursorID uint64, limit int) ([]FeedPost, error) {
	q := r.feedBase(viewerID)
	if community != nil {
		q = q.Where("posts.community_name = ?", *community)
	}
	if cursorID > 0 {
		q = q.Where("posts.id < ?", cursorID)
	}
	var list []FeedPost
	err := q.Order("posts.id DESC").Limit(limit).Scan(&list).Error
	return list, err
}

// ListPopular 按 (score DESC, id DESC) 排序，id 打破同分并列。
// 游标是上一页末行的 (score, id) 对；谓词必须是单个复合布尔表达式，
// 拆成两个串联过滤会在分数边界上漏行或重复。
func (r *PostRepository) ListPopular(viewerID uint64, community *string, cursorScore int64, cursorID uint64, hasCursor bool, limit int) ([]FeedPost, error) {
	q := r.feedBase(viewerID)
	if community != nil {
		q = q.Where("posts.community_name = ?", *community)
	}
	if hasCursor {
		q = q.Where("("+scoreExpr+" < ? OR ("+scoreExpr+" = ? AND posts.id < ?))",
			cursorScore, cursorScore, cursorID)
	}
	var list []FeedPost
	err := q.Order(scoreExpr + " DESC, posts.id DESC").Limit(limit).Scan(&list).Error
	return list, err
}

// FindVisibleByID 单帖读取。private 社区的帖子对非成员与不存在同样返回
// ErrPostNotFound，不泄露其存在性。
func (r *PostRepository) FindVisibleByID(viewerID, postID uint64) (*FeedPost, error) {
	var p FeedPost
	err := r.feedBase(viewerID).Where("posts.id = ?", postID).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, ErrPostNotFound
	}
	return &p, nil
}

func (r *PostRepository) FindByID(id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.First(&post, "id = ? AND status = ?", id, model.StatusNormal).Error
	return &post, err
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

// UpdateContent 仅作者可改标题和正文
func (r *PostRepository) UpdateContent(postID, authorID uint64, title, content string) (int64, error) {
	tx := r.DB.Model(&model.Post{}).
		Where("id = ? AND author_id = ? AND status = ?", postID, authorID, model.StatusNormal).
		Updates(map[string]any{"title": title, "content": content})
	return tx.RowsAffected, tx.Error
}

// SoftDelete 作者或社区版主可删；正文替换为删除占位串，行保留。幂等。
func (r *PostRepository) SoftDelete(postID, operatorID uint64) (int64, error) {
	tx := r.DB.Exec(`
		UPDATE posts SET status = ?, content = ?
		WHERE id = ? AND status = ?
		  AND (author_id = ? OR EXISTS (
		       SELECT 1 FROM community_members m
		       WHERE m.community_name = posts.community_name AND m.user_id = ? AND m.role >= ?
		  ))`,
		model.StatusDeleted, model.DeletedMarker,
		postID, model.StatusNormal,
		operatorID, operatorID, model.RoleModerator,
	)
	return tx.RowsAffected, tx.Error
}
