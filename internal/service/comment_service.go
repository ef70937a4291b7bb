package service

import (
	"errors"
	"time"

	"reddigo/internal/model"
	"reddigo/internal/pkg"
	"reddigo/internal/repository/mysql"

	"gorm.io/gorm"
)

var ErrContentRequired = errors.New("content required")

type CommentService struct {
	repo     *mysql.CommentRepository
	postRepo *mysql.PostRepository
}

func NewCommentService() *CommentService {
	return &CommentService{
		repo:     &mysql.CommentRepository{DB: mysql.DB},
		postRepo: &mysql.PostRepository{DB: mysql.DB},
	}
}

type CommentView struct {
	ID          uint64    `json:"id"`
	PostID      uint64    `json:"post_id"`
	AuthorID    uint64    `json:"author_id"`
	ParentID    *uint64   `json:"parent_id"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html"`
	Deleted     bool      `json:"deleted"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommentCursor 评论按楼层（id 升序）分页
type CommentCursor struct {
	CommentID uint64 `json:"comment_id"`
}

// CreateComment 帖子必须对作者可见；父评论必须属于同一帖子
func (s *CommentService) CreateComment(userID, postID uint64, parentID *uint64, content string) (*model.Comment, error) {
	if content == "" {
		return nil, ErrContentRequired
	}

	if _, err := s.postRepo.FindVisibleByID(userID, postID); err != nil {
		if errors.Is(err, mysql.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if parentID != nil {
		parent, err := s.repo.FindByID(*parentID)
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && parent.PostID != postID) {
			return nil, ErrCommentNotFound
		}
		if err != nil {
			return nil, err
		}
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: userID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.repo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByPost 帖子可见性先行校验，之后按 id 升序游标分页。
// 已删除评论以占位行返回，线程结构不断。
func (s *CommentService) ListByPost(viewerID, postID, cursorID uint64, limit int) ([]CommentView, *CommentCursor, error) {
	if _, err := s.postRepo.FindVisibleByID(viewerID, postID); err != nil {
		if errors.Is(err, mysql.ErrPostNotFound) {
			return nil, nil, ErrPostNotFound
		}
		return nil, nil, err
	}

	limit = clampLimit(limit)
	rows, err := s.repo.ListByPost(postID, cursorID, limit+1)
	if err != nil {
		return nil, nil, err
	}

	var next *CommentCursor
	if len(rows) > limit {
		rows = rows[:limit]
		next = &CommentCursor{CommentID: rows[len(rows)-1].ID}
	}

	views := make([]CommentView, 0, len(rows))
	for i := range rows {
		c := &rows[i]
		views = append(views, CommentView{
			ID:          c.ID,
			PostID:      c.PostID,
			AuthorID:    c.AuthorID,
			ParentID:    c.ParentID,
			Content:     c.Content,
			ContentHTML: pkg.RenderMarkdown(c.Content),
			Deleted:     c.Status == model.StatusDeleted,
			CreatedAt:   c.CreatedAt,
		})
	}
	return views, next, nil
}

// DeleteComment 幂等软删除，作者或所在社区版主可删
func (s *CommentService) DeleteComment(userID, commentID uint64) error {
	affected, err := s.repo.SoftDelete(commentID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		comment, err := s.repo.FindByID(commentID)
		if err != nil || comment.Status == model.StatusDeleted {
			return nil
		}
		return ErrNoPermission
	}
	return nil
}
