package service

import (
	"errors"
	"time"

	"reddigo/internal/pkg"
	"reddigo/internal/repository/mysql"

	"gorm.io/gorm"
)

type SaveService struct {
	repo        *mysql.SaveRepository
	postRepo    *mysql.PostRepository
	commentRepo *mysql.CommentRepository
}

func NewSaveService() *SaveService {
	return &SaveService{
		repo:        &mysql.SaveRepository{DB: mysql.DB},
		postRepo:    &mysql.PostRepository{DB: mysql.DB},
		commentRepo: &mysql.CommentRepository{DB: mysql.DB},
	}
}

// SavedPostView 收藏列表行，save_id 作游标
type SavedPostView struct {
	SaveID  uint64    `json:"save_id"`
	Post    PostView  `json:"post"`
	SavedAt time.Time `json:"-"`
}

type SaveCursor struct {
	SaveID uint64 `json:"save_id"`
}

// SavePost 幂等；只允许收藏自己可见的帖子
func (s *SaveService) SavePost(userID, postID uint64) error {
	if _, err := s.postRepo.FindVisibleByID(userID, postID); err != nil {
		if errors.Is(err, mysql.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return s.repo.SavePost(userID, postID)
}

func (s *SaveService) UnsavePost(userID, postID uint64) error {
	return s.repo.UnsavePost(userID, postID)
}

func (s *SaveService) SaveComment(userID, commentID uint64) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCommentNotFound
	}
	if err != nil {
		return err
	}
	if _, err := s.postRepo.FindVisibleByID(userID, comment.PostID); err != nil {
		if errors.Is(err, mysql.ErrPostNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return s.repo.SaveComment(userID, commentID)
}

func (s *SaveService) UnsaveComment(userID, commentID uint64) error {
	return s.repo.UnsaveComment(userID, commentID)
}

// ListSavedPosts 按收藏先后倒序，save id 游标分页
func (s *SaveService) ListSavedPosts(userID, cursorSaveID uint64, limit int) ([]SavedPostView, *SaveCursor, error) {
	limit = clampLimit(limit)
	rows, err := s.repo.ListSavedPosts(userID, cursorSaveID, limit+1)
	if err != nil {
		return nil, nil, err
	}

	var next *SaveCursor
	if len(rows) > limit {
		rows = rows[:limit]
		next = &SaveCursor{SaveID: rows[len(rows)-1].SaveID}
	}

	views := make([]SavedPostView, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		views = append(views, SavedPostView{
			SaveID: r.SaveID,
			Post: PostView{
				ID:          r.ID,
				AuthorID:    r.AuthorID,
				Community:   r.CommunityName,
				Title:       r.Title,
				Content:     r.Content,
				ContentHTML: pkg.RenderMarkdown(r.Content),
				Score:       r.Score,
				CreatedAt:   r.CreatedAt,
			},
		})
	}
	return views, next, nil
}
