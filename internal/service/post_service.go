package service

import (
	"errors"
	"time"

	"reddigo/internal/model"
	"reddigo/internal/pkg"
	"reddigo/internal/repository/mysql"

	"gorm.io/gorm"
)

const (
	DefaultFeedLimit = 10
	MaxFeedLimit     = 50
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrTitleRequired    = errors.New("title required")
	ErrNotMember        = errors.New("not a member")
	ErrNoPermission     = errors.New("no permission")
	ErrUnknownCommunity = errors.New("community not found")
)

type PostService struct {
	repo          *mysql.PostRepository
	communityRepo *mysql.CommunityRepository
	memberRepo    *mysql.CommunityMemberRepository
}

func NewPostService() *PostService {
	return &PostService{
		repo:          &mysql.PostRepository{DB: mysql.DB},
		communityRepo: &mysql.CommunityRepository{DB: mysql.DB},
		memberRepo:    &mysql.CommunityMemberRepository{DB: mysql.DB},
	}
}

// PostView 对外返回的帖子视图，正文附带净化后的 HTML
type PostView struct {
	ID          uint64    `json:"id"`
	AuthorID    uint64    `json:"author_id"`
	Community   *string   `json:"community"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html"`
	Score       int64     `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCursor recency 排序的游标：最后一行的帖子 id
type NewCursor struct {
	PostID uint64 `json:"post_id"`
}

// PopularCursor popular 排序的游标：最后一行的 (score, id) 对
type PopularCursor struct {
	Score  int64  `json:"score"`
	PostID uint64 `json:"post_id"`
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		return MaxFeedLimit
	}
	return limit
}

func toView(p *mysql.FeedPost) PostView {
	return PostView{
		ID:          p.ID,
		AuthorID:    p.AuthorID,
		Community:   p.CommunityName,
		Title:       p.Title,
		Content:     p.Content,
		ContentHTML: pkg.RenderMarkdown(p.Content),
		Score:       p.Score,
		CreatedAt:   p.CreatedAt,
	}
}

// ListNew 最新帖子页。多取一行探测是否还有下一页：
// 返回行数 <= limit 说明到底了（nextCursor 为 nil），否则裁掉多出的
// 一行并用裁剪后末行的 id 作下一页游标。
func (s *PostService) ListNew(viewerID uint64, community *string, cursorID uint64, limit int) ([]PostView, *NewCursor, error) {
	limit = clampLimit(limit)
	rows, err := s.repo.ListNew(viewerID, community, cursorID, limit+1)
	if err != nil {
		return nil, nil, err
	}

	var next *NewCursor
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = &NewCursor{PostID: last.ID}
	}

	views := make([]PostView, 0, len(rows))
	for i := range rows {
		views = append(views, toView(&rows[i]))
	}
	return views, next, nil
}

// ListPopular 热门帖子页，(score, id) 复合游标
func (s *PostService) ListPopular(viewerID uint64, community *string, cursor *PopularCursor, limit int) ([]PostView, *PopularCursor, error) {
	limit = clampLimit(limit)
	var cursorScore int64
	var cursorID uint64
	if cursor != nil {
		cursorScore, cursorID = cursor.Score, cursor.PostID
	}
	rows, err := s.repo.ListPopular(viewerID, community, cursorScore, cursorID, cursor != nil, limit+1)
	if err != nil {
		return nil, nil, err
	}

	var next *PopularCursor
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = &PopularCursor{Score: last.Score, PostID: last.ID}
	}

	views := make([]PostView, 0, len(rows))
	for i := range rows {
		views = append(views, toView(&rows[i]))
	}
	return views, next, nil
}

// GetPost 单帖读取，私有社区非成员与不存在同样返回 ErrPostNotFound
func (s *PostService) GetPost(viewerID, postID uint64) (*PostView, error) {
	p, err := s.repo.FindVisibleByID(viewerID, postID)
	if err != nil {
		if errors.Is(err, mysql.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	v := toView(p)
	return &v, nil
}

// CreatePost public 社区任何登录用户可发帖，restricted/private 需要成员身份
func (s *PostService) CreatePost(userID uint64, community *string, title, content string) (*model.Post, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}

	if community != nil {
		c, err := s.communityRepo.FindByName(*community)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownCommunity
			}
			return nil, err
		}
		if c.Visibility != model.VisibilityPublic {
			ok, err := s.memberRepo.IsMember(c.Name, userID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, ErrNotMember
			}
		}
	}

	post := &model.Post{
		AuthorID:      userID,
		CommunityName: community,
		Title:         title,
		Content:       content,
	}
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost 仅作者可编辑
func (s *PostService) UpdatePost(userID, postID uint64, title, content string) error {
	if title == "" {
		return ErrTitleRequired
	}
	affected, err := s.repo.UpdateContent(postID, userID, title, content)
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.repo.FindByID(postID); err != nil {
			return ErrPostNotFound
		}
		return ErrNoPermission
	}
	return nil
}

// DeletePost 幂等软删除：已删除视为成功，仅无权限时报错
func (s *PostService) DeletePost(userID, postID uint64) error {
	affected, err := s.repo.SoftDelete(postID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		// 读不到说明已删除或不存在，幂等成功；还能读到则是无权限
		if _, err := s.repo.FindByID(postID); err != nil {
			return nil
		}
		return ErrNoPermission
	}
	return nil
}
