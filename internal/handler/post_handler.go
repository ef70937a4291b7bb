package handler

import (
	"errors"
	"net/http"
	"strconv"

	"reddigo/internal/middleware"
	"reddigo/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc     *service.PostService
	voteSvc *service.VoteService
}

type CreatePostReq struct {
	Community *string `json:"community"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
}

type UpdatePostReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func NewPostHandler(voteSvc *service.VoteService) *PostHandler {
	return &PostHandler{
		svc:     service.NewPostService(),
		voteSvc: voteSvc,
	}
}

// parseLimit limit 可选，非数字按参数错误拒绝
func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid limit"})
		return 0, false
	}
	return n, true
}

// parseUintQuery 可选的数字查询参数；格式坏掉返回 ok=false 并已写响应
func parseUintQuery(c *gin.Context, name string) (uint64, bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid " + name})
		return 0, false, false
	}
	return v, true, true
}

func communityParam(c *gin.Context) *string {
	if name := c.Param("name"); name != "" {
		return &name
	}
	return nil
}

// ListNew 最新流，游标是上一页末行的帖子 id
func (h *PostHandler) ListNew(c *gin.Context) {
	viewer := middleware.ViewerID(c)

	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	cursorID, _, ok := parseUintQuery(c, "cursor_post_id")
	if !ok {
		return
	}

	list, next, err := h.svc.ListNew(viewer, communityParam(c), cursorID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": list, "next_cursor": next})
}

// ListPopular 热门流，游标是 (score, post_id) 对，必须成对出现
func (h *PostHandler) ListPopular(c *gin.Context) {
	viewer := middleware.ViewerID(c)

	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	scoreRaw := c.Query("cursor_score")
	idRaw := c.Query("cursor_post_id")
	var cursor *service.PopularCursor
	if scoreRaw != "" || idRaw != "" {
		score, err1 := strconv.ParseInt(scoreRaw, 10, 64)
		id, err2 := strconv.ParseUint(idRaw, 10, 64)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid cursor"})
			return
		}
		cursor = &service.PopularCursor{Score: score, PostID: id}
	}

	list, next, err := h.svc.ListPopular(viewer, communityParam(c), cursor, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": list, "next_cursor": next})
}

// Detail 单帖读取；private 社区非成员与不存在同样 404
func (h *PostHandler) Detail(c *gin.Context) {
	viewer := middleware.ViewerID(c)

	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}

	post, err := h.svc.GetPost(viewer, postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "query failed"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// Score 单帖分数（read-through 缓存）
func (h *PostHandler) Score(c *gin.Context) {
	viewer := middleware.ViewerID(c)

	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}

	// 先做可见性校验，避免用分数接口探测私有帖子
	if _, err := h.svc.GetPost(viewer, postID); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "query failed"})
		return
	}

	score, err := h.voteSvc.Score(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"post_id": postID, "score": score})
}

func (h *PostHandler) Create(c *gin.Context) {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	userID := userIDAny.(uint64)

	var req CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	post, err := h.svc.CreatePost(userID, req.Community, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotMember):
			c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
		case errors.Is(err, service.ErrUnknownCommunity):
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": post.ID})
}

func (h *PostHandler) Update(c *gin.Context) {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	userID := userIDAny.(uint64)

	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}

	var req UpdatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.svc.UpdatePost(userID, postID, req.Title, req.Content); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
		case errors.Is(err, service.ErrNoPermission):
			c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "updated"})
}

func (h *PostHandler) Delete(c *gin.Context) {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	userID := userIDAny.(uint64)

	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}

	if err := h.svc.DeletePost(userID, postID); err != nil {
		if errors.Is(err, service.ErrNoPermission) {
			c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}
