package handler

import (
	"errors"
	"net/http"
	"strconv"

	"reddigo/internal/middleware"
	"reddigo/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *service.CommentService
}

type CreateCommentReq struct {
	PostID   uint64  `json:"post_id"`
	ParentID *uint64 `json:"parent_id"`
	Content  string  `json:"content"`
}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{svc: service.NewCommentService()}
}

func (h *CommentHandler) Create(c *gin.Context) {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	userID := userIDAny.(uint64)

	var req CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	comment, err := h.svc.CreateComment(userID, req.PostID, req.ParentID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound), errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": comment.ID})
}

// ListByPost 楼层顺序，id 游标分页
func (h *CommentHandler) ListByPost(c *gin.Context) {
	viewer := middleware.ViewerID(c)

	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}

	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	cursorID, _, ok := parseUintQuery(c, "cursor_comment_id")
	if !ok {
		return
	}

	list, next, err := h.svc.ListByPost(viewer, postID, cursorID, limit)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": list, "next_cursor": next})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	userID := userIDAny.(uint64)

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid comment id"})
		return
	}

	if err := h.svc.DeleteComment(userID, commentID); err != nil {
		if errors.Is(err, service.ErrNoPermission) {
			c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}
