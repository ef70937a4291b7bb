package handler

import (
	"errors"
	"net/http"
	"strconv"

	"reddigo/internal/middleware"
	"reddigo/internal/service"

	"github.com/gin-gonic/gin"
)

type SaveHandler struct {
	svc *service.SaveService
}

func NewSaveHandler() *SaveHandler {
	return &SaveHandler{svc: service.NewSaveService()}
}

func (h *SaveHandler) SavePost(c *gin.Context) {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	userID := userIDAny.(uint64)

	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}

	if err := h.svc.SavePost(userID, postID); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "saved"})
}

func (h *SaveHandler) UnsavePost(c *gin.Context) {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	userID := userIDAny.(uint64)

	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}

	if err := h.svc.UnsavePost(userID, postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "removed"})
}

func (h *SaveHandler) SaveComment(c *gin.Context) {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	userID := userIDAny.(uint64)

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid comment id"})
		return
	}

	if err := h.svc.SaveComment(userID, commentID); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "saved"})
}

func (h *SaveHandler) UnsaveComment(c *gin.Context) {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	userID := userIDAny.(uint64)

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid comment id"})
		return
	}

	if err := h.svc.UnsaveComment(userID, commentID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "removed"})
}

// ListSavedPosts 收藏夹，save id 游标分页
func (h *SaveHandler) ListSavedPosts(c *gin.Context) {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	userID := userIDAny.(uint64)

	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	cursorID, _, ok := parseUintQuery(c, "cursor_save_id")
	if !ok {
		return
	}

	list, next, err := h.svc.ListSavedPosts(userID, cursorID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": list, "next_cursor": next})
}
