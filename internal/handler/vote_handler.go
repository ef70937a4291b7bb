package handler

import (
	"errors"
	"net/http"
	"strconv"

	"reddigo/internal/middleware"
	"reddigo/internal/repository/mysql"
	"reddigo/internal/service"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	svc *service.VoteService
}

type CastVoteReq struct {
	PostID    uint64  `json:"post_id"`
	CommentID *uint64 `json:"comment_id"` // 空=投给帖子本身
	Value     int     `json:"value"`      // 1 / -1
}

type UpdateVoteReq struct {
	Value int `json:"value"` // 1 / -1 / 0(撤回)
}

func NewVoteHandler(svc *service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

func (h *VoteHandler) Cast(c *gin.Context) {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	userID := userIDAny.(uint64)

	var req CastVoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	vote, err := h.svc.Cast(c.Request.Context(), userID, req.PostID, req.CommentID, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, mysql.ErrDuplicateVote):
			c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
		case errors.Is(err, service.ErrPostNotFound), errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": vote.ID, "value": vote.Value})
}

func (h *VoteHandler) Update(c *gin.Context) {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	userID := userIDAny.(uint64)

	voteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid vote id"})
		return
	}

	var req UpdateVoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	vote, err := h.svc.Update(c.Request.Context(), userID, voteID, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, mysql.ErrVoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
		case errors.Is(err, mysql.ErrNotVoteOwner):
			c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": vote.ID, "value": vote.Value})
}
