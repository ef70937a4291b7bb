package handler

import (
	"errors"
	"net/http"
	"strconv"

	"reddigo/internal/middleware"
	"reddigo/internal/service"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	svc *service.CommunityService
}

type CommunityCreateReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Visibility  string `json:"visibility"`
	Mature      bool   `json:"mature"`
}

func NewCommunityHandler() *CommunityHandler {
	return &CommunityHandler{svc: service.NewCommunityService()}
}

func (h *CommunityHandler) Create(c *gin.Context) {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	userID := userIDAny.(uint64)

	var req CommunityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	community, err := h.svc.CreateCommunity(userID, req.Name, req.Description, req.Visibility, req.Mature)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":        community.Name,
		"description": community.Description,
		"visibility":  community.Visibility,
	})
}

func (h *CommunityHandler) Get(c *gin.Context) {
	community, err := h.svc.GetCommunity(c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownCommunity) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "community not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":        community.Name,
		"description": community.Description,
		"visibility":  community.Visibility,
		"mature":      community.Mature,
		"icon_key":    community.IconKey,
		"banner_key":  community.BannerKey,
		"created_at":  community.CreatedAt,
	})
}

func (h *CommunityHandler) Join(c *gin.Context) {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	userID := userIDAny.(uint64)

	if err := h.svc.JoinCommunity(userID, c.Param("name")); err != nil {
		if errors.Is(err, service.ErrUnknownCommunity) {
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *CommunityHandler) Leave(c *gin.Context) {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	userID := userIDAny.(uint64)

	if err := h.svc.LeaveCommunity(userID, c.Param("name")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *CommunityHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.ListCommunities(page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// UpdateSettings 版主专用
func (h *CommunityHandler) UpdateSettings(c *gin.Context) {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	userID := userIDAny.(uint64)

	var req service.CommunitySettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.svc.UpdateSettings(userID, c.Param("name"), req); err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownCommunity):
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
		case errors.Is(err, service.ErrNotModerator):
			c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "updated"})
}
