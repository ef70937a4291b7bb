package handler

import (
	"errors"
	"net/http"

	"reddigo/internal/middleware"
	"reddigo/internal/service"

	"github.com/gin-gonic/gin"
)

type ImageHandler struct {
	svc *service.ImageService
}

func NewImageHandler(svc *service.ImageService) *ImageHandler {
	return &ImageHandler{svc: svc}
}

// Upload multipart 表单，字段名 image
func (h *ImageHandler) Upload(c *gin.Context) {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	userID := userIDAny.(uint64)

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "image file required"})
		return
	}

	img, err := h.svc.Upload(userID, header)
	if err != nil {
		if errors.Is(err, service.ErrImageTooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"object_key": img.ObjectKey, "size": img.Size})
}
