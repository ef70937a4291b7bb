package service

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"reddigo/internal/model"
	"reddigo/internal/repository/mysql"

	"github.com/google/uuid"
)

const maxImageSize = 5 << 20 // 5 MiB

var ErrImageTooLarge = errors.New("image too large")

type ImageService struct {
	repo *mysql.ImageRepository
	dir  string
}

// NewImageService dir 是本地落盘目录；对象存储在系统边界之外，这里只留元数据和字节
func NewImageService(dir string) *ImageService {
	return &ImageService{
		repo: &mysql.ImageRepository{DB: mysql.DB},
		dir:  dir,
	}
}

// Upload 以 uuid 为对象键写盘并落元数据
func (s *ImageService) Upload(userID uint64, header *multipart.FileHeader) (*model.Image, error) {
	if header.Size > maxImageSize {
		return nil, ErrImageTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	key := uuid.NewString()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}
	dst, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		return nil, err
	}

	img := &model.Image{
		UserID:      userID,
		ObjectKey:   key,
		ContentType: header.Header.Get("Content-Type"),
		Size:        size,
	}
	if err := s.repo.Create(img); err != nil {
		return nil, err
	}
	return img, nil
}
