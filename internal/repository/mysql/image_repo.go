package mysql

import (
	"reddigo/internal/model"

	"gorm.io/gorm"
)

type ImageRepository struct {
	DB *gorm.DB
}

func (r *ImageRepository) Create(img *model.Image) error {
	return r.DB.Create(img).Error
}

func (r *ImageRepository) FindByKey(key string) (*model.Image, error) {
	var img model.Image
	err := r.DB.Where("object_key = ?", key).First(&img).Error
	return &img, err
}
