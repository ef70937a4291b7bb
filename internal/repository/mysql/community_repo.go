package mysql

import (
	"reddigo/internal/model"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

// Create 建社区并让创建者成为版主，同一事务完成
func (r *CommunityRepository) Create(c *model.Community) (*model.Community, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		mRepo := &CommunityMemberRepository{DB: tx}

		if err := tx.Create(c).Error; err != nil {
			return err
		}

		return mRepo.Join(&model.CommunityMember{
			CommunityName: c.Name,
			UserID:        c.CreatorID,
			Role:          model.RoleModerator,
		})
	})
	return c, err
}

func (r *CommunityRepository) FindByName(name string) (*model.Community, error) {
	var community model.Community
	err := r.DB.First(&community, "name = ?", name).Error
	return &community, err
}

func (r *CommunityRepository) List(offset, limit int) ([]model.Community, error) {
	var list []model.Community
	err := r.DB.Order("name asc").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

// UpdateSettings 只更新传进来的字段，调用方（service）已做版主校验
func (r *CommunityRepository) UpdateSettings(name string, fields map[string]any) error {
	return r.DB.Model(&model.Community{}).
		Where("name = ?", name).
		Updates(fields).Error
}
