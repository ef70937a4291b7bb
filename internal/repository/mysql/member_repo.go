package mysql

import (
	"errors"

	"reddigo/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommunityMemberRepository struct {
	DB *gorm.DB
}

// Join 幂等插入：(community_name, user_id) 已存在则不报错
func (r *CommunityMemberRepository) Join(member *model.CommunityMember) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "community_name"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(member).Error
}

func (r *CommunityMemberRepository) Leave(communityName string, userID uint64) error {
	return r.DB.Where("community_name = ? AND user_id = ?", communityName, userID).
		Delete(&model.CommunityMember{}).Error
}

func (r *CommunityMemberRepository) IsMember(communityName string, userID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.CommunityMember{}).
		Where("community_name = ? AND user_id = ?", communityName, userID).
		Count(&count).Error
	return count > 0, err
}

// Role 返回成员角色；非成员返回 (0, false, nil)
func (r *CommunityMemberRepository) Role(communityName string, userID uint64) (int, bool, error) {
	var member model.CommunityMember
	err := r.DB.Where("community_name = ? AND user_id = ?", communityName, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return member.Role, true, nil
}
