package service

import (
	"errors"

	"reddigo/internal/model"
	"reddigo/internal/repository/mysql"

	"gorm.io/gorm"
)

var (
	ErrNameRequired      = errors.New("community name required")
	ErrInvalidVisibility = errors.New("invalid visibility")
	ErrNotModerator      = errors.New("moderator role required")
)

type CommunityService struct {
	repo       *mysql.CommunityRepository
	memberRepo *mysql.CommunityMemberRepository
}

func NewCommunityService() *CommunityService {
	return &CommunityService{
		repo:       &mysql.CommunityRepository{DB: mysql.DB},
		memberRepo: &mysql.CommunityMemberRepository{DB: mysql.DB},
	}
}

func (s *CommunityService) CreateCommunity(userID uint64, name, desc, visibility string, mature bool) (*model.Community, error) {
	if name == "" || len(name) > 64 {
		return nil, ErrNameRequired
	}
	if visibility == "" {
		visibility = model.VisibilityPublic
	}
	if !model.ValidVisibility(visibility) {
		return nil, ErrInvalidVisibility
	}

	community := &model.Community{
		Name:        name,
		Description: desc,
		Visibility:  visibility,
		Mature:      mature,
		CreatorID:   userID,
	}
	if _, err := s.repo.Create(community); err != nil {
		return nil, err
	}
	return community, nil
}

func (s *CommunityService) GetCommunity(name string) (*model.Community, error) {
	c, err := s.repo.FindByName(name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnknownCommunity
	}
	return c, err
}

func (s *CommunityService) JoinCommunity(userID uint64, name string) error {
	if _, err := s.GetCommunity(name); err != nil {
		return err
	}
	return s.memberRepo.Join(&model.CommunityMember{
		CommunityName: name,
		UserID:        userID,
		Role:          model.RoleMember,
	})
}

func (s *CommunityService) LeaveCommunity(userID uint64, name string) error {
	return s.memberRepo.Leave(name, userID)
}

func (s *CommunityService) ListCommunities(page, size int) ([]model.Community, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	offset := (page - 1) * size
	return s.repo.List(offset, size)
}

// CommunitySettings nil 字段表示不改动
type CommunitySettings struct {
	Description *string `json:"description"`
	Visibility  *string `json:"visibility"`
	Mature      *bool   `json:"mature"`
	IconKey     *string `json:"icon_key"`
	BannerKey   *string `json:"banner_key"`
}

// UpdateSettings 仅版主可改社区设置
func (s *CommunityService) UpdateSettings(userID uint64, name string, settings CommunitySettings) error {
	if _, err := s.GetCommunity(name); err != nil {
		return err
	}

	role, ok, err := s.memberRepo.Role(name, userID)
	if err != nil {
		return err
	}
	if !ok || role < model.RoleModerator {
		return ErrNotModerator
	}

	fields := map[string]any{}
	if settings.Description != nil {
		fields["description"] = *settings.Description
	}
	if settings.Visibility != nil {
		if !model.ValidVisibility(*settings.Visibility) {
			return ErrInvalidVisibility
		}
		fields["visibility"] = *settings.Visibility
	}
	if settings.Mature != nil {
		fields["mature"] = *settings.Mature
	}
	if settings.IconKey != nil {
		fields["icon_key"] = *settings.IconKey
	}
	if settings.BannerKey != nil {
		fields["banner_key"] = *settings.BannerKey
	}
	if len(fields) == 0 {
		return nil
	}
	return s.repo.UpdateSettings(name, fields)
}
