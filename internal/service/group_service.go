package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yatube/internal/model"
	"yatube/internal/repository/mysql"

	"gorm.io/gorm"
)

type GroupService struct {
	repo *mysql.GroupRepository
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{repo: &mysql.GroupRepository{DB: db}}
}

// CreateGroup 管理员创建分组
func (s *GroupService) CreateGroup(ctx context.Context, title, slug, desc string) (*model.Group, error) {
	title, slug = strings.TrimSpace(title), strings.TrimSpace(slug)
	if title == "" || slug == "" {
		return nil, errors.New("group title and slug required")
	}
	if _, err := s.repo.FindBySlug(ctx, slug); err == nil {
		return nil, ErrGroupSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find group: %w", err)
	}

	group := &model.Group{
		Title:       title,
		Slug:        slug,
		Description: desc,
	}
	if err := s.repo.Create(ctx, group); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrGroupSlugTaken
		}
		return nil, fmt.Errorf("create group: %w", err)
	}
	return group, nil
}

func (s *GroupService) ListGroups(ctx context.Context) ([]model.Group, error) {
	return s.repo.List(ctx)
}

// DeleteGroup 帖子保留, 分组置空
func (s *GroupService) DeleteGroup(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}
