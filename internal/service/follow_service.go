package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"yatube/internal/model"
	"yatube/internal/repository/mysql"

	"gorm.io/gorm"
)

type FollowService struct {
	repo  *mysql.FollowRepository
	users *mysql.UserRepository
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		repo:  &mysql.FollowRepository{DB: db},
		users: &mysql.UserRepository{DB: db},
	}
}

func (s *FollowService) target(ctx context.Context, username string) (*model.User, error) {
	author, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return author, nil
}

// Follow 关注 username; 关注自己静默忽略, 重复关注不产生新记录
func (s *FollowService) Follow(ctx context.Context, viewerID uint64, username string) (bool, error) {
	if viewerID == 0 {
		return false, ErrUnauthorized
	}
	author, err := s.target(ctx, username)
	if err != nil {
		return false, err
	}
	if author.ID == viewerID {
		return false, nil
	}
	changed, err := s.repo.Follow(ctx, viewerID, author.ID)
	if err != nil {
		return false, fmt.Errorf("follow: %w", err)
	}
	if changed {
		slog.InfoContext(ctx, "user followed", "user_id", viewerID, "author_id", author.ID)
	}
	return changed, nil
}

// Unfollow 取消关注, 本来没关注时静默忽略
func (s *FollowService) Unfollow(ctx context.Context, viewerID uint64, username string) (bool, error) {
	if viewerID == 0 {
		return false, ErrUnauthorized
	}
	author, err := s.target(ctx, username)
	if err != nil {
		return false, err
	}
	changed, err := s.repo.Unfollow(ctx, viewerID, author.ID)
	if err != nil {
		return false, fmt.Errorf("unfollow: %w", err)
	}
	if changed {
		slog.InfoContext(ctx, "user unfollowed", "user_id", viewerID, "author_id", author.ID)
	}
	return changed, nil
}

func (s *FollowService) IsFollowing(ctx context.Context, viewerID, authorID uint64) (bool, error) {
	if viewerID == 0 || viewerID == authorID {
		return false, nil
	}
	return s.repo.IsFollowing(ctx, viewerID, authorID)
}
