package service

import (
	"context"
	"errors"
	"fmt"

	"yatube/internal/model"
	"yatube/internal/pkg/paginator"
	"yatube/internal/repository/mysql"

	"gorm.io/gorm"
)

type PostPage = paginator.Page[model.Post]

type GroupFeed struct {
	Group *model.Group
	Page  PostPage
}

type ProfileFeed struct {
	Author         *model.User
	Page           PostPage
	PostCount      int64
	FollowerCount  int64
	FollowingCount int64
	// Following 访问者已登录且已关注该作者
	Following bool
	IsSelf    bool
}

// FeedService 首页、分组、个人页和关注流的查询
type FeedService struct {
	posts   *mysql.PostRepository
	groups  *mysql.GroupRepository
	users   *mysql.UserRepository
	follows *mysql.FollowRepository
	perPage int
}

func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{
		posts:   &mysql.PostRepository{DB: db},
		groups:  &mysql.GroupRepository{DB: db},
		users:   &mysql.UserRepository{DB: db},
		follows: &mysql.FollowRepository{DB: db},
		perPage: paginator.DefaultPerPage,
	}
}

func (s *FeedService) page(ctx context.Context, f mysql.PostFilter, rawPage string) (PostPage, error) {
	count, err := s.posts.Count(ctx, f)
	if err != nil {
		return PostPage{}, fmt.Errorf("count posts: %w", err)
	}
	w := paginator.New(count, rawPage, s.perPage)
	list, err := s.posts.List(ctx, f, w.Offset, w.Limit)
	if err != nil {
		return PostPage{}, fmt.Errorf("list posts: %w", err)
	}
	return paginator.NewPage(w, list), nil
}

// Home 全部帖子
func (s *FeedService) Home(ctx context.Context, rawPage string) (PostPage, error) {
	return s.page(ctx, mysql.PostFilter{}, rawPage)
}

// Group 分组下的帖子, slug 不存在返回 ErrGroupNotFound
func (s *FeedService) Group(ctx context.Context, slug, rawPage string) (*GroupFeed, error) {
	group, err := s.groups.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	page, err := s.page(ctx, mysql.PostFilter{GroupID: group.ID}, rawPage)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Group: group, Page: page}, nil
}

// Profile 作者的帖子; viewerID 为 0 表示未登录
func (s *FeedService) Profile(ctx context.Context, username string, viewerID uint64, rawPage string) (*ProfileFeed, error) {
	author, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	page, err := s.page(ctx, mysql.PostFilter{AuthorID: author.ID}, rawPage)
	if err != nil {
		return nil, err
	}

	feed := &ProfileFeed{
		Author:    author,
		Page:      page,
		PostCount: page.Count,
		IsSelf:    viewerID != 0 && viewerID == author.ID,
	}
	if feed.FollowerCount, err = s.follows.CountFollowers(ctx, author.ID); err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	if feed.FollowingCount, err = s.follows.CountFollowings(ctx, author.ID); err != nil {
		return nil, fmt.Errorf("count followings: %w", err)
	}
	if viewerID != 0 && !feed.IsSelf {
		if feed.Following, err = s.follows.IsFollowing(ctx, viewerID, author.ID); err != nil {
			return nil, fmt.Errorf("check following: %w", err)
		}
	}
	return feed, nil
}

// Following 访问者关注的作者们的帖子
func (s *FeedService) Following(ctx context.Context, viewerID uint64, rawPage string) (PostPage, error) {
	if viewerID == 0 {
		return PostPage{}, ErrUnauthorized
	}
	return s.page(ctx, mysql.PostFilter{FollowerID: viewerID}, rawPage)
}
