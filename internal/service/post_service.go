package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"yatube/internal/model"
	"yatube/internal/pkg/storage"
	"yatube/internal/repository/mysql"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

const DefaultMaxImageSize = 5 << 20

// ImageUpload 表单上传的图片
type ImageUpload struct {
	Name   string
	Size   int64
	Reader io.Reader
}

// PostInput 新建和编辑帖子的表单数据, GroupID 为 nil 表示不选分组
type PostInput struct {
	Text    string
	GroupID *uint64
	Upload  *ImageUpload
}

type PostDetail struct {
	Post            *model.Post
	Comments        []model.Comment
	AuthorPostCount int64
}

type PostService struct {
	repo     *mysql.PostRepository
	groups   *mysql.GroupRepository
	comments *mysql.CommentRepository
	store    storage.Store
	maxSize  int64
}

func NewPostService(db *gorm.DB, store storage.Store, maxImageSize int64) *PostService {
	if maxImageSize <= 0 {
		maxImageSize = DefaultMaxImageSize
	}
	return &PostService{
		repo:     &mysql.PostRepository{DB: db},
		groups:   &mysql.GroupRepository{DB: db},
		comments: &mysql.CommentRepository{DB: db},
		store:    store,
		maxSize:  maxImageSize,
	}
}

func (s *PostService) findPost(ctx context.Context, id uint64) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}

func (s *PostService) checkGroup(ctx context.Context, groupID *uint64) error {
	if groupID == nil {
		return nil
	}
	if _, err := s.groups.FindByID(ctx, *groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidGroup
		}
		return fmt.Errorf("find group: %w", err)
	}
	return nil
}

// saveImage 校验内容确实是可解码的图片后写入存储
func (s *PostService) saveImage(ctx context.Context, up *ImageUpload) (string, error) {
	if up.Size > s.maxSize {
		return "", ErrImageTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(up.Reader, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return "", ErrImageTooLarge
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", ErrInvalidImage
	}
	if _, err = imaging.Decode(bytes.NewReader(data)); err != nil {
		return "", ErrInvalidImage
	}

	name := up.Name
	if path.Ext(name) == "" {
		name += mt.Extension()
	}
	key, err := s.store.Save(ctx, name, bytes.NewReader(data), int64(len(data)), mt.String())
	if err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return key, nil
}

func (s *PostService) validate(ctx context.Context, in *PostInput) error {
	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		return ErrEmptyText
	}
	return s.checkGroup(ctx, in.GroupID)
}

// CreatePost 作者总是当前用户
func (s *PostService) CreatePost(ctx context.Context, authorID uint64, in PostInput) (*model.Post, error) {
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	post := &model.Post{}
	if err := copier.Copy(post, &in); err != nil {
		return nil, fmt.Errorf("copy post input: %w", err)
	}
	post.AuthorID = authorID

	if in.Upload != nil {
		key, err := s.saveImage(ctx, in.Upload)
		if err != nil {
			return nil, err
		}
		post.Image = key
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	slog.InfoContext(ctx, "post created", "post_id", post.ID, "author_id", authorID)
	return post, nil
}

// PostForEdit 只有作者可以取到编辑表单的数据
func (s *PostService) PostForEdit(ctx context.Context, postID, editorID uint64) (*model.Post, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != editorID {
		return post, ErrNotAuthor
	}
	return post, nil
}

// EditPost 非作者返回 ErrNotAuthor 且不修改; 未上传新图片时保留原图
func (s *PostService) EditPost(ctx context.Context, postID, editorID uint64, in PostInput) (*model.Post, error) {
	post, err := s.PostForEdit(ctx, postID, editorID)
	if err != nil {
		return post, err
	}
	if err = s.validate(ctx, &in); err != nil {
		return post, err
	}

	post.Text = in.Text
	post.GroupID = in.GroupID
	if in.Upload != nil {
		key, err := s.saveImage(ctx, in.Upload)
		if err != nil {
			return post, err
		}
		post.Image = key
	}

	if err = s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// DeletePost 作者硬删除, 评论随之删除
func (s *PostService) DeletePost(ctx context.Context, postID, userID uint64) error {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return ErrNotAuthor
	}
	if _, err = s.repo.DeleteByAuthor(ctx, postID, userID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	slog.InfoContext(ctx, "post deleted", "post_id", postID, "author_id", userID)
	return nil
}

// GetPost 帖子详情, 评论新的在前
func (s *PostService) GetPost(ctx context.Context, id uint64) (*PostDetail, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	count, err := s.repo.Count(ctx, mysql.PostFilter{AuthorID: post.AuthorID})
	if err != nil {
		return nil, fmt.Errorf("count author posts: %w", err)
	}
	return &PostDetail{Post: post, Comments: comments, AuthorPostCount: count}, nil
}

// AddComment 帖子和作者都由服务端确定
func (s *PostService) AddComment(ctx context.Context, postID, authorID uint64, text string) (*model.Comment, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	c := &model.Comment{
		Authored: model.Authored{AuthorID: authorID},
		PostID:   postID,
		Text:     text,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

// ImageURL 相对路径转成访问地址
func (s *PostService) ImageURL(key string) string {
	return s.store.URL(key)
}
