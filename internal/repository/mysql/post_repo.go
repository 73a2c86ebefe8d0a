package mysql

import (
	"context"

	"yatube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository struct {
	DB *gorm.DB
}

// PostFilter 列表查询条件, 零值表示不过滤
type PostFilter struct {
	GroupID    uint64
	AuthorID   uint64
	FollowerID uint64
}

func (f PostFilter) scope(db *gorm.DB) *gorm.DB {
	if f.GroupID != 0 {
		db = db.Where("posts.group_id = ?", f.GroupID)
	}
	if f.AuthorID != 0 {
		db = db.Where("posts.author_id = ?", f.AuthorID)
	}
	if f.FollowerID != 0 {
		following := db.Session(&gorm.Session{NewDB: true}).
			Model(&model.Follow{}).
			Select("author_id").
			Where("user_id = ?", f.FollowerID)
		db = db.Where("posts.author_id IN (?)", following)
	}
	return db
}

// Create 写入帖子并记录 post_created 事件
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		return insertOutbox(tx, model.EventPostCreated, post.ID, map[string]any{
			"post_id":   post.ID,
			"author_id": post.AuthorID,
			"group_id":  post.GroupID,
		})
	})
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error
	return &post, err
}

func (r *PostRepository) Count(ctx context.Context, f PostFilter) (int64, error) {
	var n int64
	err := f.scope(r.DB.WithContext(ctx).Model(&model.Post{})).Count(&n).Error
	return n, err
}

// List 新帖在前, 同一时间按 id 倒序
func (r *PostRepository) List(ctx context.Context, f PostFilter, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := f.scope(r.DB.WithContext(ctx).Model(&model.Post{})).
		Preload("Author").
		Preload("Group").
		Order("posts.created_at DESC, posts.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// Update 只更新正文、分组和图片
func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error
}

// DeleteByAuthor 仅作者可删除, 返回受影响行数
func (r *PostRepository) DeleteByAuthor(ctx context.Context, postID, authorID uint64) (int64, error) {
	tx := r.DB.WithContext(ctx).
		Where("id = ? AND author_id = ?", postID, authorID).
		Delete(&model.Post{})
	return tx.RowsAffected, tx.Error
}
