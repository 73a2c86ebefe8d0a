package service_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"yatube/internal/model"
	"yatube/internal/pkg/storage"
	"yatube/internal/service"
	"yatube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPostService(t *testing.T) (*service.PostService, *gorm.DB, string) {
	t.Helper()
	db := testutil.NewDB(t)
	root := t.TempDir()
	return service.NewPostService(db, storage.NewLocalStore(root, "/media/"), 0), db, root
}

func countPosts(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.Post{}).Count(&n).Error)
	return n
}

func TestCreatePost(t *testing.T) {
	svc, db, root := newPostService(t)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "auth")
	g := testutil.CreateGroup(t, db, "test-slug")

	post, err := svc.CreatePost(ctx, author.ID, service.PostInput{
		Text:    "  Тестовый текст  ",
		GroupID: &g.ID,
		Upload: &service.ImageUpload{
			Name:   "small.gif",
			Size:   int64(len(testutil.SmallGIF)),
			Reader: bytes.NewReader(testutil.SmallGIF),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.Equal(t, "Тестовый текст", post.Text)
	require.NotNil(t, post.GroupID)
	assert.Equal(t, g.ID, *post.GroupID)
	assert.NotEmpty(t, post.Image)

	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(post.Image)))
	assert.NoError(t, err)
	assert.Equal(t, "/media/"+post.Image, svc.ImageURL(post.Image))
	assert.EqualValues(t, 1, countPosts(t, db))
}

func TestCreatePostValidation(t *testing.T) {
	svc, db, _ := newPostService(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "auth")
	missing := uint64(999)

	tests := []struct {
		name string
		in   service.PostInput
		err  error
	}{
		{"empty text", service.PostInput{Text: "   "}, service.ErrEmptyText},
		{"unknown group", service.PostInput{Text: "текст", GroupID: &missing}, service.ErrInvalidGroup},
		{"not an image", service.PostInput{Text: "текст", Upload: &service.ImageUpload{
			Name: "file.txt", Size: 5, Reader: bytes.NewReader([]byte("hello")),
		}}, service.ErrInvalidImage},
		{"corrupt gif", service.PostInput{Text: "текст", Upload: &service.ImageUpload{
			Name: "bad.gif", Size: 10, Reader: bytes.NewReader(testutil.SmallGIF[:10]),
		}}, service.ErrInvalidImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, author.ID, tt.in)
			assert.ErrorIs(t, err, tt.err)
		})
	}
	assert.Zero(t, countPosts(t, db))
}

func TestCreatePostRejectsLargeImage(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewPostService(db, storage.NewLocalStore(t.TempDir(), "/media/"), 16)
	author := testutil.CreateUser(t, db, "auth")

	_, err := svc.CreatePost(context.Background(), author.ID, service.PostInput{
		Text: "текст",
		Upload: &service.ImageUpload{
			Name:   "small.gif",
			Size:   -1,
			Reader: bytes.NewReader(testutil.SmallGIF),
		},
	})
	assert.ErrorIs(t, err, service.ErrImageTooLarge)
}

func TestEditPost(t *testing.T) {
	svc, db, _ := newPostService(t)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "auth")
	other := testutil.CreateUser(t, db, "other")
	g := testutil.CreateGroup(t, db, "test-slug")
	p := testutil.CreatePost(t, db, author, nil, "старый текст")

	_, err := svc.EditPost(ctx, p.ID, other.ID, service.PostInput{Text: "взлом"})
	assert.ErrorIs(t, err, service.ErrNotAuthor)
	detail, err := svc.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "старый текст", detail.Post.Text)

	_, err = svc.EditPost(ctx, p.ID, author.ID, service.PostInput{Text: ""})
	assert.ErrorIs(t, err, service.ErrEmptyText)

	edited, err := svc.EditPost(ctx, p.ID, author.ID, service.PostInput{Text: "новый текст", GroupID: &g.ID})
	require.NoError(t, err)
	assert.Equal(t, "новый текст", edited.Text)

	detail, err = svc.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "новый текст", detail.Post.Text)
	require.NotNil(t, detail.Post.Group)
	assert.Equal(t, "test-slug", detail.Post.Group.Slug)

	_, err = svc.EditPost(ctx, 999, author.ID, service.PostInput{Text: "x"})
	assert.ErrorIs(t, err, service.ErrPostNotFound)
}

func TestDeletePost(t *testing.T) {
	svc, db, _ := newPostService(t)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "auth")
	other := testutil.CreateUser(t, db, "other")
	p := testutil.CreatePost(t, db, author, nil, "пост")
	_, err := svc.AddComment(ctx, p.ID, other.ID, "комментарий")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeletePost(ctx, p.ID, other.ID), service.ErrNotAuthor)
	require.NoError(t, svc.DeletePost(ctx, p.ID, author.ID))
	assert.Zero(t, countPosts(t, db))

	var comments int64
	require.NoError(t, db.Model(&model.Comment{}).Count(&comments).Error)
	assert.Zero(t, comments)

	assert.ErrorIs(t, svc.DeletePost(ctx, p.ID, author.ID), service.ErrPostNotFound)
}

func TestAddComment(t *testing.T) {
	svc, db, _ := newPostService(t)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "auth")
	reader := testutil.CreateUser(t, db, "reader")
	p := testutil.CreatePost(t, db, author, nil, "пост")

	c, err := svc.AddComment(ctx, p.ID, reader.ID, "Тестовый комментарий")
	require.NoError(t, err)
	assert.Equal(t, reader.ID, c.AuthorID)
	assert.Equal(t, p.ID, c.PostID)

	_, err = svc.AddComment(ctx, p.ID, reader.ID, "   ")
	assert.ErrorIs(t, err, service.ErrEmptyComment)

	_, err = svc.AddComment(ctx, 999, reader.ID, "текст")
	assert.ErrorIs(t, err, service.ErrPostNotFound)

	detail, err := svc.GetPost(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "Тестовый комментарий", detail.Comments[0].Text)
	assert.Equal(t, "reader", detail.Comments[0].Author.Username)
	assert.EqualValues(t, 1, detail.AuthorPostCount)
}
