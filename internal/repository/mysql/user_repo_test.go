package mysql_test

import (
	"context"
	"testing"

	"yatube/internal/model"
	"yatube/internal/repository/mysql"
	"yatube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserUniqueColumns(t *testing.T) {
	db := testutil.NewDB(t)
	repo := &mysql.UserRepository{DB: db}
	ctx := context.Background()

	testutil.CreateUser(t, db, "leo")

	err := repo.Create(ctx, &model.User{Username: "leo", Password: "x", Email: "other@example.com"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	err = repo.Create(ctx, &model.User{Username: "anna", Password: "x", Email: "leo@example.com"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	taken, err := repo.ExistsEmail(ctx, "leo@example.com")
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = repo.ExistsEmail(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestGroupSlugUnique(t *testing.T) {
	db := testutil.NewDB(t)
	repo := &mysql.GroupRepository{DB: db}

	testutil.CreateGroup(t, db, "cats")
	err := repo.Create(context.Background(), &model.Group{Title: "Другие", Slug: "cats"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
