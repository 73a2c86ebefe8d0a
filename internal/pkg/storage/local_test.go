package storage_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"yatube/internal/config"
	"yatube/internal/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSave(t *testing.T) {
	root := t.TempDir()
	s := storage.NewLocalStore(root, "/media")

	key, err := s.Save(context.Background(), "small.gif", bytes.NewReader([]byte("GIF89a")), 6, "image/gif")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "posts/"))
	assert.True(t, strings.HasSuffix(key, ".gif"))

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "GIF89a", string(data))

	assert.Equal(t, "/media/"+key, s.URL(key))
	assert.Empty(t, s.URL(""))
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := storage.New(context.Background(), config.StorageConfig{Driver: "ftp"})
	assert.Error(t, err)

	s, err := storage.New(context.Background(), config.StorageConfig{Driver: "local", MediaRoot: t.TempDir(), MediaURL: "/media/"})
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStore{}, s)
}
