package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStorage(root)
	require.NoError(t, err)
	ctx := context.Background()

	url, err := store.Save(ctx, strings.NewReader("payload"), "tradition-images", "ภาพงาน 2568.jpg")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/tradition-images/"))
	// Thai characters and spaces are stripped, the extension survives.
	assert.True(t, strings.HasSuffix(url, ".jpg"))
	assert.NotContains(t, url, " ")

	rel := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	require.NoError(t, store.Delete(ctx, url))
	_, err = os.Stat(filepath.Join(root, rel))
	assert.True(t, os.IsNotExist(err))

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(ctx, url))
}

func TestLocalDeleteRejectsEscapes(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	assert.Error(t, store.Delete(ctx, "/etc/passwd"))
	assert.Error(t, store.Delete(ctx, "/uploads/../../etc/passwd"))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "report-2568.pdf", sanitizeFileName("report 2568.pdf"))
	assert.Equal(t, "file", sanitizeFileName("ไฟล์แนบ"))
	assert.Equal(t, "passwd", sanitizeFileName("../../etc/passwd"))
}
