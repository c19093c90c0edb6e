package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalakriti/events-backend/internal/config"
)

func TestNewSelectsDriver(t *testing.T) {
	up, err := New(config.Config{UploadDriver: "local", LocalDir: t.TempDir()})
	require.NoError(t, err)
	_, ok := up.(*LocalUploader)
	assert.True(t, ok)
}

func TestLocalUploaderWritesFile(t *testing.T) {
	root := t.TempDir()
	up := &LocalUploader{Root: root}

	url, err := up.Upload(context.Background(), "assets/REG1234567", "artwork.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".png"), "extension preserved in %q", url)
	assert.Contains(t, url, "assets/REG1234567/")

	var stored string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			stored = path
		}
		return err
	})
	require.NoError(t, err)
	require.NotEmpty(t, stored, "uploaded file exists under the root")

	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalUploaderUniqueKeys(t *testing.T) {
	up := &LocalUploader{Root: t.TempDir()}

	first, err := up.Upload(context.Background(), "assets/REG1", "a.jpg", "image/jpeg", strings.NewReader("x"))
	require.NoError(t, err)
	second, err := up.Upload(context.Background(), "assets/REG1", "a.jpg", "image/jpeg", strings.NewReader("y"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestObjectKeyNoExtension(t *testing.T) {
	key := objectKey("assets/REG1", "README")
	assert.False(t, strings.Contains(filepath.Base(key), "."), "no spurious extension in %q", key)
}
