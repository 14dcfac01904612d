package storage

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocalStorage_SaveAndOpen(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	assert.NoError(t, err)

	relPath, err := store.Save([]byte("hello"), "report.csv", "reports")
	assert.NoError(t, err)

	// Files land under subDir/year/month
	prefix := "reports/" + time.Now().Format("2006/01") + "/"
	assert.True(t, strings.HasPrefix(relPath, prefix), "got %s", relPath)

	file, err := store.Open(relPath)
	assert.NoError(t, err)
	defer file.Close()

	data, err := io.ReadAll(file)
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestLocalStorage_Delete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	assert.NoError(t, err)

	relPath, err := store.Save([]byte("data"), "tmp.csv", "reports")
	assert.NoError(t, err)
	assert.True(t, store.Exists(relPath))

	assert.NoError(t, store.Delete(relPath))
	assert.False(t, store.Exists(relPath))

	err = store.Delete(relPath)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_CreatesBaseDirectory(t *testing.T) {
	base := t.TempDir() + "/nested/storage"

	_, err := NewLocalStorage(base)
	assert.NoError(t, err)

	info, err := os.Stat(base)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}
