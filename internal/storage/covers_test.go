package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpload_StoresUnderGeneratedName(t *testing.T) {
	bucket, err := NewCoverBucket(t.TempDir(), "http://localhost:8080/covers", 1024)
	assert.NoError(t, err)

	name, err := bucket.Upload("piranesi.jpg", strings.NewReader("fake image bytes"))

	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.NotEqual(t, "piranesi.jpg", name)

	data, err := os.ReadFile(filepath.Join(bucket.Dir(), name))
	assert.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestUpload_UniqueNamesPerUpload(t *testing.T) {
	bucket, err := NewCoverBucket(t.TempDir(), "http://localhost:8080/covers", 1024)
	assert.NoError(t, err)

	first, err := bucket.Upload("cover.png", strings.NewReader("one"))
	assert.NoError(t, err)
	second, err := bucket.Upload("cover.png", strings.NewReader("two"))
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestUpload_RejectsUnsupportedExtension(t *testing.T) {
	bucket, err := NewCoverBucket(t.TempDir(), "http://localhost:8080/covers", 1024)
	assert.NoError(t, err)

	_, err = bucket.Upload("malware.exe", strings.NewReader("nope"))

	assert.Equal(t, ErrUnsupportedType, err)
}

func TestUpload_RejectsOversized(t *testing.T) {
	dir := t.TempDir()
	bucket, err := NewCoverBucket(dir, "http://localhost:8080/covers", 8)
	assert.NoError(t, err)

	_, err = bucket.Upload("big.jpg", strings.NewReader("this is more than eight bytes"))

	assert.Equal(t, ErrTooLarge, err)

	// the partial object must not be left behind
	entries, readErr := os.ReadDir(dir)
	assert.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestUpload_AcceptsExactlyMaxBytes(t *testing.T) {
	bucket, err := NewCoverBucket(t.TempDir(), "http://localhost:8080/covers", 8)
	assert.NoError(t, err)

	name, err := bucket.Upload("small.jpg", strings.NewReader("12345678"))

	assert.NoError(t, err)
	assert.NotEmpty(t, name)
}

func TestUpload_IgnoresDirectoryInFilename(t *testing.T) {
	dir := t.TempDir()
	bucket, err := NewCoverBucket(dir, "http://localhost:8080/covers", 1024)
	assert.NoError(t, err)

	name, err := bucket.Upload("../../etc/passwd.png", strings.NewReader("payload"))

	assert.NoError(t, err)
	assert.NotContains(t, name, "/")
	_, statErr := os.Stat(filepath.Join(dir, name))
	assert.NoError(t, statErr)
}

func TestPublicURL(t *testing.T) {
	bucket, err := NewCoverBucket(t.TempDir(), "http://localhost:8080/covers/", 1024)
	assert.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/covers/abc.jpg", bucket.PublicURL("abc.jpg"))
}
