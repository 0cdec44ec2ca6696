package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrTooLarge is returned when an upload exceeds the configured size cap.
	ErrTooLarge = errors.New("cover image exceeds maximum size")
	// ErrUnsupportedType is returned for file extensions outside the image allowlist.
	ErrUnsupportedType = errors.New("unsupported cover image type")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// CoverBucket is the object store for book cover images: a directory of
// uploaded files addressed by generated object names, each reachable under a
// public base URL. Books only ever store the resolved URL, so a cover typed
// in as an external link and a cover uploaded here look identical downstream.
type CoverBucket struct {
	dir      string
	baseURL  string
	maxBytes int64
}

func NewCoverBucket(dir, baseURL string, maxBytes int64) (*CoverBucket, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cover dir: %w", err)
	}
	return &CoverBucket{
		dir:      dir,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
	}, nil
}

// Upload stores the image and returns the generated object name. The original
// filename only contributes its extension; the object name is a fresh UUID so
// uploads never collide or traverse paths.
func (b *CoverBucket) Upload(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	name := uuid.New().String() + ext
	path := filepath.Join(b.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create cover object: %w", err)
	}

	// Read one byte past the cap to detect oversized uploads
	written, err := io.Copy(f, io.LimitReader(r, b.maxBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write cover object: %w", err)
	}
	if written > b.maxBytes {
		os.Remove(path)
		return "", ErrTooLarge
	}

	return name, nil
}

// PublicURL derives the URL a stored object is served under.
func (b *CoverBucket) PublicURL(name string) string {
	return b.baseURL + "/" + name
}

// Dir returns the backing directory, for wiring up static file serving.
func (b *CoverBucket) Dir() string {
	return b.dir
}
