package storage

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local keeps files on disk under Root; they are served at MediaURL.
type Local struct {
	Root     string
	MediaURL string
}

func NewLocal(root, mediaURL string) *Local {
	if !strings.HasSuffix(mediaURL, "/") {
		mediaURL += "/"
	}
	return &Local{Root: root, MediaURL: mediaURL}
}

// Save copies the upload to Root/folder/<uuid><ext> and returns the path
// relative to Root, always with forward slashes.
func (l *Local) Save(_ context.Context, file *multipart.FileHeader, folder string) (string, error) {
	// Open the uploaded file
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	destDir := filepath.Join(l.Root, filepath.FromSlash(folder))
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	newFilename := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))

	dst, err := os.Create(filepath.Join(destDir, newFilename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return path.Join(folder, newFilename), nil
}

func (l *Local) URL(baseURL, p string) string {
	if p == "" {
		return ""
	}
	if isAbsoluteURL(p) {
		return p
	}
	return strings.TrimRight(baseURL, "/") + l.MediaURL + strings.TrimLeft(p, "/")
}
