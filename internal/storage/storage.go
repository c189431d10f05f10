// Package storage uploads images to object storage and removes them by URL.
package storage

import (
	"context"
	"errors"
	"path"
	"regexp"
	"strings"
)

var (
	ErrNotConfigured   = errors.New("image storage is not configured")
	ErrInvalidFileType = errors.New("only image files are allowed")
	ErrUpload          = errors.New("error uploading file")
	ErrForeignURL      = errors.New("url does not belong to image storage")
)

// ImageStore stores image bytes and returns a public URL for them.
type ImageStore interface {
	Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, url string) error
}

// Disabled is used when no storage credentials are configured.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, string, []byte) (string, error) {
	return "", ErrNotConfigured
}

func (Disabled) Delete(context.Context, string) error {
	return ErrNotConfigured
}

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// CheckImage rejects uploads that are not images.
func CheckImage(fileName, contentType string) error {
	if !strings.HasPrefix(contentType, "image/") {
		return ErrInvalidFileType
	}
	if ext := strings.ToLower(path.Ext(fileName)); ext != "" && !allowedExt[ext] {
		return ErrInvalidFileType
	}
	return nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9-]`)

// slugifyFileName turns "My Photo.PNG" into "my-photo".
func slugifyFileName(name string) string {
	name = strings.ToLower(path.Base(name))
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.Join(strings.Fields(name), "-")
	name = nonSlug.ReplaceAllString(name, "")
	if name == "" {
		name = "image"
	}
	return name
}
