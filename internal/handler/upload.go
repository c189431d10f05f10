package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/folio/folio-api/internal/storage"
)

// uploader moves multipart image files into image storage.
type uploader struct {
	images storage.ImageStore
}

// one uploads fh and returns its public URL. A nil header yields a nil URL.
func (u uploader) one(ctx context.Context, fh *multipart.FileHeader) (*string, error) {
	if fh == nil {
		return nil, nil
	}

	contentType := fh.Header.Get("Content-Type")
	if err := storage.CheckImage(fh.Filename, contentType); err != nil {
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUpload, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUpload, err)
	}

	url, err := u.images.Upload(ctx, fh.Filename, contentType, data)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

// many uploads every header in order. On failure the files already stored are removed.
func (u uploader) many(ctx context.Context, fhs []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		url, err := u.one(ctx, fh)
		if err != nil {
			u.discard(ctx, urls...)
			return nil, err
		}
		urls = append(urls, *url)
	}
	return urls, nil
}

// discard removes uploads whose request failed after they were stored.
func (u uploader) discard(ctx context.Context, urls ...string) {
	for _, url := range urls {
		if err := u.images.Delete(ctx, url); err != nil {
			slog.Warn("failed to remove orphaned upload", "url", url, "error", err)
		}
	}
}

func (u uploader) discardOne(ctx context.Context, url *string) {
	if url != nil {
		u.discard(ctx, *url)
	}
}
