package service

import (
	"context"
	"errors"

	"github.com/folio/folio-api/internal/repository"
)

// ContentStore is the persistence contract shared by blogs, projects and skills.
type ContentStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, item *T) error
	Save(ctx context.Context, item *T) error
	Delete(ctx context.Context, id string) error
}

// notFound swaps the repository's not-found sentinel for the entity-specific one.
func notFound(err, target error) error {
	if errors.Is(err, repository.ErrRecordNotFound) {
		return target
	}
	return err
}

func required(field string, value *string) error {
	if value == nil || *value == "" {
		return invalid(field, field+" is required")
	}
	return nil
}
