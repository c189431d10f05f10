package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/folio/folio-api/internal/model"
)

// ContentRepository persists one kind of portfolio content (blogs, projects or skills).
type ContentRepository[T any] struct {
	db    *gorm.DB
	owner string
}

func NewBlogRepository(db *gorm.DB) *ContentRepository[model.Blog] {
	return &ContentRepository[model.Blog]{db: db, owner: "Author"}
}

func NewProjectRepository(db *gorm.DB) *ContentRepository[model.Project] {
	return &ContentRepository[model.Project]{db: db, owner: "Author"}
}

func NewSkillRepository(db *gorm.DB) *ContentRepository[model.Skill] {
	return &ContentRepository[model.Skill]{db: db, owner: "User"}
}

// List returns all records, newest first, with their owner loaded.
func (r *ContentRepository[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	err := r.db.WithContext(ctx).Preload(r.owner).Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, storeError(err, ErrRecordNotFound)
	}
	return items, nil
}

// GetByID retrieves a record with its owner loaded.
func (r *ContentRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var item T
	err := r.db.WithContext(ctx).Preload(r.owner).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, storeError(err, ErrRecordNotFound)
	}
	return &item, nil
}

// Create inserts a new record and sets its generated ID.
func (r *ContentRepository[T]) Create(ctx context.Context, item *T) error {
	return storeError(r.db.WithContext(ctx).Create(item).Error, ErrRecordNotFound)
}

// Save writes every column of an existing record.
func (r *ContentRepository[T]) Save(ctx context.Context, item *T) error {
	return storeError(r.db.WithContext(ctx).Omit(r.owner).Save(item).Error, ErrRecordNotFound)
}

// Delete removes a record by ID.
func (r *ContentRepository[T]) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return storeError(result.Error, ErrRecordNotFound)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
