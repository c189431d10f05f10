package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/folio/folio-api/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the user struct.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	return nil
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, storeError(err, ErrUserNotFound)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, storeError(err, ErrUserNotFound)
	}
	return &user, nil
}

// Update persists all mutable fields of an existing user.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", user.ID).Updates(map[string]any{
		"email":    user.Email,
		"name":     user.Name,
		"password": user.Password,
		"picture":  user.Picture,
	})
	if result.Error != nil {
		if isDuplicateEntryError(result.Error) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("%w: %v", ErrStore, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes a user together with the content they authored.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&model.Blog{}).Error; err != nil {
			return storeError(err, ErrUserNotFound)
		}
		if err := tx.Where("author_id = ?", id).Delete(&model.Project{}).Error; err != nil {
			return storeError(err, ErrUserNotFound)
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Skill{}).Error; err != nil {
			return storeError(err, ErrUserNotFound)
		}

		result := tx.Where("id = ?", id).Delete(&model.User{})
		if result.Error != nil {
			return storeError(result.Error, ErrUserNotFound)
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}
