package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/folio/folio-api/internal/crypto"
	"github.com/folio/folio-api/internal/model"
	"github.com/folio/folio-api/internal/repository"
	"github.com/folio/folio-api/internal/storage"
)

// RegisterResult is the created user plus the tokens to hand back as cookies.
type RegisterResult struct {
	User   model.UserResponse
	Tokens crypto.TokenPair
}

// UserService manages user profiles.
type UserService struct {
	users  UserStore
	hasher PasswordHasher
	tokens crypto.TokenIssuer
	images storage.ImageStore
}

func NewUserService(users UserStore, hasher PasswordHasher, tokens crypto.TokenIssuer, images storage.ImageStore) *UserService {
	return &UserService{users: users, hasher: hasher, tokens: tokens, images: images}
}

// Register creates a new user account and issues a token pair for it.
func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (RegisterResult, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" || req.Name == "" {
		return RegisterResult{}, invalid("email", "email, name, and password are required")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return RegisterResult{}, passwordError(err)
	}

	user := &model.User{
		Email:    email,
		Name:     req.Name,
		Password: hash,
		Picture:  req.Picture,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return RegisterResult{}, ErrEmailTaken
		}
		return RegisterResult{}, err
	}

	tokens, err := s.tokens.IssuePair(user.ID, user.Email)
	if err != nil {
		return RegisterResult{}, err
	}

	return RegisterResult{User: user.Public(), Tokens: tokens}, nil
}

// Me returns the profile of the authenticated user.
func (s *UserService) Me(ctx context.Context, userID string) (model.UserResponse, error) {
	user, err := s.get(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}
	return user.Public(), nil
}

// Update applies a partial profile update.
func (s *UserService) Update(ctx context.Context, userID string, req model.UpdateUserRequest) (model.UserResponse, error) {
	user, err := s.get(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email == "" {
			return model.UserResponse{}, invalid("email", "email cannot be empty")
		}
		user.Email = email
	}
	if req.Name != nil {
		if *req.Name == "" {
			return model.UserResponse{}, invalid("name", "name cannot be empty")
		}
		user.Name = *req.Name
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return model.UserResponse{}, passwordError(err)
		}
		user.Password = hash
	}

	var replaced *string
	if req.Picture != nil {
		replaced = user.Picture
		user.Picture = req.Picture
	}

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return model.UserResponse{}, ErrEmailTaken
		case errors.Is(err, repository.ErrUserNotFound):
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	if replaced != nil && *replaced != *user.Picture {
		discardImage(ctx, s.images, replaced)
	}

	return user.Public(), nil
}

// Delete removes a user and their picture.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	user, err := s.get(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	discardImage(ctx, s.images, user.Picture)
	return nil
}

func (s *UserService) get(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// discardImage removes an image that is no longer referenced. Failures are logged, not returned.
func discardImage(ctx context.Context, images storage.ImageStore, url *string) {
	if images == nil || url == nil || *url == "" {
		return
	}

	err := images.Delete(ctx, *url)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotConfigured), errors.Is(err, storage.ErrForeignURL):
		slog.Debug("image left in place", "url", *url, "reason", err)
	default:
		slog.Warn("failed to delete image", "url", *url, "error", err)
	}
}
