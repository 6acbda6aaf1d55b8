package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodies-app/backend/internal/models"
	"github.com/foodies-app/backend/internal/types"
)

// UserService aggregates profile views and manages avatar updates.
type UserService struct {
	db    *gorm.DB
	blobs BlobStore
}

// NewUserService creates a new UserService instance.
func NewUserService(db *gorm.DB, blobs BlobStore) *UserService {
	return &UserService{
		db:    db,
		blobs: blobs,
	}
}

// Info aggregates the profile counts for one user. All four counts are
// always computed. IsFollowing is only set when a viewer is present and
// looking at somebody else's profile.
func (s *UserService) Info(ctx context.Context, userID uuid.UUID, viewerID *uuid.UUID) (*types.UserInfo, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	info := &types.UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Avatar:   user.Avatar,
	}

	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("user_id = ?", userID).
		Count(&info.RecipesCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.UserFavorite{}).
		Where("user_id = ?", userID).
		Count(&info.FavoritesCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.UserFollow{}).
		Where("following_id = ?", userID).
		Count(&info.FollowersCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.UserFollow{}).
		Where("follower_id = ?", userID).
		Count(&info.FollowingCount).Error; err != nil {
		return nil, err
	}

	if viewerID != nil && *viewerID != userID {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.UserFollow{}).
			Where("follower_id = ? AND following_id = ?", *viewerID, userID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		following := count > 0
		info.IsFollowing = &following
	}

	return info, nil
}

// UpdateAvatar stores a new avatar blob and records its key on the user.
// Returns a resolvable URL for the new avatar.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatar *types.Upload) (string, error) {
	if avatar == nil || len(avatar.Data) == 0 {
		return "", validationError("avatar is required")
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	key, err := s.blobs.UploadAvatar(ctx, userID, avatar.Data, avatar.ContentType)
	if err != nil {
		return "", err
	}

	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar", key).Error; err != nil {
		return "", err
	}
	return s.blobs.ResolveURL(ctx, key)
}
