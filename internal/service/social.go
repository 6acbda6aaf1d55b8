package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodies-app/backend/internal/models"
	"github.com/foodies-app/backend/internal/types"
)

// SocialService manages the follow graph.
type SocialService struct {
	db *gorm.DB
}

// NewSocialService creates a new SocialService instance.
func NewSocialService(db *gorm.DB) *SocialService {
	return &SocialService{db: db}
}

// Follow inserts a follower -> following edge. Following an already
// followed user is absorbed by the unique pair constraint, so the
// operation is idempotent. A self-follow is a validation failure.
func (s *SocialService) Follow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if followerID == followingID {
		return validationError("you cannot follow yourself")
	}
	if err := s.ensureUserExists(ctx, followingID); err != nil {
		return err
	}

	edge := models.UserFollow{FollowerID: followerID, FollowingID: followingID}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge).Error
}

// Unfollow removes the matching edge. Removing an absent edge is a no-op;
// a self-unfollow is a validation failure regardless of edge state.
func (s *SocialService) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if followerID == followingID {
		return validationError("you cannot unfollow yourself")
	}
	if err := s.ensureUserExists(ctx, followingID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.UserFollow{}).Error
}

// Followers lists the users following userID ordered by username, each
// annotated with their recipe count through a single join+group query
// (no per-row lookups).
func (s *SocialService) Followers(ctx context.Context, userID uuid.UUID) ([]types.FollowListItem, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}
	return s.edgeUsers(ctx, "user_follows.following_id = ?", "user_follows.follower_id", userID)
}

// Following lists the users userID follows, with the same annotation.
func (s *SocialService) Following(ctx context.Context, userID uuid.UUID) ([]types.FollowListItem, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}
	return s.edgeUsers(ctx, "user_follows.follower_id = ?", "user_follows.following_id", userID)
}

// IsFollowing reports whether a follower -> following edge exists.
func (s *SocialService) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.UserFollow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (s *SocialService) edgeUsers(ctx context.Context, edgeWhere, edgeUserColumn string, userID uuid.UUID) ([]types.FollowListItem, error) {
	var rows []struct {
		ID          uuid.UUID `gorm:"column:id"`
		Username    string    `gorm:"column:username"`
		Email       string    `gorm:"column:email"`
		Avatar      string    `gorm:"column:avatar"`
		RecipeCount int64     `gorm:"column:recipe_count"`
	}
	err := s.db.WithContext(ctx).Table("users").
		Select("users.id, users.username, users.email, users.avatar, COUNT(recipes.id) AS recipe_count").
		Joins("JOIN user_follows ON "+edgeUserColumn+" = users.id").
		Joins("LEFT JOIN recipes ON recipes.user_id = users.id").
		Where(edgeWhere, userID).
		Group("users.id, users.username, users.email, users.avatar").
		Order("users.username ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]types.FollowListItem, len(rows))
	for i, row := range rows {
		items[i] = types.FollowListItem{
			ID:          row.ID,
			Username:    row.Username,
			Email:       row.Email,
			Avatar:      row.Avatar,
			RecipeCount: row.RecipeCount,
		}
	}
	return items, nil
}

func (s *SocialService) ensureUserExists(ctx context.Context, userID uuid.UUID) error {
	var user models.User
	if err := s.db.WithContext(ctx).Select("id").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
