package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foodies-app/backend/config"
)

const (
	recipeThumbFolder = "recipes"
	avatarFolder      = "avatars"
	signedURLTTL      = time.Hour
)

// ImageService is the S3-backed BlobStore for avatars and recipe
// thumbnails.
type ImageService struct {
	s3 *config.S3Config
}

var _ BlobStore = (*ImageService)(nil)

// NewImageService creates a new ImageService instance.
func NewImageService(s3 *config.S3Config) *ImageService {
	return &ImageService{s3: s3}
}

// UploadRecipeThumb stores a recipe thumbnail under a key derived from the
// recipe id and returns the key.
func (s *ImageService) UploadRecipeThumb(ctx context.Context, recipeID uuid.UUID, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%s/%s", recipeThumbFolder, recipeID, uuid.NewString())
	if err := s.s3.PutObject(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("failed to upload recipe thumb: %w", err)
	}
	return key, nil
}

// UploadAvatar stores a user avatar and returns its key.
func (s *ImageService) UploadAvatar(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%s/%s", avatarFolder, userID, uuid.NewString())
	if err := s.s3.PutObject(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	return key, nil
}

// ResolveURL turns a stored key into a presigned URL. Empty keys resolve
// to empty; values that are already public http(s) URLs (legacy data,
// CDN links) pass through unchanged.
func (s *ImageService) ResolveURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key, nil
	}
	return s.s3.GeneratePresignedURL(ctx, key, signedURLTTL)
}
