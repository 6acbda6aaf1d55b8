package service

import (
	"context"

	"github.com/google/uuid"
)

// BlobStore is the key-addressed binary store used for avatars and recipe
// thumbnails. The production implementation is backed by S3; tests plug in
// an in-memory stub.
type BlobStore interface {
	// UploadRecipeThumb stores a thumbnail under a key derived from the
	// recipe id and returns that key.
	UploadRecipeThumb(ctx context.Context, recipeID uuid.UUID, data []byte, contentType string) (string, error)

	// UploadAvatar stores a user avatar and returns its key.
	UploadAvatar(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error)

	// ResolveURL turns a stored key into a fetchable URL. Keys that are
	// already public http(s) URLs pass through unchanged.
	ResolveURL(ctx context.Context, key string) (string, error)
}

// Mailer sends transactional email. Implementations must tolerate being
// unconfigured (development, tests) by becoming a no-op.
type Mailer interface {
	SendVerificationEmail(to, token string) error
}
