package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

func TestRegisterAndVerify(t *testing.T) {
	db := setupTestDB(t)
	mail := &recordingMailer{}
	svc := NewAuthService(db, testJWTSecret, mail)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.Verified)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "alice@example.com", mail.sent[0].To)

	// Unverified users cannot log in.
	_, _, err = svc.Login(context.Background(), "alice@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	require.NoError(t, svc.VerifyEmail(context.Background(), mail.sent[0].Token))

	token, logged, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testJWTSecret, &recordingMailer{})

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice2", "alice@example.com", "other")
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestVerifyEmail_Errors(t *testing.T) {
	db := setupTestDB(t)
	mail := &recordingMailer{}
	svc := NewAuthService(db, testJWTSecret, mail)

	assert.ErrorIs(t, svc.VerifyEmail(context.Background(), "garbage"), ErrInvalidToken)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	token := mail.sent[0].Token

	require.NoError(t, svc.VerifyEmail(context.Background(), token))
	assert.ErrorIs(t, svc.VerifyEmail(context.Background(), token), ErrEmailAlreadyVerified)
}

func TestResendVerification(t *testing.T) {
	db := setupTestDB(t)
	mail := &recordingMailer{}
	svc := NewAuthService(db, testJWTSecret, mail)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.ResendVerification(context.Background(), "alice@example.com"))
	assert.Len(t, mail.sent, 2)

	assert.ErrorIs(t, svc.ResendVerification(context.Background(), "nobody@example.com"), ErrUserNotFound)

	require.NoError(t, svc.VerifyEmail(context.Background(), mail.sent[1].Token))
	assert.ErrorIs(t, svc.ResendVerification(context.Background(), "alice@example.com"), ErrEmailAlreadyVerified)
}

func TestLogin_BadCredentials(t *testing.T) {
	db := setupTestDB(t)
	mail := &recordingMailer{}
	svc := NewAuthService(db, testJWTSecret, mail)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	require.NoError(t, svc.VerifyEmail(context.Background(), mail.sent[0].Token))

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_TokenLifecycle(t *testing.T) {
	db := setupTestDB(t)
	mail := &recordingMailer{}
	svc := NewAuthService(db, testJWTSecret, mail)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	require.NoError(t, svc.VerifyEmail(context.Background(), mail.sent[0].Token))

	token, _, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)

	authed, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	// A refresh replaces the stored token; the old one stops working.
	fresh, _, err := svc.Refresh(context.Background(), user.ID)
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), fresh)
	require.NoError(t, err)
	if fresh != token {
		_, err = svc.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}

	// Logout invalidates everything outstanding.
	require.NoError(t, svc.Logout(context.Background(), user.ID))
	_, err = svc.Authenticate(context.Background(), fresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testJWTSecret, &recordingMailer{})

	_, err := svc.Authenticate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
