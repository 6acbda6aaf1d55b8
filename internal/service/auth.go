package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/foodies-app/backend/internal/models"
	"github.com/foodies-app/backend/internal/types"
)

const (
	sessionTokenTTL      = 24 * time.Hour
	verificationTokenTTL = 48 * time.Hour
)

// AuthService handles registration, login and token validation.
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	mail      Mailer
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(db *gorm.DB, jwtSecret string, mail Mailer) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		mail:      mail,
	}
}

// Register creates an unverified user with a bcrypt-hashed password and
// sends the verification email.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailInUse
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	token, err := s.generateVerificationToken(email)
	if err != nil {
		return nil, err
	}
	if err := s.mail.SendVerificationEmail(email, token); err != nil {
		return nil, err
	}

	return &user, nil
}

// VerifyEmail marks the user behind a verification token as verified.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	email, err := s.parseVerificationToken(token)
	if err != nil {
		return err
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Verified {
		return ErrEmailAlreadyVerified
	}

	return s.db.WithContext(ctx).Model(&user).Update("verified", true).Error
}

// ResendVerification sends a fresh verification email.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Verified {
		return ErrEmailAlreadyVerified
	}

	token, err := s.generateVerificationToken(email)
	if err != nil {
		return err
	}
	return s.mail.SendVerificationEmail(email, token)
}

// Login checks the credentials, mints a session token and stores it on the
// user row. Unverified users cannot log in.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.Verified {
		return "", nil, ErrEmailNotVerified
	}

	token, err := s.generateSessionToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	if err := s.db.WithContext(ctx).Model(&user).Update("token", token).Error; err != nil {
		return "", nil, err
	}
	user.Token = token

	return token, &user, nil
}

// Refresh mints a fresh session token for an authenticated user and
// stores it, invalidating the previous one.
func (s *AuthService) Refresh(ctx context.Context, userID uuid.UUID) (string, *models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, err
	}

	token, err := s.generateSessionToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	if err := s.db.WithContext(ctx).Model(&user).Update("token", token).Error; err != nil {
		return "", nil, err
	}
	user.Token = token

	return token, &user, nil
}

// Logout clears the stored session token, invalidating outstanding JWTs.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("token", "").Error
}

// Authenticate validates a bearer token and returns its user. The token
// must both verify as a JWT and match the token stored at login; a token
// cleared by logout no longer authenticates.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.parseSessionToken(token)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if user.Token == "" || user.Token != token {
		return nil, ErrInvalidToken
	}

	return &user, nil
}

func (s *AuthService) generateSessionToken(userID uuid.UUID) (string, error) {
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTokenTTL)),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) parseSessionToken(tokenString string) (*types.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &types.TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*types.TokenClaims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) generateVerificationToken(email string) (string, error) {
	claims := types.VerificationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(verificationTokenTTL)),
		},
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) parseVerificationToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &types.VerificationClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*types.VerificationClaims)
	if !ok || !token.Valid || claims.Email == "" {
		return "", ErrInvalidToken
	}
	return claims.Email, nil
}
