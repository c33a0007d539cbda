package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/askhatb/challenge-on/internal/apperr"
	"github.com/askhatb/challenge-on/internal/identity"
	"github.com/askhatb/challenge-on/internal/models"
	"github.com/askhatb/challenge-on/pkg/jwt"
	"github.com/askhatb/challenge-on/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IdentityVerifier validates a third-party ID token and extracts the profile.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*identity.Identity, error)
}

// UserStore defines the user data access consumed by AuthService.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// AuthService exchanges Google ID tokens for locally issued session tokens.
type AuthService struct {
	users       UserStore
	verifier    IdentityVerifier
	jwtSecret   string
	tokenExpiry time.Duration
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(users UserStore, verifier IdentityVerifier, jwtSecret string, tokenExpiry time.Duration) *AuthService {
	return &AuthService{
		users:       users,
		verifier:    verifier,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

// SignInWithGoogle verifies the ID token, creates the user on first sign-in and
// issues a session token. Presenting the same Google identity twice always
// resolves to the same local user.
func (s *AuthService) SignInWithGoogle(ctx context.Context, idToken string) (string, *models.User, error) {
	ident, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		logger.Log.WithError(err).Warn("Google ID token rejected")
		return "", nil, err
	}

	user, err := s.users.GetUserByGoogleID(ctx, ident.Subject)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			return "", nil, fmt.Errorf("failed to look up user: %v", err)
		}

		user, err = s.users.CreateUser(ctx, &models.User{
			Email:    ident.Email,
			Name:     ident.Name,
			GoogleID: ident.Subject,
		})
		if err != nil {
			return "", nil, fmt.Errorf("failed to create user: %v", err)
		}

		logger.Log.WithField("user_id", user.ID.Hex()).Info("New user registered via Google")
	}

	token, err := jwt.GenerateToken(user.ID.Hex(), s.jwtSecret, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate session token: %v", err)
	}

	logger.Log.WithField("user_id", user.ID.Hex()).Info("User signed in")
	return token, user, nil
}

// GetUser retrieves a user by their local id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}

	return s.users.GetUserByID(ctx, objID)
}
