package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/askhatb/challenge-on/internal/models"
	"github.com/zalando/go-keyring"
)

// Session data lives in the OS keyring so the token never touches plain files.
const (
	keyringService = "ChallengeOn"
	tokenKey       = "session_token"
	profileKey     = "user_profile"
)

// ErrNoSession is returned when no stored session exists.
var ErrNoSession = errors.New("no stored session")

// Save persists the session token and the signed-in user's profile.
func Save(token string, user models.User) error {
	if err := keyring.Set(keyringService, tokenKey, token); err != nil {
		return fmt.Errorf("failed to store session token: %v", err)
	}

	profile, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %v", err)
	}
	if err := keyring.Set(keyringService, profileKey, string(profile)); err != nil {
		return fmt.Errorf("failed to store profile: %v", err)
	}

	return nil
}

// Token returns the stored session token.
func Token() (string, error) {
	token, err := keyring.Get(keyringService, tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("failed to access keyring: %v", err)
	}
	return token, nil
}

// Profile returns the cached profile of the signed-in user.
func Profile() (*models.User, error) {
	raw, err := keyring.Get(keyringService, profileKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to access keyring: %v", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %v", err)
	}
	return &user, nil
}

// Clear removes the stored session.
func Clear() error {
	if err := keyring.Delete(keyringService, tokenKey); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to clear session token: %v", err)
	}
	if err := keyring.Delete(keyringService, profileKey); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to clear profile: %v", err)
	}
	return nil
}
