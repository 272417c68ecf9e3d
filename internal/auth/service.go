package auth

import (
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"github.com/mrlokans/bookclub/internal/database/users"
	"github.com/mrlokans/bookclub/internal/entities"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)

var (
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrUsernameInvalid    = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
	ErrUsernameTaken      = errors.New("username taken")
	ErrPasswordMismatch   = errors.New("password fields must match")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service handles registration and credential verification.
type Service struct {
	users *users.Repository
}

// NewService creates a new authentication service.
func NewService(repo *users.Repository) *Service {
	return &Service{users: repo}
}

// Register creates a new user account. The username existence check gives
// a friendly error for the common case; the unique constraint in the users
// repository backstops it against concurrent registration.
func (s *Service) Register(username, password, confirmPassword string) (*entities.User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrUsernameInvalid
	}
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	taken, err := s.users.UsernameExists(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	salt, err := GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	user := &entities.User{
		Username: username,
		Key:      DeriveKey(password, salt),
		Salt:     salt,
	}

	if err := s.users.CreateUser(user); err != nil {
		if errors.Is(err, users.ErrUsernameExists) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies credentials and returns the user. The error is the
// same for an unknown username and a wrong password so responses cannot be
// used to enumerate accounts.
func (s *Service) Authenticate(username, password string) (*entities.User, error) {
	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !VerifyKey(password, user.Salt, user.Key) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
