package sessions

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"resume-builder-backend/internal/shared/auth"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service implements account registration and sign-in.
type Service struct {
	Repo   Repo
	Tokens *auth.Manager
}

func NewService(repo Repo, tokens *auth.Manager) *Service {
	return &Service{Repo: repo, Tokens: tokens}
}

type SignUpInput struct {
	FullName        string
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// SignUp validates the input, then creates the account. Validation failures
// return before any hashing or repository work happens.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("sessions service not configured")
	}

	in.FullName = strings.TrimSpace(in.FullName)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if in.FullName == "" || in.Username == "" || in.Email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return User{}, validationErr("All fields are required")
	}
	if !emailPattern.MatchString(in.Email) {
		return User{}, validationErr("Enter a valid email")
	}
	if len(in.Password) < minPasswordLength {
		return User{}, validationErr("Password must be at least 6 characters")
	}
	if in.Password != in.ConfirmPassword {
		return User{}, validationErr("Passwords do not match")
	}

	// Fail fast on a taken email; the insert still enforces uniqueness.
	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Username:     in.Username,
		FullName:     in.FullName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// SignIn validates credentials and returns the user with a session token.
func (s *Service) SignIn(ctx context.Context, email, password string) (User, string, error) {
	if s == nil || s.Repo == nil || s.Tokens == nil {
		return User{}, "", errors.New("sessions service not configured")
	}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return User{}, "", validationErr("Please enter email and password")
	}
	if !emailPattern.MatchString(email) {
		return User{}, "", validationErr("Enter a valid email")
	}
	if len(password) < minPasswordLength {
		return User{}, "", validationErr("Password must be at least 6 characters")
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.Tokens.Sign(user.ID, user.Email, user.FullName)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// GetByID loads one account.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("sessions service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// UpsertFromOAuth persists an externally authenticated identity and issues a
// session token for it.
func (s *Service) UpsertFromOAuth(ctx context.Context, user User) (string, error) {
	if s == nil || s.Repo == nil || s.Tokens == nil {
		return "", errors.New("sessions service not configured")
	}
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return "", errors.New("user id and email are required")
	}
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return "", err
	}
	return s.Tokens.Sign(user.ID, user.Email, user.FullName)
}
