package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"unicode"

	"github.com/khelmitra/scoreboard/models"
	"github.com/khelmitra/scoreboard/repositories"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type AuthService interface {
	// Register creates a user and its empty profile in one transaction.
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	// Login verifies credentials and returns the user's persistent token.
	// The same token key is returned on every successful login.
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
}

type RegisterInput struct {
	Username  string `json:"username" validate:"required,max=150"`
	Password  string `json:"password" validate:"required"`
	Password2 string `json:"password2" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token     string `json:"token"`
	UserID    int    `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type authService struct {
	txRunner    repositories.TxRunner
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	tokenRepo   repositories.TokenRepository
}

func NewAuthService(
	txRunner repositories.TxRunner,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	tokenRepo repositories.TokenRepository,
) AuthService {
	return &authService{
		txRunner:    txRunner,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokenRepo:   tokenRepo,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := checkStruct(input); err != nil {
		return nil, err
	}
	if err := checkPasswordPolicy(input.Password); err != nil {
		return nil, err
	}
	if input.Password != input.Password2 {
		return nil, ValidationError{"password": "password fields didn't match"}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hashedPassword),
	}

	err = s.txRunner.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.userRepo.Create(ctx, exec, user); err != nil {
			return err
		}
		profile := &models.UserProfile{UserID: user.ID}
		return s.profileRepo.Create(ctx, exec, profile)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUserUsernameConflict) {
			return nil, ValidationError{"username": "a user with that username already exists"}
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if err := checkStruct(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Same error as a bad password: do not leak whether the
			// username exists.
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	key, err := generateTokenKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token key: %w", err)
	}
	token, err := s.tokenRepo.GetOrCreate(ctx, user.ID, key)
	if err != nil {
		return nil, fmt.Errorf("failed to issue auth token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

func checkPasswordPolicy(password string) error {
	if len(password) < minPasswordLength {
		return ValidationError{"password": fmt.Sprintf("password must be at least %d characters long", minPasswordLength)}
	}
	allDigits := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return ValidationError{"password": "password cannot be entirely numeric"}
	}
	return nil
}

// generateTokenKey produces a 40-character hex key for the opaque bearer
// token.
func generateTokenKey() (string, error) {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
