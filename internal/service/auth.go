// Package service holds the business logic above the repository: auth,
// record CRUD with ownership checks, point hooks and dashboard assembly.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/finassist/finassist/internal/config"
	"github.com/finassist/finassist/internal/models"
	"github.com/finassist/finassist/internal/repository"
)

// ErrForbidden is returned when a record does not belong to the acting user
var ErrForbidden = errors.New("record does not belong to user")

// AuthService handles registration and login
type AuthService struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
}

// NewAuthService initializes the auth service
func NewAuthService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config) *AuthService {
	return &AuthService{repo: repo, log: log, config: cfg}
}

// Register creates a new user with hashed password
func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}
