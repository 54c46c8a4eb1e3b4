package user

import (
	"fmt"
	"time"

	userRepo "taskpilot/database/repository/user"
	"taskpilot/models"
	"taskpilot/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenDuration is how long issued session tokens stay valid.
const TokenDuration = 72 * time.Hour

// AuthResponse contains the user's ID, token, and additional details.
type AuthResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// UserService defines account operations for the API surface.
type UserService interface {
	RegisterUser(user models.User) (*AuthResponse, error)
	AuthenticateUser(email, password string) (*AuthResponse, error)
	GetUserByID(id string) (*models.User, error)
	RevokeAuthToken(userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// RegisterUser creates a new user, issues a token, and caches its hash.
func (s *DefaultUserService) RegisterUser(user models.User) (*AuthResponse, error) {
	if user.Email == "" || user.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if user.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(user.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters long")
	}

	// Check for an existing user.
	existing, err := s.Repo.GetByEmail(user.Email)
	if err != nil {
		utils.GetLogger().Error("Failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("a user with this email already exists")
	}

	// Hash the provided password.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	user.PasswordHash = string(hashedPassword)
	user.Password = ""
	user.ID = uuid.NewString()

	if err := s.Repo.Create(&user); err != nil {
		utils.GetLogger().Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return s.issueToken(&user)
}

// AuthenticateUser verifies credentials and issues a fresh token.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch user for login", zap.Error(err))
		return nil, fmt.Errorf("login failed, please try again")
	}
	if user == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueToken(user)
}

// GetUserByID returns the user's account record.
func (s *DefaultUserService) GetUserByID(id string) (*models.User, error) {
	return s.Repo.GetByID(id)
}

// RevokeAuthToken drops the cached session so the current token stops working.
func (s *DefaultUserService) RevokeAuthToken(userID string) error {
	client := utils.GetAuthCacheClient()
	if err := utils.DeleteSessionToken(client, userID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *DefaultUserService) issueToken(user *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, user.Email, TokenDuration)
	if err != nil {
		utils.GetLogger().Error("Failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("could not issue session token")
	}

	client := utils.GetAuthCacheClient()
	if err := utils.SaveSessionToken(client, user.ID, utils.HashToken(token)); err != nil {
		utils.GetLogger().Error("Failed to cache session token", zap.Error(err))
		return nil, fmt.Errorf("could not issue session token")
	}

	return &AuthResponse{
		ID:       user.ID,
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}
