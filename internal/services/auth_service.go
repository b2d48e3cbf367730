package services

import (
	"errors"
	"fmt"
	"time"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for accounts and authentication.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration
}

// UpdateUserInput carries a partial account update; nil fields are left
// unchanged. A new password is rehashed before storage.
type UpdateUserInput struct {
	Email    *string
	Password *string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// RegisterUser registers a new customer account. The password is stored as a
// bcrypt hash, never in plaintext.
func (s *AuthService) RegisterUser(email, password string) (*models.User, error) {
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, fmt.Errorf("user with email %s already exists: %w", email, apperrors.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleCustomer,
		IsActive: true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// LoginUser authenticates an account and returns a signed JWT. A missing
// account, a banned account and a wrong password all fail the same way so the
// response does not reveal which one it was.
func (s *AuthService) LoginUser(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}
	if !user.IsActive {
		return "", fmt.Errorf("account is banned: %w", apperrors.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   now.Add(s.tokenDurat).Unix(),
		"iat":   now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
}

// BanUser deactivates a customer account. Admin accounts cannot be banned.
func (s *AuthService) BanUser(email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleAdmin {
		return nil, fmt.Errorf("cannot ban admin users: %w", apperrors.ErrDomain)
	}
	user.IsActive = false
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to ban user %s: %w", email, err)
	}
	return user, nil
}

// UnbanUser reactivates an account.
func (s *AuthService) UnbanUser(email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	user.IsActive = true
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to unban user %s: %w", email, err)
	}
	return user, nil
}

// GetUserStatus returns the account with the given email.
func (s *AuthService) GetUserStatus(email string) (*models.User, error) {
	return s.userRepo.GetByEmail(email)
}

// UpdateUser applies a partial update to the requester's own account.
func (s *AuthService) UpdateUser(email string, input UpdateUserInput, requesterEmail string) (*models.User, error) {
	if email != requesterEmail {
		return nil, fmt.Errorf("you can only update your own profile: %w", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if existing, err := s.userRepo.GetByEmail(*input.Email); err == nil && existing != nil {
			return nil, fmt.Errorf("user with email %s already exists: %w", *input.Email, apperrors.ErrConflict)
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashedPassword)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", email, err)
	}
	return user, nil
}

// RemoveUser deletes the requester's own account.
func (s *AuthService) RemoveUser(email, requesterEmail string) error {
	if email != requesterEmail {
		return fmt.Errorf("you can only delete your own account: %w", apperrors.ErrUnauthorized)
	}
	if err := s.userRepo.DeleteByEmail(email); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete user %s: %w", email, err)
	}
	return nil
}
