package services_test

import (
	"fmt"
	"testing"
	"time"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteByEmail(email string) error {
	args := m.Called(email)
	return args.Error(0)
}

const testJWTSecret = "test_jwt_secret"

func notFoundErr(what string) error {
	return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Successful registration: the stored password must be a bcrypt hash,
	// never the plaintext.
	mockRepo.On("GetByEmail", "new@example.com").Return(nil, notFoundErr("user")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		stored := args.Get(0).(*models.User)
		assert.NotEqual(t, "password123", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))
	}).Return(nil).Once()

	user, err := authService.RegisterUser("new@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.True(t, user.IsActive)
	mockRepo.AssertExpectations(t)

	// Second registration with the same email fails with a conflict.
	mockRepo.On("GetByEmail", "new@example.com").Return(&models.User{ID: "1", Email: "new@example.com"}, nil).Once()
	_, err = authService.RegisterUser("new@example.com", "password123")
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleCustomer,
		IsActive: true,
	}

	// Successful login issues a token carrying sub, email and role.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, err := authService.LoginUser(user.Email, "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["sub"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, models.RoleCustomer, claims["role"])
	mockRepo.AssertExpectations(t)

	// Wrong password.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.LoginUser(user.Email, "wrongpassword")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	mockRepo.AssertExpectations(t)

	// Unknown account fails the same way.
	mockRepo.On("GetByEmail", "ghost@example.com").Return(nil, notFoundErr("user")).Once()
	_, err = authService.LoginUser("ghost@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	mockRepo.AssertExpectations(t)

	// Banned account cannot log in.
	banned := *user
	banned.IsActive = false
	mockRepo.On("GetByEmail", user.Email).Return(&banned, nil).Once()
	_, err = authService.LoginUser(user.Email, "password123")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	valid := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-123",
		"email": "test@example.com",
		"role":  models.RoleAdmin,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	validString, _ := valid.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["sub"])
	assert.Equal(t, models.RoleAdmin, claims["role"])

	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, _ := expired.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredString)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_BanUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Banning an admin is a domain error; no update happens.
	admin := &models.User{ID: "a1", Email: "admin@example.com", Role: models.RoleAdmin, IsActive: true}
	mockRepo.On("GetByEmail", admin.Email).Return(admin, nil).Once()
	_, err := authService.BanUser(admin.Email)
	assert.ErrorIs(t, err, apperrors.ErrDomain)
	mockRepo.AssertExpectations(t)

	// Banning a customer flips isActive.
	customer := &models.User{ID: "c1", Email: "cust@example.com", Role: models.RoleCustomer, IsActive: true}
	mockRepo.On("GetByEmail", customer.Email).Return(customer, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	banned, err := authService.BanUser(customer.Email)
	assert.NoError(t, err)
	assert.False(t, banned.IsActive)
	mockRepo.AssertExpectations(t)

	// Unban restores the flag.
	mockRepo.On("GetByEmail", customer.Email).Return(banned, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	unbanned, err := authService.UnbanUser(customer.Email)
	assert.NoError(t, err)
	assert.True(t, unbanned.IsActive)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_UpdateUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Updating someone else's profile is rejected before any lookup.
	_, err := authService.UpdateUser("victim@example.com", services.UpdateUserInput{}, "attacker@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// Changing to an email that is already taken is a conflict.
	user := &models.User{ID: "u1", Email: "me@example.com", Role: models.RoleCustomer, IsActive: true}
	taken := "taken@example.com"
	mockRepo.On("GetByEmail", "me@example.com").Return(user, nil).Once()
	mockRepo.On("GetByEmail", taken).Return(&models.User{ID: "u2", Email: taken}, nil).Once()
	_, err = authService.UpdateUser("me@example.com", services.UpdateUserInput{Email: &taken}, "me@example.com")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockRepo.AssertExpectations(t)

	// A free email goes through.
	free := "free@example.com"
	mockRepo.On("GetByEmail", "me@example.com").Return(user, nil).Once()
	mockRepo.On("GetByEmail", free).Return(nil, notFoundErr("user")).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	updated, err := authService.UpdateUser("me@example.com", services.UpdateUserInput{Email: &free}, "me@example.com")
	assert.NoError(t, err)
	assert.Equal(t, free, updated.Email)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RemoveUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	err := authService.RemoveUser("victim@example.com", "attacker@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	mockRepo.On("DeleteByEmail", "me@example.com").Return(nil).Once()
	assert.NoError(t, authService.RemoveUser("me@example.com", "me@example.com"))
	mockRepo.AssertExpectations(t)

	mockRepo.On("DeleteByEmail", "gone@example.com").Return(notFoundErr("user")).Once()
	err = authService.RemoveUser("gone@example.com", "gone@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
