package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"sareehouse/internal/models"
	"sareehouse/internal/repository"
)

const testSecret = "test-secret"

func newAuthService(users *MockUserRepository) *AuthService {
	return NewAuthService(users, nil, testSecret, 72*time.Hour, testLogger())
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestSignUp_IssuesCustomerSession(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := newAuthService(mockUsers)

	mockUsers.On("CreateUser", mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "new@example.com" && u.Role == models.UserRoleCustomer && u.PasswordHash != "secret-password"
	})).Return(nil)
	mockUsers.On("UpsertProfile", mock.MatchedBy(func(p *models.Profile) bool {
		return p.FirstName == "Devi"
	})).Return(nil)

	session, err := service.SignUp(models.SignUpRequest{
		Email:     "new@example.com",
		Password:  "secret-password",
		FirstName: "Devi",
	})

	assert.NoError(t, err)
	assert.False(t, session.IsAdmin)
	assert.NotEmpty(t, session.Token)

	// the token carries sub, jti and a false admin claim
	token, err := jwt.Parse(session.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, false, claims["admin"])
	assert.NotEmpty(t, claims["jti"])
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := newAuthService(mockUsers)

	mockUsers.On("CreateUser", mock.Anything).Return(repository.ErrEmailTaken)

	_, err := service.SignUp(models.SignUpRequest{Email: "taken@example.com", Password: "secret-password"})

	assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestSignIn_WrongPassword(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := newAuthService(mockUsers)

	mockUsers.On("GetUserByEmail", "user@example.com").Return(&models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: hashed(t, "right-password"),
	}, nil)

	_, err := service.SignIn(models.SignInRequest{Email: "user@example.com", Password: "wrong-password"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignIn_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := newAuthService(mockUsers)

	mockUsers.On("GetUserByEmail", "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	_, err := service.SignIn(models.SignInRequest{Email: "ghost@example.com", Password: "whatever-pass"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignIn_AdminSessionCarriesAdminFlag(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := newAuthService(mockUsers)

	mockUsers.On("GetUserByEmail", "admin@example.com").Return(&models.User{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		PasswordHash: hashed(t, "admin-password"),
		Role:         models.UserRoleAdmin,
	}, nil)

	session, err := service.SignIn(models.SignInRequest{Email: "admin@example.com", Password: "admin-password"})

	assert.NoError(t, err)
	assert.True(t, session.IsAdmin)
}

func TestRequestPasswordReset_UnknownEmailSucceedsSilently(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := newAuthService(mockUsers)

	mockUsers.On("GetUserByEmail", "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	token, err := service.RequestPasswordReset(context.Background(), "ghost@example.com")

	assert.NoError(t, err)
	assert.Empty(t, token)
}

func TestIsAdmin_FailsClosed(t *testing.T) {
	userID := uuid.New()

	mockUsers := new(MockUserRepository)
	service := newAuthService(mockUsers)

	mockUsers.On("GetUserByID", userID).Return(nil, repository.ErrUserNotFound)

	assert.False(t, service.IsAdmin(userID))
}

func TestIsAdmin_CustomerIsNotAdmin(t *testing.T) {
	userID := uuid.New()

	mockUsers := new(MockUserRepository)
	service := newAuthService(mockUsers)

	mockUsers.On("GetUserByID", userID).Return(&models.User{ID: userID, Role: models.UserRoleCustomer}, nil)

	assert.False(t, service.IsAdmin(userID))
}

func TestIsRevoked_WithoutRedisNeverBlocks(t *testing.T) {
	service := newAuthService(new(MockUserRepository))

	assert.False(t, service.IsRevoked(context.Background(), "any-jti"))
}
