package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"sareehouse/internal/models"
	"sareehouse/internal/repository"
)

const resetTokenTTL = 30 * time.Minute

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// Session is the result of a successful sign-in
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
	IsAdmin   bool         `json:"isAdmin"`
}

// AuthService owns identity: sign-up/sign-in/sign-out, password reset and
// the derived admin flag. Revoked tokens and reset tokens live in Redis;
// without Redis sign-out and reset degrade to no-ops that log a warning.
type AuthService struct {
	users    repository.UserRepositoryInterface
	redis    *redis.Client
	secret   []byte
	tokenTTL time.Duration
	logger   *logrus.Entry
}

func NewAuthService(users repository.UserRepositoryInterface, redisClient *redis.Client, jwtSecret string, tokenTTL time.Duration, logger *logrus.Logger) *AuthService {
	return &AuthService{
		users:    users,
		redis:    redisClient,
		secret:   []byte(jwtSecret),
		tokenTTL: tokenTTL,
		logger:   logger.WithField("component", "auth"),
	}
}

// SignUp registers a user and opportunistically upserts a profile from the
// sign-up metadata.
func (s *AuthService) SignUp(req models.SignUpRequest) (*Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.UserRoleCustomer,
	}
	if err := s.users.CreateUser(user); err != nil {
		return nil, err
	}

	if req.FirstName != "" || req.LastName != "" || req.Phone != "" {
		profile := &models.Profile{
			UserID:    user.ID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		}
		if err := s.users.UpsertProfile(profile); err != nil {
			s.logger.WithError(err).WithField("user_id", user.ID).Warn("Failed to upsert profile from sign-up metadata")
		} else {
			user.Profile = profile
		}
	}

	return s.issueSession(user)
}

// SignIn verifies credentials and issues a signed token
func (s *AuthService) SignIn(req models.SignInRequest) (*Session, error) {
	user, err := s.users.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(user)
}

// SignOut revokes the token's jti until its natural expiry
func (s *AuthService) SignOut(ctx context.Context, tokenID string, expiresAt time.Time) {
	if s.redis == nil {
		s.logger.Warn("Redis unavailable, sign-out is client-side only")
		return
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	if err := s.redis.Set(ctx, revokedTokenKey(tokenID), "1", ttl).Err(); err != nil {
		s.logger.WithError(err).Warn("Failed to revoke token")
	}
}

// IsRevoked reports whether a token id was signed out
func (s *AuthService) IsRevoked(ctx context.Context, tokenID string) bool {
	if s.redis == nil || tokenID == "" {
		return false
	}
	exists, err := s.redis.Exists(ctx, revokedTokenKey(tokenID)).Result()
	if err != nil {
		return false
	}
	return exists > 0
}

// Account returns the user with their profile, if any
func (s *AuthService) Account(userID uuid.UUID) (*models.User, error) {
	return s.users.GetUserByID(userID)
}

// ListCustomers returns registered users with their profiles, newest first.
func (s *AuthService) ListCustomers(limit, offset int) ([]models.User, int64, error) {
	return s.users.ListUsers(limit, offset)
}

// UpdateProfile merges the submitted fields into the user's profile
func (s *AuthService) UpdateProfile(userID uuid.UUID, req models.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.users.GetProfile(userID)
	if err != nil {
		if !errors.Is(err, repository.ErrProfileNotFound) {
			return nil, err
		}
		profile = &models.Profile{UserID: userID}
	}

	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.State != nil {
		profile.State = *req.State
	}
	if req.ZipCode != nil {
		profile.ZipCode = *req.ZipCode
	}

	if err := s.users.UpsertProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RequestPasswordReset stores a single-use token. The token is returned to
// be handed off to the mail pipeline; unknown emails succeed silently.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil
		}
		return "", err
	}
	if s.redis == nil {
		return "", errors.New("password reset unavailable: token store not configured")
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.redis.Set(ctx, resetTokenKey(token), user.ID.String(), resetTokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword consumes a reset token and sets the new password
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if s.redis == nil {
		return errors.New("password reset unavailable: token store not configured")
	}

	userIDStr, err := s.redis.GetDel(ctx, resetTokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrInvalidResetToken
		}
		return err
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.UpdatePassword(userID, string(hash))
}

// IsAdmin derives the admin flag from the user row. Fails closed: any
// error reads as "not an admin".
func (s *AuthService) IsAdmin(userID uuid.UUID) bool {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return false
	}
	return user.Role == models.UserRoleAdmin
}

func (s *AuthService) issueSession(user *models.User) (*Session, error) {
	expiresAt := time.Now().Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"admin": user.Role == models.UserRoleAdmin,
		"jti":   uuid.New().String(),
		"exp":   expiresAt.Unix(),
		"iat":   time.Now().Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		IsAdmin:   user.Role == models.UserRoleAdmin,
	}, nil
}

func revokedTokenKey(tokenID string) string {
	return "sareehouse:auth:revoked:" + tokenID
}

func resetTokenKey(token string) string {
	return "sareehouse:auth:reset:" + token
}
