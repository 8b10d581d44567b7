package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"appsuite-be/internal/cache"
	"appsuite-be/internal/entities"
	"appsuite-be/internal/jwt"
	"appsuite-be/internal/models"
	"appsuite-be/internal/repository"
)

const revokedTokenKey = "session:revoked:%s"

// dummyHash keeps Login timing the same whether or not the username exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("appsuite-dummy-password"), bcrypt.DefaultCost)

// Session is an issued session token.
type Session struct {
	Token     string
	Claims    *jwt.UserClaims
	ExpiresAt time.Time
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*entities.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*entities.User, *Session, error)
	// Logout revokes the token until it would have expired anyway.
	Logout(ctx context.Context, claims *jwt.UserClaims) error
	// Authenticate validates a token and rejects revoked ones.
	Authenticate(ctx context.Context, token string) (*jwt.UserClaims, error)
	DeleteAccount(ctx context.Context, claims *jwt.UserClaims) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
	cache      cache.Cache
	logger     *zap.Logger
	now        func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService, cacheClient cache.Cache, logger *zap.Logger) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		cache:      cacheClient,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*entities.User, error) {
	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	confirm := strings.TrimSpace(req.ConfirmPassword)

	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, invalid("This username already exists...")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if password != confirm {
		return nil, invalid("Passwords do not match")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, username, string(hashedPassword))
	if errors.Is(err, repository.ErrConflict) {
		// lost a race with a concurrent signup
		return nil, invalid("This username already exists...")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*entities.User, *Session, error) {
	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		return nil, nil, invalid("Username and password are required")
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, err
	}
	if user == nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	token, claims, err := s.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return user, &Session{Token: token, Claims: claims, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (s *authService) Logout(ctx context.Context, claims *jwt.UserClaims) error {
	if claims == nil {
		return nil
	}
	return s.revoke(ctx, claims)
}

func (s *authService) revoke(ctx context.Context, claims *jwt.UserClaims) error {
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.Set(ctx, fmt.Sprintf(revokedTokenKey, claims.ID), "1", ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*jwt.UserClaims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.cache.Exists(ctx, fmt.Sprintf(revokedTokenKey, claims.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to check token: %w", err)
	}
	if revoked {
		return nil, jwt.ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) DeleteAccount(ctx context.Context, claims *jwt.UserClaims) error {
	err := s.userRepo.Delete(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if err := s.revoke(ctx, claims); err != nil {
		s.logger.Warn("account deleted but token revocation failed", zap.String("user_id", claims.UserID), zap.Error(err))
	}
	s.logger.Info("account deleted", zap.String("user_id", claims.UserID))
	return nil
}
