package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/backoffice/catalog-api/internal/core/domain"
	"github.com/backoffice/catalog-api/internal/core/ports"
)

// TokenConfig carries the JWT signing parameters.
type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// AuthService implements registration and login.
type AuthService struct {
	repo  ports.AuthRepository
	token TokenConfig
	log   zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, token TokenConfig, log zerolog.Logger) *AuthService {
	if token.TTL <= 0 {
		token.TTL = time.Hour
	}
	return &AuthService{repo: repo, token: token, log: log}
}

// Register creates a new account. The role is always the default: clients
// cannot self-assign Admin through the public endpoint.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			s.log.Warn().Str("username", username).Msg("registration rejected, username taken")
		}
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues a signed token. Unknown usernames,
// inactive accounts, and wrong passwords all collapse into
// domain.ErrInvalidCredentials so the response reveals nothing.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username, true)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Str("username", username).Msg("login failed, unknown or inactive user")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Warn().Str("username", username).Msg("login failed, wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	expiration := time.Now().Add(s.token.TTL)
	token, err := s.generateToken(user, expiration)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Time("expiration", expiration).Msg("user authenticated")

	return &ports.LoginResult{
		Token:      token,
		Expiration: expiration,
		Username:   user.Username,
		Role:       user.Role,
		UserID:     user.ID,
	}, nil
}

func (s *AuthService) generateToken(user *domain.User, expiration time.Time) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"role":     user.Role,
		"user_id":  user.ID,
		"iss":      s.token.Issuer,
		"aud":      s.token.Audience,
		"iat":      time.Now().Unix(),
		"exp":      expiration.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.token.Secret))
}
