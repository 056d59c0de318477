package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-caixa-pos/internal/repository"
	"go-caixa-pos/pkg/jwt"

	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidCredentials = errors.New("email and password are required")
	ErrNotLoggedIn        = errors.New("no operator is logged in")
)

// AuthService records which operator is using the terminal. Any non-empty
// email and password pair is accepted; this identifies the operator on
// ledger movements and is not an access control mechanism.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (string, error)
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Operator  string    `json:"operator"`
	ExpiresAt time.Time `json:"expires_at"`
}

type authService struct {
	authRepo repository.AuthRepository
	tokenTTL time.Duration
}

func NewAuthService(authRepo repository.AuthRepository, tokenTTL time.Duration) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &authService{authRepo: authRepo, tokenTTL: tokenTTL}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if err := s.authRepo.SetLoggedIn(ctx, email); err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	token, err := jwt.GenerateToken(email, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	log.Info().Str("operator", email).Msg("operator logged in")
	return &LoginResponse{Token: token, Operator: email, ExpiresAt: expiresAt}, nil
}

// Logout clears the login flag and operator identity. The open cash drawer,
// if any, stays open.
func (s *authService) Logout(ctx context.Context) error {
	if err := s.authRepo.Clear(ctx); err != nil {
		return err
	}
	log.Info().Msg("operator logged out")
	return nil
}

func (s *authService) Current(ctx context.Context) (string, error) {
	email, err := s.authRepo.Current(ctx)
	if err != nil {
		return "", err
	}
	if email == "" {
		return "", ErrNotLoggedIn
	}
	return email, nil
}
