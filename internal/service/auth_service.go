package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/buddybud/buddybud-api/internal/models"
	"github.com/buddybud/buddybud-api/internal/repository"
)

// TokenResponse carries an issued bearer token and its expiry.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Teacher   string    `json:"teacher"`
}

// AuthService issues JWTs for the single configured teacher account.
type AuthService interface {
	Login(ctx context.Context, username, password string) (TokenResponse, error)
}

// AuthConfig holds the credential pair and signing material for teacher login.
type AuthConfig struct {
	Username string
	Password string
	Secret   string
	TokenTTL time.Duration
}

type authService struct {
	teachers repository.TeacherRepository
	cfg      AuthConfig
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(teachers repository.TeacherRepository, cfg AuthConfig, logger zerolog.Logger) AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}

	return &authService{
		teachers: teachers,
		cfg:      cfg,
		logger:   logger.With().Str("component", "auth_service").Logger(),
		now:      time.Now,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (TokenResponse, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1
	if !usernameOK || !passwordOK {
		s.logger.Warn().Str("username", username).Msg("login rejected")
		return TokenResponse{}, ErrInvalidCredentials
	}

	teacher, err := s.teachers.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenResponse{}, ErrInvalidCredentials
		}
		return TokenResponse{}, err
	}

	token, expiresAt, err := s.issueToken(teacher)
	if err != nil {
		return TokenResponse{}, err
	}

	s.logger.Info().Uint("teacher_id", teacher.ID).Msg("teacher logged in")

	return TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Teacher:   teacher.Name,
	}, nil
}

func (s *authService) issueToken(teacher models.Teacher) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.cfg.TokenTTL)

	claims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", teacher.ID),
		"role": "teacher",
		"iat":  issuedAt.Unix(),
		"exp":  expiresAt.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}
