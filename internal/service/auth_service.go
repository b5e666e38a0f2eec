package service

import (
	"errors"

	"go-collector-ledger/pkg/jwt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService authenticates the single configured operator and issues API
// tokens. There is no user table; the credential comes from the environment.
type AuthService interface {
	Login(email, password string) (string, error)
}

type authService struct {
	adminEmail   string
	passwordHash []byte
	log          *zap.Logger
}

// NewAuthService hashes the configured admin password once at startup.
func NewAuthService(adminEmail, adminPassword string, log *zap.Logger) (AuthService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &authService{
		adminEmail:   adminEmail,
		passwordHash: hash,
		log:          log,
	}, nil
}

func (s *authService) Login(email, password string) (string, error) {
	if email != s.adminEmail {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(email)
	if err != nil {
		return "", err
	}

	s.log.Info("operator logged in", zap.String("email", email))
	return token, nil
}
