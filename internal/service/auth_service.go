package service

import (
	"crypto/subtle"
	"strings"
	"time"

	config "github.com/picturesmile/studio-api/configs"
	"github.com/picturesmile/studio-api/pkg/utils"
	"go.uber.org/zap"
)

const adminRole = "admin"

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AuthService interface {
	CheckCredentials(email, password string) bool
	Login(email, password string) (*Session, error)
	ValidateSession(token string) bool
}

type authService struct {
	cfg config.Auth
	ttl time.Duration
	log *zap.Logger
}

func NewAuthService(cfg config.Auth, ttl time.Duration, log *zap.Logger) AuthService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &authService{cfg: cfg, ttl: ttl, log: log}
}

func (s *authService) CheckCredentials(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(strings.TrimSpace(email))), []byte(strings.ToLower(s.cfg.AdminEmail))) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	return emailOK && passwordOK
}

func (s *authService) Login(email, password string) (*Session, error) {
	if !s.CheckCredentials(email, password) {
		s.log.Info("rejected admin login", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.cfg.SecretKey, adminRole, adminRole, s.ttl)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: time.Now().Add(s.ttl)}, nil
}

func (s *authService) ValidateSession(token string) bool {
	if token == "" {
		return false
	}
	claims, err := utils.ValidateToken(s.cfg.SecretKey, token)
	if err != nil {
		return false
	}
	return claims.Role == adminRole
}
