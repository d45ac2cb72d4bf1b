package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/guestlink/newsletter-backend/internal/errs"
	"github.com/guestlink/newsletter-backend/pkg/logger"
)

const adminTokenTTL = 12 * time.Hour

// authService gates the admin editor behind the shared property password.
// There is no per-user identity: a correct password yields a short-lived
// admin token and nothing is persisted beyond its lifetime.
type authService struct {
	passwordHash []byte
	jwtSecret    []byte
	now          func() time.Time
}

func NewAuthService(passwordHash, jwtSecret string) *authService {
	return &authService{
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
		now:          time.Now,
	}
}

// CheckCredential reports whether the supplied password matches the
// configured bcrypt hash.
func (s *authService) CheckCredential(password string) bool {
	return bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
}

// Login exchanges the admin password for a signed token.
func (s *authService) Login(ctx context.Context, password string) (string, error) {
	log := logger.FromContext(ctx)

	if !s.CheckCredential(password) {
		log.Warn("admin login rejected")
		return "", errs.NewUnauthorizedError("invalid credentials")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(adminTokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", errs.NewExternalServiceError("auth", "failed to sign token", false, err)
	}

	log.Info("admin login accepted")
	return signed, nil
}

// VerifyToken validates an admin token's signature and expiry.
func (s *authService) VerifyToken(tokenStr string) error {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.NewUnauthorizedError("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return errs.NewUnauthorizedError("invalid or expired token")
	}
	return nil
}
