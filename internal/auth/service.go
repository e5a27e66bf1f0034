package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgauth "github.com/chronovahq/chronova-backend/pkg/auth"
	"github.com/chronovahq/chronova-backend/pkg/auth/session"
	"github.com/chronovahq/chronova-backend/pkg/config"
	"github.com/chronovahq/chronova-backend/pkg/db/models"
	pkgerrors "github.com/chronovahq/chronova-backend/pkg/errors"
	"github.com/chronovahq/chronova-backend/pkg/logger"
	"github.com/chronovahq/chronova-backend/pkg/security"
	"gorm.io/gorm"
)

type adminFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// TokenPair is what the back-office client holds after login or refresh.
type TokenPair struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

// Service handles admin login, token refresh, and logout.
type Service interface {
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, accessID string) error
}

type service struct {
	admins   adminFinder
	sessions sessionManager
	jwt      config.JWTConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the admin auth service.
func NewService(admins adminFinder, sessions sessionManager, jwt config.JWTConfig, logg *logger.Logger) (Service, error) {
	if admins == nil {
		return nil, fmt.Errorf("admin repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	return &service{
		admins:   admins,
		sessions: sessions,
		jwt:      jwt,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Login verifies credentials and issues a token pair. Lookup and password
// failures both report the same unauthorized error so the endpoint cannot be
// used to probe for accounts.
func (s *service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidCredentials()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin")
	}

	ok, err := security.VerifyPassword(password, admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, invalidCredentials()
	}

	accessID := session.NewAccessID()
	pair, err := s.issuePair(ctx, admin, accessID)
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithAdminID(ctx, admin.ID.String())
		s.logg.Info(logCtx, "auth.login")
	}
	return pair, nil
}

// Refresh rotates the refresh token and mints a fresh access token. The old
// access token may be expired; only its signature and jti matter here.
func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error) {
	if strings.TrimSpace(accessToken) == "" || strings.TrimSpace(refreshToken) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "access and refresh tokens are required")
	}

	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwt, accessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}
	if claims.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	access, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.AccessTokenPayload{
		AdminID: claims.AdminID,
		Email:   claims.Email,
		JTI:     newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     newRefresh,
		ExpiresInSeconds: s.jwt.ExpirationMinutes * 60,
	}, nil
}

// Logout revokes the session behind the access token's jti.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id is required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) issuePair(ctx context.Context, admin *models.AdminUser, accessID string) (*TokenPair, error) {
	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	access, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.AccessTokenPayload{
		AdminID: admin.ID,
		Email:   admin.Email,
		JTI:     accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		ExpiresInSeconds: s.jwt.ExpirationMinutes * 60,
	}, nil
}

func invalidCredentials() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
}
