package auth

import (
	"context"
	"testing"
	"time"

	pkgauth "github.com/chronovahq/chronova-backend/pkg/auth"
	"github.com/chronovahq/chronova-backend/pkg/auth/session"
	"github.com/chronovahq/chronova-backend/pkg/config"
	"github.com/chronovahq/chronova-backend/pkg/db/models"
	pkgerrors "github.com/chronovahq/chronova-backend/pkg/errors"
	"github.com/chronovahq/chronova-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubAdmins struct {
	admin *models.AdminUser
}

func (s stubAdmins) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	if s.admin != nil && s.admin.Email == email {
		return s.admin, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubSessions struct {
	generated []string
	revoked   []string
	rotateErr error
}

func (s *stubSessions) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-" + accessID, nil
}

func (s *stubSessions) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	if provided != "refresh-"+oldAccessID {
		return "", "", session.ErrInvalidRefreshToken
	}
	next := uuid.NewString()
	return next, "refresh-" + next, nil
}

func (s *stubSessions) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "chronova-test",
		ExpirationMinutes: 15,
	}
}

func seedAdmin(t *testing.T, password string) *models.AdminUser {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.AdminUser{
		ID:           uuid.New(),
		Email:        "ops@chronova.shop",
		PasswordHash: hash,
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	admin := seedAdmin(t, "orbital-horology")
	sessions := &stubSessions{}
	svc, err := NewService(stubAdmins{admin: admin}, sessions, testJWTConfig(), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	pair, err := svc.Login(context.Background(), "ops@chronova.shop", "orbital-horology")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}
	if pair.ExpiresInSeconds != 15*60 {
		t.Fatalf("expected 900s expiry got %d", pair.ExpiresInSeconds)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.AdminID != admin.ID {
		t.Fatalf("expected admin id %s got %s", admin.ID, claims.AdminID)
	}
	if len(sessions.generated) != 1 || sessions.generated[0] != claims.ID {
		t.Fatalf("session must be keyed by jti, got %v vs %s", sessions.generated, claims.ID)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	admin := seedAdmin(t, "orbital-horology")
	svc, _ := NewService(stubAdmins{admin: admin}, &stubSessions{}, testJWTConfig(), nil)

	_, err := svc.Login(context.Background(), "ops@chronova.shop", "wrong")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized got %v", err)
	}
}

func TestLoginUnknownEmailMatchesWrongPassword(t *testing.T) {
	admin := seedAdmin(t, "orbital-horology")
	svc, _ := NewService(stubAdmins{admin: admin}, &stubSessions{}, testJWTConfig(), nil)

	_, unknownErr := svc.Login(context.Background(), "nobody@chronova.shop", "orbital-horology")
	_, wrongErr := svc.Login(context.Background(), "ops@chronova.shop", "wrong")
	if unknownErr == nil || wrongErr == nil {
		t.Fatal("expected both logins to fail")
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("errors must be indistinguishable: %q vs %q", unknownErr, wrongErr)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	admin := seedAdmin(t, "orbital-horology")
	sessions := &stubSessions{}
	svc, _ := NewService(stubAdmins{admin: admin}, sessions, testJWTConfig(), nil)

	pair, err := svc.Login(context.Background(), "ops@chronova.shop", "orbital-horology")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), pair.AccessToken, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == pair.AccessToken {
		t.Fatal("expected a new access token")
	}
	if refreshed.RefreshToken == pair.RefreshToken {
		t.Fatal("expected a new refresh token")
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), refreshed.AccessToken)
	if err != nil {
		t.Fatalf("parse refreshed token: %v", err)
	}
	if claims.AdminID != admin.ID {
		t.Fatalf("refreshed token must keep the admin identity")
	}
}

func TestRefreshAcceptsExpiredAccessToken(t *testing.T) {
	admin := seedAdmin(t, "orbital-horology")
	sessions := &stubSessions{}
	svc, _ := NewService(stubAdmins{admin: admin}, sessions, testJWTConfig(), nil)

	accessID := session.NewAccessID()
	if _, err := sessions.Generate(context.Background(), accessID); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	expired, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now().Add(-2*time.Hour), pkgauth.AccessTokenPayload{
		AdminID: admin.ID,
		Email:   admin.Email,
		JTI:     accessID,
	})
	if err != nil {
		t.Fatalf("mint expired token: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), expired, "refresh-"+accessID); err != nil {
		t.Fatalf("refresh with expired access token: %v", err)
	}
}

func TestRefreshRejectsMismatchedToken(t *testing.T) {
	admin := seedAdmin(t, "orbital-horology")
	svc, _ := NewService(stubAdmins{admin: admin}, &stubSessions{}, testJWTConfig(), nil)

	pair, err := svc.Login(context.Background(), "ops@chronova.shop", "orbital-horology")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err = svc.Refresh(context.Background(), pair.AccessToken, "stolen-token")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	admin := seedAdmin(t, "orbital-horology")
	sessions := &stubSessions{}
	svc, _ := NewService(stubAdmins{admin: admin}, sessions, testJWTConfig(), nil)

	if err := svc.Logout(context.Background(), "some-jti"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "some-jti" {
		t.Fatalf("expected revoke call got %v", sessions.revoked)
	}
}
