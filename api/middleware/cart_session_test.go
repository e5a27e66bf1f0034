package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chronovahq/chronova-backend/pkg/config"
	"github.com/google/uuid"
)

func testCartConfig() config.CartConfig {
	return config.CartConfig{
		TokenCookie:     "chronova_cart",
		CookieSecure:    false,
		CookieMaxAgeSec: 3600,
	}
}

func TestCartSessionMintsTokenWhenAbsent(t *testing.T) {
	var seen string
	handler := CartSession(testCartConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartTokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen == "" {
		t.Fatal("expected minted cart token in context")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("cart token is not a uuid: %v", err)
	}
	if header := resp.Header().Get("X-Cart-Token"); header != seen {
		t.Fatalf("expected header %s got %s", seen, header)
	}

	cookies := resp.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "chronova_cart" || cookies[0].Value != seen {
		t.Fatalf("expected cart cookie to carry the minted token, got %v", cookies)
	}
}

func TestCartSessionReusesCookieToken(t *testing.T) {
	existing := uuid.NewString()

	var seen string
	handler := CartSession(testCartConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartTokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "chronova_cart", Value: existing})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen != existing {
		t.Fatalf("expected token %s got %s", existing, seen)
	}
	if len(resp.Result().Cookies()) != 0 {
		t.Fatal("expected no new cookie when token already present")
	}
}

func TestCartSessionHeaderWinsOverCookie(t *testing.T) {
	headerToken := uuid.NewString()
	cookieToken := uuid.NewString()

	var seen string
	handler := CartSession(testCartConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartTokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Cart-Token", headerToken)
	req.AddCookie(&http.Cookie{Name: "chronova_cart", Value: cookieToken})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen != headerToken {
		t.Fatalf("expected header token %s got %s", headerToken, seen)
	}
}

func TestCartSessionRejectsMalformedToken(t *testing.T) {
	var seen string
	handler := CartSession(testCartConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartTokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Cart-Token", "not-a-uuid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen == "" || seen == "not-a-uuid" {
		t.Fatalf("expected fresh token, got %q", seen)
	}
}
