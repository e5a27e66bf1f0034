package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/chronovahq/chronova-backend/pkg/config"
	"github.com/chronovahq/chronova-backend/pkg/logger"
)

const cartTokenHeader = "X-Cart-Token"

// CartSession resolves the cart token for the request, minting one when the
// shopper arrives without it. The token travels both as a cookie and as a
// response header so browser and non-browser clients can hold onto it.
func CartSession(cfg config.CartConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := resolveCartToken(r, cfg.TokenCookie)
			if token == "" {
				token = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.TokenCookie,
					Value:    token,
					Path:     "/",
					MaxAge:   cfg.CookieMaxAgeSec,
					HttpOnly: true,
					Secure:   cfg.CookieSecure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(cartTokenHeader, token)

			ctx := WithCartToken(r.Context(), token)
			if logg != nil {
				ctx = logg.WithCartToken(ctx, token)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveCartToken(r *http.Request, cookieName string) string {
	if header := strings.TrimSpace(r.Header.Get(cartTokenHeader)); header != "" {
		if _, err := uuid.Parse(header); err == nil {
			return header
		}
	}
	if cookie, err := r.Cookie(cookieName); err == nil {
		value := strings.TrimSpace(cookie.Value)
		if _, err := uuid.Parse(value); err == nil {
			return value
		}
	}
	return ""
}
