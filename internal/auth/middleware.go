package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// CookieName is the HttpOnly cookie that carries the access token for
// browser clients.
const CookieName = "token"

// contextKey is unexported so no other package can read or overwrite the
// user ID stored by this package.
type contextKey string

const userIDKey contextKey = "userID"

var errNoToken = errors.New("auth: no token")

// TokenValidator is what RequireAuth needs from the token layer.
// *TokenService satisfies it.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// TokenValidatorFunc adapts a plain function, such as
// (*service.AuthService).ValidateToken, to TokenValidator.
type TokenValidatorFunc func(token string) (string, error)

func (f TokenValidatorFunc) Validate(token string) (string, error) { return f(token) }

// RequireAuth rejects requests without a valid access token with 401 and
// stores the authenticated user ID in the request context otherwise.
//
// Token lookup order:
//  1. Authorization: Bearer <jwt>   (API clients)
//  2. Cookie: token=<jwt>           (browsers, set at login)
func RequireAuth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthenticated","message":"valid authentication required"}` + "\n"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a copy of ctx carrying userID. Handler tests use it to
// fake an authenticated request without minting a token.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user's ID, or ("", false) when
// the request did not pass through RequireAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// TokenFromRequest returns the raw access token from the Authorization
// header or the cookie, header first.
func TokenFromRequest(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") && strings.TrimSpace(token) != "" {
			return strings.TrimSpace(token), nil
		}
		return "", errNoToken
	}

	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", errNoToken
	}
	return cookie.Value, nil
}

func extractUserID(r *http.Request, tokens TokenValidator) (string, error) {
	token, err := TokenFromRequest(r)
	if err != nil {
		return "", err
	}
	return tokens.Validate(token)
}
