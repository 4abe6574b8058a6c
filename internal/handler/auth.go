package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/mood-lantern/internal/apperror"
	"github.com/sakif/mood-lantern/internal/auth"
	"github.com/sakif/mood-lantern/internal/model"
	"github.com/sakif/mood-lantern/internal/service"
)

// AuthService is what AuthHandler needs from the service layer.
// *service.AuthService satisfies it; tests pass a fake.
type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// AuthHandler manages registration, login and the session cookie.
//
// HANDLER RESPONSIBILITIES:
//   - HandleRegister → create an account and log it in
//   - HandleLogin    → check credentials, issue a token
//   - HandleLogout   → clear the token cookie
//   - HandleMe       → return the logged-in user's profile
//
// The token is returned in the JSON body for API clients and also set as an
// HttpOnly cookie for browsers. RequireAuth accepts either.
type AuthHandler struct {
	auth     AuthService
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler. tokenTTL sets the cookie lifetime
// and should match the TokenService's TTL.
func NewAuthHandler(svc AuthService, tokenTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: svc, tokenTTL: tokenTTL, logger: logger}
}

type registerRequest struct {
	Name       string `json:"name"       validate:"required,max=100"`
	Email      string `json:"email"      validate:"required,email,max=254"`
	Password   string `json:"password"   validate:"required,min=6,max=72"`
	Prefecture string `json:"prefecture" validate:"max=20"`
	Birthday   string `json:"birthday"   validate:"omitempty,datetime=2006-01-02"`
	Gender     string `json:"gender"     validate:"omitempty,oneof=male female other"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// authResponse is the body of a successful register or login.
type authResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// HandleRegister creates an account.
//
// HTTP: POST /api/auth/register
// REQUEST BODY:
//
//	{"name":"山田太郎","email":"test@example.com","password":"password",
//	 "prefecture":"Tokyo","birthday":"1990-04-01","gender":"male"}
//
// 201 with {"user":{...},"token":"<jwt>"}; 409 if the email is taken.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	in := service.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Prefecture: req.Prefecture,
		Gender:     req.Gender,
	}
	if req.Birthday != "" {
		// Already checked by the datetime tag.
		b, err := time.Parse(model.DateLayout, req.Birthday)
		if err != nil {
			writeError(w, apperror.ValidationFailed("birthday", "birthday must be a date in YYYY-MM-DD format"))
			return
		}
		in.Birthday = &b
	}

	result, err := h.auth.Register(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setTokenCookie(w, result.Token)
	writeJSON(w, http.StatusCreated, authResponse{User: result.User, Token: result.Token})
}

// HandleLogin checks email and password.
//
// HTTP: POST /api/auth/login
// REQUEST BODY: {"email":"test@example.com","password":"password"}
//
// 200 with {"user":{...},"token":"<jwt>"}; 401 for a wrong email or password
// (the response does not say which).
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setTokenCookie(w, result.Token)
	writeJSON(w, http.StatusOK, authResponse{User: result.User, Token: result.Token})
}

// HandleLogout clears the token cookie.
//
// HTTP: POST /api/auth/logout
//
// Tokens are stateless, so a copied token stays valid until it expires;
// logout only removes the browser's copy.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleMe returns the authenticated user's profile.
//
// HTTP: GET /api/me   (RequireAuth)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("valid authentication required"))
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), userID)
	if err != nil {
		// A valid token for a user that no longer exists.
		h.logger.Warn("HandleMe: user lookup failed",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// setTokenCookie stores the JWT in an HttpOnly cookie. HttpOnly keeps it
// away from page scripts; SameSite=Lax keeps it off cross-site POSTs.
// Secure is left off so the cookie works over plain HTTP in development.
func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// requireUserID reads the ID RequireAuth stored, writing a 401 when it is
// missing. Every protected handler starts with it.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("valid authentication required"))
		return "", false
	}
	return userID, true
}
