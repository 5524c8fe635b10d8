package services

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/resumeiq/backend/repository"
)

type AuthEndpoints struct {
	authService *AuthService
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type VerifyRequest struct {
	Token string `json:"token"`
}

func NewAuthEndpoints(authService *AuthService) *AuthEndpoints {
	return &AuthEndpoints{
		authService: authService,
	}
}

// RegisterRoutes mounts the public endpoints.
func (e *AuthEndpoints) RegisterRoutes(r chi.Router) {
	r.Post("/register/", e.RegisterHandler)
	r.Post("/token/", e.TokenHandler)
	r.Post("/token/refresh/", e.RefreshHandler)
	r.Post("/token/verify/", e.VerifyHandler)
}

// RegisterProtectedRoutes mounts endpoints that need an authenticated user.
func (e *AuthEndpoints) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/logout/", e.LogoutHandler)
	r.Get("/me/", e.MeHandler)
}

func (e *AuthEndpoints) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := e.authService.Register(r.Context(), req.Username, req.Password, req.Email)
	switch {
	case errors.Is(err, repository.ErrUsernameTaken):
		writeError(w, http.StatusBadRequest, "A user with that username already exists.")
		return
	case errors.Is(err, ErrInvalidSignup):
		writeError(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), ErrInvalidSignup.Error()+": "))
		return
	case err != nil:
		slog.Error("Registration failed", "error", err, "username", req.Username)
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

func (e *AuthEndpoints) TokenHandler(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pair, err := e.authService.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "No active account found with the given credentials")
		return
	}
	if err != nil {
		slog.Error("Login failed", "error", err, "username", req.Username)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	e.authService.SetAuthCookies(w, pair.Access, pair.Refresh)
	writeJSON(w, http.StatusOK, pair)
}

func (e *AuthEndpoints) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Refresh == "" {
		req.Refresh = tokenFromCookie(r, refreshCookie)
	}
	if req.Refresh == "" {
		writeError(w, http.StatusBadRequest, "No refresh token provided")
		return
	}

	pair, err := e.authService.RefreshToken(r.Context(), req.Refresh)
	if errors.Is(err, ErrInvalidToken) {
		writeError(w, http.StatusUnauthorized, ErrInvalidToken.Error())
		return
	}
	if err != nil {
		slog.Error("Token refresh failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Token refresh failed")
		return
	}

	e.authService.SetAuthCookies(w, pair.Access, "")
	writeJSON(w, http.StatusOK, map[string]string{"access": pair.Access})
}

func (e *AuthEndpoints) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	if _, err := e.authService.VerifyAccessToken(r.Context(), req.Token); err != nil {
		if !errors.Is(err, ErrInvalidToken) {
			slog.Error("Token verification failed", "error", err)
		}
		writeError(w, http.StatusUnauthorized, ErrInvalidToken.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{})
}

func (e *AuthEndpoints) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	if err := e.authService.Logout(r.Context(), user.ID); err != nil {
		slog.Error("Logout failed", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Logout failed")
		return
	}

	e.authService.ClearAuthCookies(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (e *AuthEndpoints) MeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}
