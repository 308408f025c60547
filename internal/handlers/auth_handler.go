package handlers

import (
	"errors"
	"net/http"

	"golf-backend/internal/config"
	"golf-backend/internal/database"
	"golf-backend/internal/dto"
	"golf-backend/internal/middleware"
	"golf-backend/internal/services"
	"golf-backend/utils/response"
)

type AuthHandler struct {
	service *services.AuthService
	cookie  config.CookieConfig
}

func NewAuthHandler(db *database.DB, jwtSecret string, cookie config.CookieConfig) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "token"
	}
	return &AuthHandler{
		service: services.NewAuthService(db, jwtSecret),
		cookie:  cookie,
	}
}

func (h *AuthHandler) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: h.cookie.SameSite,
		MaxAge:   int(services.SessionTTL.Seconds()),
	})
}

func (h *AuthHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.service.RegisterUser(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to register user")
		return
	}

	h.setSession(w, token)
	response.Created(w, user, "User registered successfully")
}

func (h *AuthHandler) LoginUser(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginUserRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.service.LoginUser(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to login user")
		return
	}

	h.setSession(w, token)
	response.Success(w, user, "User logged in successfully")
}

// GetMe runs behind RequireAuth; a token for an account that no longer
// exists is treated like no session at all.
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		response.Error(w, http.StatusUnauthorized, "no user")
		return
	}

	user, err := h.service.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.Error(w, http.StatusUnauthorized, "no user")
			return
		}
		writeError(w, err, "Failed to get user")
		return
	}

	response.Success(w, user, "")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: h.cookie.SameSite,
		MaxAge:   -1,
	})
	response.Success(w, nil, "Logged out")
}
