package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dstone/movie-club-server/internal/api/middleware"
	"github.com/dstone/movie-club-server/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if req.Name == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "Name and password are required")
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrNameExists) {
			respondError(w, http.StatusConflict, "name_exists", "Name already exists")
			return
		}
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		User: UserResponse{
			ID:      result.User.ID.String(),
			Name:    result.User.Name,
			IsAdmin: result.User.IsAdmin,
		},
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if req.Name == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "Name and password are required")
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "unauthorized", "Invalid credentials")
			return
		}
		if errors.Is(err, service.ErrAccountDeactivated) {
			respondError(w, http.StatusForbidden, "account_deactivated", "Account is deactivated")
			return
		}
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		User: UserResponse{
			ID:      result.User.ID.String(),
			Name:    result.User.Name,
			IsAdmin: result.User.IsAdmin,
		},
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusNotFound, "user_not_found", "User not found")
		return
	}

	respondJSON(w, http.StatusOK, UserResponse{
		ID:      user.ID.String(),
		Name:    user.Name,
		IsAdmin: user.IsAdmin,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
