package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sharjeelfaiq/accounts-api/internal/core/domain"
	"github.com/sharjeelfaiq/accounts-api/internal/core/ports"
)

type AuthHandler struct {
	service ports.AuthService
	log     *slog.Logger
}

func NewAuthHandler(service ports.AuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

type signUpRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		respondWithError(w, h.log, domain.ErrInvalidPayload)
		return
	}

	role := domain.Role(req.Role)
	if role == "" {
		role = domain.RoleUser
	}

	message, err := h.service.SignUp(r.Context(), ports.SignUpInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      role,
	})
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"message": message})
}

type signInRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	IsRemembered bool   `json:"isRemembered"`
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		respondWithError(w, h.log, domain.ErrInvalidPayload)
		return
	}

	result, err := h.service.SignIn(r.Context(), req.Email, req.Password, req.IsRemembered)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	// The token travels in the response header only.
	w.Header().Set("Authorization", "Bearer "+result.Token)
	result.Token = ""
	respondWithJSON(w, http.StatusOK, result)
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		respondWithError(w, h.log, domain.ErrInvalidOrExpiredToken)
		return
	}

	message, err := h.service.SignOut(r.Context(), token)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": message})
}

type forgotPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.NewPassword == "" {
		respondWithError(w, h.log, domain.ErrInvalidPayload)
		return
	}

	message, err := h.service.ForgotPassword(r.Context(), req.Email, req.NewPassword)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": message})
}
