package http

import (
	"encoding/json"
	"net/http"

	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/internal/utils"
	"github.com/ayakimov/fielddoc/models"
)

type registerRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSONError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	tokens, err := h.services.AuthService.CreateTokens(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of tokens failed")
		utils.WriteJSONError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		User:         registeredUser,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSONError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	log.Debug().Str("id", foundUser.UserID).Msg("user successfully logged in")

	tokens, err := h.services.AuthService.CreateTokens(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of tokens failed")
		utils.WriteJSONError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		User:         foundUser,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSONError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if req.RefreshToken == "" {
		log.Error().Msg("refresh token is missing from request body")
		utils.WriteJSONError(w, "Refresh token is required", http.StatusBadRequest)
		return
	}

	accessToken, err := h.services.AuthService.RefreshAccessToken(ctx, req.RefreshToken)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.RefreshResponse{AccessToken: accessToken.String()}, http.StatusOK)
}
