package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"civichub-backend/internal/domain"
	"civichub-backend/internal/service"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type profileResponse struct {
	Success bool            `json:"success"`
	Profile *domain.Profile `json:"profile"`
}

// GetMe returns the caller's profile, provisioning it on first login from the
// identity the token asserts.
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	profile, err := h.svc.GetProfile(r.Context(), claims.ProfileID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		profile = &domain.Profile{
			ID:          claims.ProfileID,
			Email:       claims.Email,
			DisplayName: claims.Email,
		}
		err = h.svc.CreateProfile(r.Context(), profile)
	}
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, profileResponse{Success: true, Profile: profile})
}

type updateProfileBody struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatar_url"`
	Country     string `json:"country"`
	City        string `json:"city"`
}

func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var body updateProfileBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if body.DisplayName == "" {
		respondError(w, http.StatusBadRequest, "display_name is required")
		return
	}

	profile := &domain.Profile{
		ID:          actor.ProfileID,
		DisplayName: body.DisplayName,
		Email:       body.Email,
		AvatarURL:   body.AvatarURL,
		Country:     body.Country,
		City:        body.City,
	}
	if err := h.svc.UpdateProfile(r.Context(), actor, profile); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
