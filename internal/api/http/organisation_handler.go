package http

import (
	"encoding/json"
	"net/http"

	"civichub-backend/internal/domain"
	"civichub-backend/internal/pagination"
	"civichub-backend/internal/service"

	"github.com/gorilla/mux"
)

type OrganisationHandler struct {
	svc service.OrganisationService
}

func NewOrganisationHandler(svc service.OrganisationService) *OrganisationHandler {
	return &OrganisationHandler{svc: svc}
}

type registerOrganisationBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Type        string `json:"type"`
}

type organisationResponse struct {
	Success      bool                 `json:"success"`
	Organisation *domain.Organisation `json:"organisation"`
}

func (h *OrganisationHandler) RegisterOrganisation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var body registerOrganisationBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if body.Name == "" {
		respondError(w, http.StatusBadRequest, "organisation name is required")
		return
	}

	org := &domain.Organisation{
		Name:        body.Name,
		Description: body.Description,
		LogoURL:     body.LogoURL,
		Country:     body.Country,
		City:        body.City,
		Type:        body.Type,
	}
	if err := h.svc.RegisterOrganisation(r.Context(), actor.ProfileID, org); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, organisationResponse{Success: true, Organisation: org})
}

func (h *OrganisationHandler) GetOrganisation(w http.ResponseWriter, r *http.Request) {
	org, err := h.svc.GetOrganisation(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, organisationResponse{Success: true, Organisation: org})
}

type listOrganisationsResponse struct {
	Success       bool                  `json:"success"`
	Organisations []domain.Organisation `json:"organisations"`
	Meta          pagination.Meta       `json:"meta"`
}

// ListOrganisations lists or searches, depending on the name/country filters.
func (h *OrganisationHandler) ListOrganisations(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)
	name := r.URL.Query().Get("name")
	country := r.URL.Query().Get("country")

	var (
		orgs  []domain.Organisation
		total int
		err   error
	)
	if name != "" || country != "" {
		orgs, total, err = h.svc.SearchOrganisations(r.Context(), name, country, params.Limit, params.Offset())
	} else {
		orgs, total, err = h.svc.ListOrganisations(r.Context(), params.Limit, params.Offset())
	}
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listOrganisationsResponse{
		Success:       true,
		Organisations: orgs,
		Meta:          params.MetaFor(total),
	})
}

type updateOrganisationBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Type        string `json:"type"`
}

func (h *OrganisationHandler) UpdateOrganisation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var body updateOrganisationBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	org := &domain.Organisation{
		ID:          mux.Vars(r)["id"],
		Name:        body.Name,
		Description: body.Description,
		LogoURL:     body.LogoURL,
		Country:     body.Country,
		City:        body.City,
		Type:        body.Type,
	}
	if err := h.svc.UpdateOrganisation(r.Context(), actor, org); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type transitionOrganisationBody struct {
	Status string `json:"status"`
}

func (h *OrganisationHandler) TransitionOrganisation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var body transitionOrganisationBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	err := h.svc.TransitionOrganisation(r.Context(), actor, mux.Vars(r)["id"], domain.OrganisationStatus(body.Status))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type listMembersResponse struct {
	Success bool             `json:"success"`
	Members []domain.Profile `json:"members"`
	Meta    pagination.Meta  `json:"meta"`
}

func (h *OrganisationHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)
	members, total, err := h.svc.ListMembers(r.Context(), mux.Vars(r)["id"], params.Limit, params.Offset())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listMembersResponse{
		Success: true,
		Members: members,
		Meta:    params.MetaFor(total),
	})
}
