package http

import (
	"encoding/json"
	"net/http"

	"civichub-backend/internal/domain"
	"civichub-backend/internal/service"

	"github.com/gorilla/mux"
)

type AffiliationHandler struct {
	svc service.AffiliationService
}

func NewAffiliationHandler(svc service.AffiliationService) *AffiliationHandler {
	return &AffiliationHandler{svc: svc}
}

// MembershipResponse flattens the resolved state for the UI: the state tag
// plus whichever payload that state carries.
type MembershipResponse struct {
	Success      bool                       `json:"success"`
	State        domain.MembershipKind      `json:"state"`
	Organisation *domain.Organisation       `json:"organisation,omitempty"`
	Request      *domain.AffiliationRequest `json:"request,omitempty"`
}

func (h *AffiliationHandler) ResolveMembership(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	state, err := h.svc.ResolveMembership(r.Context(), actor.ProfileID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	resp := MembershipResponse{Success: true, State: state.Kind()}
	switch s := state.(type) {
	case domain.AffiliatedState:
		resp.Organisation = &s.Organisation
	case domain.CreatedState:
		resp.Organisation = &s.Organisation
	case domain.PendingAffiliationState:
		resp.Request = &s.Request
	case domain.PendingRegistrationState:
		resp.Organisation = &s.Organisation
	}
	respondJSON(w, http.StatusOK, resp)
}

type createAffiliationRequestBody struct {
	OrganisationID string `json:"organisation_id"`
	Message        string `json:"message"`
}

type createAffiliationRequestResponse struct {
	Success   bool   `json:"success"`
	RequestID string `json:"request_id"`
}

func (h *AffiliationHandler) CreateAffiliationRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var body createAffiliationRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if body.OrganisationID == "" {
		respondError(w, http.StatusBadRequest, "organisation_id is required")
		return
	}

	req, err := h.svc.CreateAffiliationRequest(r.Context(), actor.ProfileID, body.OrganisationID, body.Message)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, createAffiliationRequestResponse{Success: true, RequestID: req.ID})
}

type updateRequestStatusBody struct {
	Status   string `json:"status"`
	Response string `json:"response"`
}

func (h *AffiliationHandler) UpdateAffiliationRequestStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var body updateRequestStatusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	requestID := mux.Vars(r)["id"]
	err := h.svc.UpdateAffiliationRequestStatus(r.Context(), actor, requestID, domain.AffiliationRequestStatus(body.Status), body.Response)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AffiliationHandler) CancelAffiliationRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	requestID := mux.Vars(r)["id"]
	if err := h.svc.CancelAffiliationRequest(r.Context(), actor.ProfileID, requestID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type listRequestsResponse struct {
	Success  bool                        `json:"success"`
	Requests []domain.AffiliationRequest `json:"requests"`
	Total    int                         `json:"total"`
}

func (h *AffiliationHandler) ListOrganisationAffiliationRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	organisationID := mux.Vars(r)["id"]
	reqs, err := h.svc.ListOrganisationAffiliationRequests(r.Context(), actor, organisationID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listRequestsResponse{Success: true, Requests: reqs, Total: len(reqs)})
}
