package http

import (
	"net/http"

	"civichub-backend/internal/domain"
	"civichub-backend/internal/pagination"
	"civichub-backend/internal/service"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

type listNotificationsResponse struct {
	Success       bool                  `json:"success"`
	Notifications []domain.Notification `json:"notifications"`
	Meta          pagination.Meta       `json:"meta"`
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	params := pagination.ParseParams(r)
	notes, total, err := h.svc.GetNotifications(r.Context(), actor.ProfileID, params.Page, params.Limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listNotificationsResponse{
		Success:       true,
		Notifications: notes,
		Meta:          params.MetaFor(total),
	})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.svc.MarkAsRead(r.Context(), actor.ProfileID, mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
