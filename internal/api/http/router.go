package http

import (
	"net/http"

	"civichub-backend/internal/metrics"
	"civichub-backend/internal/security"
	"civichub-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every handler under /api/v1 behind the auth middleware.
// Health and metrics stay outside so probes and scrapers need no token.
func NewRouter(
	affiliationSvc service.AffiliationService,
	organisationSvc service.OrganisationService,
	profileSvc service.ProfileService,
	notificationSvc service.NotificationService,
	tokenManager security.TokenManager,
	registry *metrics.Registry,
) *mux.Router {
	affiliationHandler := NewAffiliationHandler(affiliationSvc)
	organisationHandler := NewOrganisationHandler(organisationSvc)
	profileHandler := NewProfileHandler(profileSvc)
	notificationHandler := NewNotificationHandler(notificationSvc)

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(registry))

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokenManager))

	api.HandleFunc("/me", profileHandler.GetMe).Methods(http.MethodGet)
	api.HandleFunc("/me", profileHandler.UpdateMe).Methods(http.MethodPut)
	api.HandleFunc("/me/membership", affiliationHandler.ResolveMembership).Methods(http.MethodGet)
	api.HandleFunc("/me/notifications", notificationHandler.ListNotifications).Methods(http.MethodGet)
	api.HandleFunc("/me/notifications/{id}/read", notificationHandler.MarkAsRead).Methods(http.MethodPost)

	api.HandleFunc("/affiliation-requests", affiliationHandler.CreateAffiliationRequest).Methods(http.MethodPost)
	api.HandleFunc("/affiliation-requests/{id}/status", affiliationHandler.UpdateAffiliationRequestStatus).Methods(http.MethodPut)
	api.HandleFunc("/affiliation-requests/{id}/cancel", affiliationHandler.CancelAffiliationRequest).Methods(http.MethodPost)

	api.HandleFunc("/organisations", organisationHandler.RegisterOrganisation).Methods(http.MethodPost)
	api.HandleFunc("/organisations", organisationHandler.ListOrganisations).Methods(http.MethodGet)
	api.HandleFunc("/organisations/{id}", organisationHandler.GetOrganisation).Methods(http.MethodGet)
	api.HandleFunc("/organisations/{id}", organisationHandler.UpdateOrganisation).Methods(http.MethodPut)
	api.HandleFunc("/organisations/{id}/status", organisationHandler.TransitionOrganisation).Methods(http.MethodPut)
	api.HandleFunc("/organisations/{id}/members", organisationHandler.ListMembers).Methods(http.MethodGet)
	api.HandleFunc("/organisations/{id}/affiliation-requests", affiliationHandler.ListOrganisationAffiliationRequests).Methods(http.MethodGet)

	return r
}
