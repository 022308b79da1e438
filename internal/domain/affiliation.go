package domain

import "time"

type AffiliationRequestStatus string

const (
	AffiliationRequestStatusPending   AffiliationRequestStatus = "pending"
	AffiliationRequestStatusApproved  AffiliationRequestStatus = "approved"
	AffiliationRequestStatusRejected  AffiliationRequestStatus = "rejected"
	AffiliationRequestStatusCancelled AffiliationRequestStatus = "cancelled"
)

// Terminal reports whether the status admits no further transition.
func (s AffiliationRequestStatus) Terminal() bool {
	return s == AffiliationRequestStatusApproved ||
		s == AffiliationRequestStatusRejected ||
		s == AffiliationRequestStatusCancelled
}

// AffiliationRequest is a profile's application to join an existing
// organisation, subject to approval by the organisation's admin.
type AffiliationRequest struct {
	ID             string                   `json:"id"`
	ProfileID      string                   `json:"profile_id"`
	OrganisationID string                   `json:"organisation_id"`
	Message        string                   `json:"request_message,omitempty"`
	AdminResponse  string                   `json:"admin_response,omitempty"`
	Status         AffiliationRequestStatus `json:"request_status"`
	RequestedAt    time.Time                `json:"requested_at"`
	RespondedAt    *time.Time               `json:"responded_at,omitempty"`

	// Denormalized organisation display fields, populated on reads for the UI.
	OrganisationName    string `json:"organisation_name,omitempty"`
	OrganisationLogoURL string `json:"organisation_logo_url,omitempty"`
}
