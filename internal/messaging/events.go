package messaging

import (
	"time"

	"github.com/google/uuid"
)

// Event routing keys as constants
const (
	// Affiliation request events
	EventAffiliationRequested = "affiliation.requested"
	EventAffiliationApproved  = "affiliation.approved"
	EventAffiliationRejected  = "affiliation.rejected"
	EventAffiliationCancelled = "affiliation.cancelled"

	// Organisation events
	EventOrganisationRegistered    = "organisation.registered"
	EventOrganisationStatusChanged = "organisation.status_changed"
)

// BaseEvent contains common fields for all events.
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// AffiliationRequestEvent covers the request lifecycle: requested, approved,
// rejected, and cancelled share the same payload shape.
type AffiliationRequestEvent struct {
	BaseEvent
	Data AffiliationRequestData `json:"data"`
}

type AffiliationRequestData struct {
	RequestID      string     `json:"request_id"`
	ProfileID      string     `json:"profile_id"`
	OrganisationID string     `json:"organisation_id"`
	Status         string     `json:"status"`
	RequestedAt    time.Time  `json:"requested_at"`
	RespondedAt    *time.Time `json:"responded_at,omitempty"`
}

// OrganisationRegisteredEvent represents a new organisation registration.
type OrganisationRegisteredEvent struct {
	BaseEvent
	Data OrganisationRegisteredData `json:"data"`
}

type OrganisationRegisteredData struct {
	OrganisationID string    `json:"organisation_id"`
	Name           string    `json:"name"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// OrganisationStatusChangedEvent represents an organisation lifecycle change.
type OrganisationStatusChangedEvent struct {
	BaseEvent
	Data OrganisationStatusChangedData `json:"data"`
}

type OrganisationStatusChangedData struct {
	OrganisationID string    `json:"organisation_id"`
	OldStatus      string    `json:"old_status"`
	NewStatus      string    `json:"new_status"`
	ChangedBy      string    `json:"changed_by"`
	ChangedAt      time.Time `json:"changed_at"`
}

// NewBaseEvent creates a base event with common fields.
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		ServiceName: "civichub-backend",
	}
}
