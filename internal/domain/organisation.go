package domain

import "time"

type OrganisationStatus string

const (
	OrganisationStatusPendingApproval OrganisationStatus = "pending_approval"
	OrganisationStatusActive          OrganisationStatus = "active"
	OrganisationStatusFlagged         OrganisationStatus = "flagged"
	OrganisationStatusInactive        OrganisationStatus = "inactive"
)

type Organisation struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	LogoURL     string             `json:"logo_url,omitempty"`
	Country     string             `json:"country,omitempty"`
	City        string             `json:"city,omitempty"`
	Type        string             `json:"type,omitempty"`
	Status      OrganisationStatus `json:"status"`
	CreatedBy   string             `json:"created_by"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	MemberCount int32              `json:"member_count"` // Count of affiliated profiles, populated on reads
}

// organisationTransitions is the lifecycle graph:
// pending_approval -> active, active <-> flagged, active|flagged -> inactive,
// inactive -> active (reactivation).
var organisationTransitions = map[OrganisationStatus][]OrganisationStatus{
	OrganisationStatusPendingApproval: {OrganisationStatusActive},
	OrganisationStatusActive:          {OrganisationStatusFlagged, OrganisationStatusInactive},
	OrganisationStatusFlagged:         {OrganisationStatusActive, OrganisationStatusInactive},
	OrganisationStatusInactive:        {OrganisationStatusActive},
}

// CanTransitionTo reports whether the lifecycle graph allows moving from the
// organisation's current status to the target status.
func (o *Organisation) CanTransitionTo(target OrganisationStatus) bool {
	for _, next := range organisationTransitions[o.Status] {
		if next == target {
			return true
		}
	}
	return false
}
