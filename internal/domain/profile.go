package domain

import "time"

// Profile is the application-level record for an authenticated user.
// Identity itself (credentials, sessions) lives in the external identity
// provider; this record only carries portal-facing data and the optional
// organisation affiliation.
type Profile struct {
	ID             string    `json:"id"`
	OrganisationID *string   `json:"organisation_id,omitempty"`
	DisplayName    string    `json:"display_name"`
	Email          string    `json:"email"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	Country        string    `json:"country,omitempty"`
	City           string    `json:"city,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Affiliated reports whether the profile is linked to an organisation.
func (p *Profile) Affiliated() bool {
	return p.OrganisationID != nil && *p.OrganisationID != ""
}
