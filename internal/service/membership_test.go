package service_test

import (
	"testing"
	"time"

	"civichub-backend/internal/domain"
	"civichub-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestComputeMembershipState(t *testing.T) {
	org := domain.Organisation{
		ID:        "org-1",
		Name:      "Riverdale Civic Alliance",
		Status:    domain.OrganisationStatusActive,
		CreatedBy: "profile-admin",
	}
	pendingOrg := domain.Organisation{
		ID:        "org-2",
		Name:      "New Collective",
		Status:    domain.OrganisationStatusPendingApproval,
		CreatedBy: "profile-1",
	}
	pendingReq := domain.AffiliationRequest{
		ID:             "req-1",
		ProfileID:      "profile-1",
		OrganisationID: "org-1",
		Status:         domain.AffiliationRequestStatusPending,
		RequestedAt:    time.Now(),
	}

	tests := []struct {
		name       string
		profile    *domain.Profile
		org        *domain.Organisation
		pendingReq *domain.AffiliationRequest
		pendingOrg *domain.Organisation
		want       domain.MembershipKind
	}{
		{
			name:    "no records resolves to none",
			profile: &domain.Profile{ID: "profile-1"},
			want:    domain.MembershipNone,
		},
		{
			name:    "linked to organisation created by someone else",
			profile: &domain.Profile{ID: "profile-1", OrganisationID: strPtr("org-1")},
			org:     &org,
			want:    domain.MembershipAffiliated,
		},
		{
			name:    "linked to organisation the profile created",
			profile: &domain.Profile{ID: "profile-admin", OrganisationID: strPtr("org-1")},
			org:     &org,
			want:    domain.MembershipCreated,
		},
		{
			name:       "pending request without a link",
			profile:    &domain.Profile{ID: "profile-1"},
			pendingReq: &pendingReq,
			want:       domain.MembershipPendingAffiliation,
		},
		{
			name:       "pending registration without a link or request",
			profile:    &domain.Profile{ID: "profile-1"},
			pendingOrg: &pendingOrg,
			want:       domain.MembershipPendingRegistration,
		},
		{
			name:       "organisation link wins over pending request",
			profile:    &domain.Profile{ID: "profile-1", OrganisationID: strPtr("org-1")},
			org:        &org,
			pendingReq: &pendingReq,
			want:       domain.MembershipAffiliated,
		},
		{
			name:       "pending request wins over pending registration",
			profile:    &domain.Profile{ID: "profile-1"},
			pendingReq: &pendingReq,
			pendingOrg: &pendingOrg,
			want:       domain.MembershipPendingAffiliation,
		},
		{
			name:       "dangling link falls back to pending registration",
			profile:    &domain.Profile{ID: "profile-1", OrganisationID: strPtr("org-gone")},
			pendingOrg: &pendingOrg,
			want:       domain.MembershipPendingRegistration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := service.ComputeMembershipState(tt.profile, tt.org, tt.pendingReq, tt.pendingOrg)
			assert.Equal(t, tt.want, state.Kind())
		})
	}
}

func TestComputeMembershipState_Payloads(t *testing.T) {
	org := domain.Organisation{ID: "org-1", Name: "Riverdale Civic Alliance", CreatedBy: "profile-admin"}

	t.Run("affiliated carries the organisation", func(t *testing.T) {
		profile := &domain.Profile{ID: "profile-1", OrganisationID: strPtr("org-1")}
		state := service.ComputeMembershipState(profile, &org, nil, nil)
		affiliated, ok := state.(domain.AffiliatedState)
		assert.True(t, ok)
		assert.Equal(t, "org-1", affiliated.Organisation.ID)
	})

	t.Run("pending affiliation carries the request", func(t *testing.T) {
		req := domain.AffiliationRequest{ID: "req-1", OrganisationName: "Riverdale Civic Alliance"}
		state := service.ComputeMembershipState(&domain.Profile{ID: "profile-1"}, nil, &req, nil)
		pending, ok := state.(domain.PendingAffiliationState)
		assert.True(t, ok)
		assert.Equal(t, "req-1", pending.Request.ID)
		assert.Equal(t, "Riverdale Civic Alliance", pending.Request.OrganisationName)
	})
}
