package domain

type MembershipKind string

const (
	MembershipNone                MembershipKind = "none"
	MembershipAffiliated          MembershipKind = "affiliated"
	MembershipCreated             MembershipKind = "created"
	MembershipPendingAffiliation  MembershipKind = "pending_affiliation"
	MembershipPendingRegistration MembershipKind = "pending_registration"
)

// MembershipState is the resolved relationship between a profile and the
// organisation it belongs to (or is trying to join/register). Exactly one
// concrete state applies to a profile at any time; each state carries only
// the payload relevant to it.
type MembershipState interface {
	Kind() MembershipKind
}

// NoneState: no affiliation, no pending request, no pending registration.
type NoneState struct{}

// AffiliatedState: the profile belongs to an organisation it did not create.
type AffiliatedState struct {
	Organisation Organisation `json:"organisation"`
}

// CreatedState: the profile belongs to the organisation it created.
type CreatedState struct {
	Organisation Organisation `json:"organisation"`
}

// PendingAffiliationState: an affiliation request is awaiting an admin decision.
type PendingAffiliationState struct {
	Request AffiliationRequest `json:"request"`
}

// PendingRegistrationState: the profile registered an organisation that is
// awaiting platform approval.
type PendingRegistrationState struct {
	Organisation Organisation `json:"organisation"`
}

func (NoneState) Kind() MembershipKind                { return MembershipNone }
func (AffiliatedState) Kind() MembershipKind          { return MembershipAffiliated }
func (CreatedState) Kind() MembershipKind             { return MembershipCreated }
func (PendingAffiliationState) Kind() MembershipKind  { return MembershipPendingAffiliation }
func (PendingRegistrationState) Kind() MembershipKind { return MembershipPendingRegistration }
