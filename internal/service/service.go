package service

import (
	"context"

	"civichub-backend/internal/domain"
)

type AffiliationService interface {
	// ResolveMembership returns the profile's current membership state,
	// exactly one of the five domain.MembershipState variants.
	ResolveMembership(ctx context.Context, profileID string) (domain.MembershipState, error)

	CreateAffiliationRequest(ctx context.Context, profileID, organisationID, message string) (*domain.AffiliationRequest, error)
	UpdateAffiliationRequestStatus(ctx context.Context, actor domain.Actor, requestID string, status domain.AffiliationRequestStatus, response string) error
	CancelAffiliationRequest(ctx context.Context, profileID, requestID string) error
	ListOrganisationAffiliationRequests(ctx context.Context, actor domain.Actor, organisationID string) ([]domain.AffiliationRequest, error)
}

type OrganisationService interface {
	RegisterOrganisation(ctx context.Context, creatorProfileID string, org *domain.Organisation) error
	TransitionOrganisation(ctx context.Context, actor domain.Actor, organisationID string, target domain.OrganisationStatus) error
	GetOrganisation(ctx context.Context, id string) (*domain.Organisation, error)
	UpdateOrganisation(ctx context.Context, actor domain.Actor, org *domain.Organisation) error
	ListOrganisations(ctx context.Context, limit, offset int) ([]domain.Organisation, int, error)
	SearchOrganisations(ctx context.Context, name, country string, limit, offset int) ([]domain.Organisation, int, error)
	ListMembers(ctx context.Context, organisationID string, limit, offset int) ([]domain.Profile, int, error)
}

type ProfileService interface {
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
	CreateProfile(ctx context.Context, p *domain.Profile) error
	UpdateProfile(ctx context.Context, actor domain.Actor, p *domain.Profile) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, profileID string, page, pageSize int) ([]domain.Notification, int, error)
	MarkAsRead(ctx context.Context, profileID, notificationID string) error
}

type EmailService interface {
	SendAffiliationRequestReceived(ctx context.Context, adminEmail, requesterName, orgName string) error
	SendAffiliationDecision(ctx context.Context, email, name, orgName, status, response string) error
	SendOrganisationStatusNotification(ctx context.Context, email, name, orgName, status string) error
	SendPendingRequestsDigest(ctx context.Context, adminEmail, orgName string, pendingCount int) error
}
