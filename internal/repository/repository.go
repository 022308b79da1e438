package repository

import (
	"context"
	"time"

	"civichub-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
	SetOrganisation(ctx context.Context, profileID string, organisationID *string) error
	ListByOrganisation(ctx context.Context, organisationID string, limit, offset int) ([]domain.Profile, int, error)
}

type OrganisationRepository interface {
	Create(ctx context.Context, o *domain.Organisation) error
	GetByID(ctx context.Context, id string) (*domain.Organisation, error)
	Update(ctx context.Context, o *domain.Organisation) error
	List(ctx context.Context, limit, offset int) ([]domain.Organisation, int, error)
	Search(ctx context.Context, name, country string, limit, offset int) ([]domain.Organisation, int, error)

	// UpdateStatus transitions the organisation's status with a guard on the
	// expected current status; a concurrent transition makes the guard miss
	// and surfaces domain.ErrInvalidStatusTransition.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrganisationStatus) error

	// Activate moves the organisation from pending_approval to active and
	// links the creator's profile to it in one transaction.
	Activate(ctx context.Context, o *domain.Organisation) error

	// GetPendingByCreator returns the creator's organisation still awaiting
	// platform approval, or (nil, nil) when there is none.
	GetPendingByCreator(ctx context.Context, creatorProfileID string) (*domain.Organisation, error)
}

type AffiliationRequestRepository interface {
	// Create inserts a pending request unless the (profile, organisation)
	// pair already has one pending, in which case it returns
	// domain.ErrDuplicatePendingRequest.
	Create(ctx context.Context, req *domain.AffiliationRequest) error

	GetByID(ctx context.Context, id string) (*domain.AffiliationRequest, error)

	// GetPendingByProfile returns the profile's most recent pending request
	// with organisation display fields attached, or (nil, nil) when none.
	GetPendingByProfile(ctx context.Context, profileID string) (*domain.AffiliationRequest, error)

	ListByOrganisation(ctx context.Context, organisationID string) ([]domain.AffiliationRequest, error)

	// UpdateStatus applies a terminal transition guarded on the request still
	// being pending; a miss surfaces domain.ErrRequestAlreadyResolved.
	UpdateStatus(ctx context.Context, id string, status domain.AffiliationRequestStatus, adminResponse string, respondedAt time.Time) error

	// Approve marks the request approved and links the requester's profile to
	// the target organisation in one transaction, with the same pending guard.
	Approve(ctx context.Context, req *domain.AffiliationRequest, adminResponse string, respondedAt time.Time) error

	// ExpireOlderThan cancels pending requests requested before the cutoff and
	// returns how many were affected.
	ExpireOlderThan(ctx context.Context, cutoff time.Time, adminResponse string) (int64, error)

	// ListPendingGroupedByOrganisation returns all pending requests across
	// organisations, oldest first, for the admin digest job.
	ListPendingGroupedByOrganisation(ctx context.Context) ([]domain.AffiliationRequest, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, profileID string, limit, offset int) ([]domain.Notification, int, error)
	MarkAsRead(ctx context.Context, id, profileID string) error
}
