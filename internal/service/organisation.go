package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"civichub-backend/internal/cache"
	"civichub-backend/internal/domain"
	"civichub-backend/internal/logger"
	"civichub-backend/internal/messaging"
	"civichub-backend/internal/repository"
)

type organisationService struct {
	orgRepo     repository.OrganisationRepository
	profileRepo repository.ProfileRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
	publisher   messaging.PublisherInterface
	cache       cache.Cache
}

func NewOrganisationService(
	orgRepo repository.OrganisationRepository,
	profileRepo repository.ProfileRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	publisher messaging.PublisherInterface,
	c cache.Cache,
) OrganisationService {
	return &organisationService{
		orgRepo:     orgRepo,
		profileRepo: profileRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
		publisher:   publisher,
		cache:       c,
	}
}

// RegisterOrganisation creates the organisation in pending_approval. The
// creator's profile is linked only when the platform approves it; until then
// the membership resolver reports pending_registration.
func (s *organisationService) RegisterOrganisation(ctx context.Context, creatorProfileID string, org *domain.Organisation) error {
	creator, err := s.profileRepo.GetByID(ctx, creatorProfileID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get creator profile: %w", err)
	}
	if creator.Affiliated() {
		return domain.ErrAlreadyAffiliated
	}

	org.CreatedBy = creatorProfileID
	org.Status = domain.OrganisationStatusPendingApproval
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return fmt.Errorf("failed to create organisation: %w", err)
	}

	s.cache.Delete(membershipCacheKey(creatorProfileID))

	_ = s.publisher.Publish(ctx, messaging.EventOrganisationRegistered, messaging.OrganisationRegisteredEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventOrganisationRegistered),
		Data: messaging.OrganisationRegisteredData{
			OrganisationID: org.ID,
			Name:           org.Name,
			CreatedBy:      org.CreatedBy,
			CreatedAt:      org.CreatedAt,
		},
	})

	return nil
}

// TransitionOrganisation applies a lifecycle transition. Platform admins only;
// activation additionally links the creator's profile to the organisation.
func (s *organisationService) TransitionOrganisation(ctx context.Context, actor domain.Actor, organisationID string, target domain.OrganisationStatus) error {
	if !actor.PlatformAdmin {
		return domain.ErrNotAuthorized
	}

	org, err := s.orgRepo.GetByID(ctx, organisationID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrOrganisationNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get organisation: %w", err)
	}
	if !org.CanTransitionTo(target) {
		return domain.ErrInvalidStatusTransition
	}

	from := org.Status
	if from == domain.OrganisationStatusPendingApproval && target == domain.OrganisationStatusActive {
		err = s.orgRepo.Activate(ctx, org)
	} else {
		err = s.orgRepo.UpdateStatus(ctx, organisationID, from, target)
	}
	if err != nil {
		return err
	}
	org.Status = target

	s.cache.Delete(membershipCacheKey(org.CreatedBy))

	s.notifyStatusChange(ctx, org, from)

	_ = s.publisher.Publish(ctx, messaging.EventOrganisationStatusChanged, messaging.OrganisationStatusChangedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventOrganisationStatusChanged),
		Data: messaging.OrganisationStatusChangedData{
			OrganisationID: org.ID,
			OldStatus:      string(from),
			NewStatus:      string(target),
			ChangedBy:      actor.ProfileID,
			ChangedAt:      org.UpdatedAt,
		},
	})

	return nil
}

func (s *organisationService) GetOrganisation(ctx context.Context, id string) (*domain.Organisation, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrganisationNotFound
	}
	return org, err
}

func (s *organisationService) UpdateOrganisation(ctx context.Context, actor domain.Actor, org *domain.Organisation) error {
	existing, err := s.orgRepo.GetByID(ctx, org.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrOrganisationNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get organisation: %w", err)
	}
	if !actor.PlatformAdmin && existing.CreatedBy != actor.ProfileID {
		return domain.ErrNotAuthorized
	}
	return s.orgRepo.Update(ctx, org)
}

func (s *organisationService) ListOrganisations(ctx context.Context, limit, offset int) ([]domain.Organisation, int, error) {
	return s.orgRepo.List(ctx, limit, offset)
}

func (s *organisationService) SearchOrganisations(ctx context.Context, name, country string, limit, offset int) ([]domain.Organisation, int, error) {
	return s.orgRepo.Search(ctx, name, country, limit, offset)
}

func (s *organisationService) ListMembers(ctx context.Context, organisationID string, limit, offset int) ([]domain.Profile, int, error) {
	return s.profileRepo.ListByOrganisation(ctx, organisationID, limit, offset)
}

func (s *organisationService) notifyStatusChange(ctx context.Context, org *domain.Organisation, from domain.OrganisationStatus) {
	note := &domain.Notification{
		ProfileID: org.CreatedBy,
		Type:      domain.NotificationTypeOrganisationStatus,
		Title:     "Organisation status updated",
		Body:      fmt.Sprintf("%s is now %s.", org.Name, org.Status),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.ErrorContext(ctx, "Failed to create notification", "profile_id", org.CreatedBy, "error", err)
	}

	creator, err := s.profileRepo.GetByID(ctx, org.CreatedBy)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to get creator for email", "organisation_id", org.ID, "error", err)
		return
	}
	_ = s.emailSvc.SendOrganisationStatusNotification(ctx, creator.Email, creator.DisplayName, org.Name, string(org.Status))
}
