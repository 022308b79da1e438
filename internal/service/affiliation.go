package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"civichub-backend/internal/cache"
	"civichub-backend/internal/domain"
	"civichub-backend/internal/logger"
	"civichub-backend/internal/messaging"
	"civichub-backend/internal/metrics"
	"civichub-backend/internal/repository"
)

type affiliationService struct {
	profileRepo repository.ProfileRepository
	orgRepo     repository.OrganisationRepository
	reqRepo     repository.AffiliationRequestRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
	publisher   messaging.PublisherInterface
	cache       cache.Cache
	metrics     *metrics.Registry
	cacheTTL    time.Duration
}

func NewAffiliationService(
	profileRepo repository.ProfileRepository,
	orgRepo repository.OrganisationRepository,
	reqRepo repository.AffiliationRequestRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	publisher messaging.PublisherInterface,
	c cache.Cache,
	m *metrics.Registry,
	cacheTTL time.Duration,
) AffiliationService {
	return &affiliationService{
		profileRepo: profileRepo,
		orgRepo:     orgRepo,
		reqRepo:     reqRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
		publisher:   publisher,
		cache:       c,
		metrics:     m,
		cacheTTL:    cacheTTL,
	}
}

func membershipCacheKey(profileID string) string {
	return "membership:" + profileID
}

// ComputeMembershipState derives the membership state from the four record
// lookups. Precedence: an organisation link beats a pending request, which
// beats a pending registration. Pure so it can be tested without a store.
func ComputeMembershipState(profile *domain.Profile, org *domain.Organisation, pendingReq *domain.AffiliationRequest, pendingOrg *domain.Organisation) domain.MembershipState {
	if profile.Affiliated() && org != nil {
		if org.CreatedBy == profile.ID {
			return domain.CreatedState{Organisation: *org}
		}
		return domain.AffiliatedState{Organisation: *org}
	}
	if pendingReq != nil {
		return domain.PendingAffiliationState{Request: *pendingReq}
	}
	if pendingOrg != nil {
		return domain.PendingRegistrationState{Organisation: *pendingOrg}
	}
	return domain.NoneState{}
}

func (s *affiliationService) ResolveMembership(ctx context.Context, profileID string) (domain.MembershipState, error) {
	key := membershipCacheKey(profileID)
	if cached, found := s.cache.Get(key); found {
		if state, ok := cached.(domain.MembershipState); ok {
			s.metrics.CacheHitsTotal.Inc()
			return state, nil
		}
	}
	s.metrics.CacheMissesTotal.Inc()

	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	// The later lookups are only issued when the earlier precedence levels
	// do not resolve; the final state matches the precedence rule either way.
	var org *domain.Organisation
	if profile.Affiliated() {
		org, err = s.orgRepo.GetByID(ctx, *profile.OrganisationID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to get organisation: %w", err)
		}
		// A dangling organisation link falls through to the later lookups.
	}

	var pendingReq *domain.AffiliationRequest
	var pendingOrg *domain.Organisation
	if org == nil {
		pendingReq, err = s.reqRepo.GetPendingByProfile(ctx, profileID)
		if err != nil {
			return nil, fmt.Errorf("failed to get pending affiliation request: %w", err)
		}
		if pendingReq == nil {
			pendingOrg, err = s.orgRepo.GetPendingByCreator(ctx, profileID)
			if err != nil {
				return nil, fmt.Errorf("failed to get pending organisation: %w", err)
			}
		}
	}

	state := ComputeMembershipState(profile, org, pendingReq, pendingOrg)
	s.cache.Set(key, state, s.cacheTTL)
	s.metrics.MembershipResolutionsTotal.WithLabelValues(string(state.Kind())).Inc()
	return state, nil
}

func (s *affiliationService) CreateAffiliationRequest(ctx context.Context, profileID, organisationID, message string) (*domain.AffiliationRequest, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile.Affiliated() {
		return nil, domain.ErrAlreadyAffiliated
	}

	org, err := s.orgRepo.GetByID(ctx, organisationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrganisationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organisation: %w", err)
	}
	if org.Status != domain.OrganisationStatusActive {
		return nil, domain.ErrOrganisationNotActive
	}

	req := &domain.AffiliationRequest{
		ProfileID:           profileID,
		OrganisationID:      organisationID,
		Message:             message,
		OrganisationName:    org.Name,
		OrganisationLogoURL: org.LogoURL,
	}
	if err := s.reqRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.cache.Delete(membershipCacheKey(profileID))
	s.metrics.AffiliationTransitionsTotal.WithLabelValues(string(domain.AffiliationRequestStatusPending)).Inc()

	s.notifyRequestReceived(ctx, org, profile)
	_ = s.publisher.Publish(ctx, messaging.EventAffiliationRequested, s.requestEvent(messaging.EventAffiliationRequested, req))

	return req, nil
}

func (s *affiliationService) UpdateAffiliationRequestStatus(ctx context.Context, actor domain.Actor, requestID string, status domain.AffiliationRequestStatus, response string) error {
	if status != domain.AffiliationRequestStatusApproved && status != domain.AffiliationRequestStatusRejected {
		return domain.ErrInvalidRequestStatus
	}

	req, err := s.reqRepo.GetByID(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrRequestNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get affiliation request: %w", err)
	}

	org, err := s.orgRepo.GetByID(ctx, req.OrganisationID)
	if err != nil {
		return fmt.Errorf("failed to get organisation: %w", err)
	}
	if !actor.PlatformAdmin && org.CreatedBy != actor.ProfileID {
		return domain.ErrNotAuthorized
	}

	if req.Status.Terminal() {
		return domain.ErrRequestAlreadyResolved
	}

	now := time.Now()
	if status == domain.AffiliationRequestStatusApproved {
		// Approval also links the requester's profile; the repository makes
		// both writes in one transaction guarded on the pending status.
		err = s.reqRepo.Approve(ctx, req, response, now)
	} else {
		err = s.reqRepo.UpdateStatus(ctx, requestID, status, response, now)
	}
	if err != nil {
		return err
	}
	req.Status = status
	req.AdminResponse = response
	req.RespondedAt = &now

	s.cache.Delete(membershipCacheKey(req.ProfileID))
	s.metrics.AffiliationTransitionsTotal.WithLabelValues(string(status)).Inc()

	s.notifyRequestDecision(ctx, org, req)

	event := messaging.EventAffiliationRejected
	if status == domain.AffiliationRequestStatusApproved {
		event = messaging.EventAffiliationApproved
	}
	_ = s.publisher.Publish(ctx, event, s.requestEvent(event, req))

	return nil
}

func (s *affiliationService) CancelAffiliationRequest(ctx context.Context, profileID, requestID string) error {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrRequestNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get affiliation request: %w", err)
	}
	if req.ProfileID != profileID {
		return domain.ErrNotAuthorized
	}
	if req.Status.Terminal() {
		return domain.ErrRequestAlreadyResolved
	}

	now := time.Now()
	if err := s.reqRepo.UpdateStatus(ctx, requestID, domain.AffiliationRequestStatusCancelled, "", now); err != nil {
		return err
	}
	req.Status = domain.AffiliationRequestStatusCancelled
	req.RespondedAt = &now

	s.cache.Delete(membershipCacheKey(profileID))
	s.metrics.AffiliationTransitionsTotal.WithLabelValues(string(domain.AffiliationRequestStatusCancelled)).Inc()
	_ = s.publisher.Publish(ctx, messaging.EventAffiliationCancelled, s.requestEvent(messaging.EventAffiliationCancelled, req))

	return nil
}

func (s *affiliationService) ListOrganisationAffiliationRequests(ctx context.Context, actor domain.Actor, organisationID string) ([]domain.AffiliationRequest, error) {
	org, err := s.orgRepo.GetByID(ctx, organisationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrganisationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organisation: %w", err)
	}
	if !actor.PlatformAdmin && org.CreatedBy != actor.ProfileID {
		return nil, domain.ErrNotAuthorized
	}
	return s.reqRepo.ListByOrganisation(ctx, organisationID)
}

func (s *affiliationService) requestEvent(eventType string, req *domain.AffiliationRequest) messaging.AffiliationRequestEvent {
	return messaging.AffiliationRequestEvent{
		BaseEvent: messaging.NewBaseEvent(eventType),
		Data: messaging.AffiliationRequestData{
			RequestID:      req.ID,
			ProfileID:      req.ProfileID,
			OrganisationID: req.OrganisationID,
			Status:         string(req.Status),
			RequestedAt:    req.RequestedAt,
			RespondedAt:    req.RespondedAt,
		},
	}
}

// notifyRequestReceived tells the organisation's admin about a new request.
// Notification failures are logged but never fail the workflow.
func (s *affiliationService) notifyRequestReceived(ctx context.Context, org *domain.Organisation, requester *domain.Profile) {
	note := &domain.Notification{
		ProfileID: org.CreatedBy,
		Type:      domain.NotificationTypeAffiliationRequested,
		Title:     "New affiliation request",
		Body:      fmt.Sprintf("%s has requested to join %s.", requester.DisplayName, org.Name),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.ErrorContext(ctx, "Failed to create notification", "profile_id", org.CreatedBy, "error", err)
	}

	admin, err := s.profileRepo.GetByID(ctx, org.CreatedBy)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to get organisation admin for email", "organisation_id", org.ID, "error", err)
		return
	}
	_ = s.emailSvc.SendAffiliationRequestReceived(ctx, admin.Email, requester.DisplayName, org.Name)
}

func (s *affiliationService) notifyRequestDecision(ctx context.Context, org *domain.Organisation, req *domain.AffiliationRequest) {
	noteType := domain.NotificationTypeAffiliationRejected
	title := "Affiliation request declined"
	body := fmt.Sprintf("Your request to join %s was declined.", org.Name)
	if req.Status == domain.AffiliationRequestStatusApproved {
		noteType = domain.NotificationTypeAffiliationApproved
		title = "Affiliation request approved"
		body = fmt.Sprintf("You are now a member of %s.", org.Name)
	}

	note := &domain.Notification{
		ProfileID: req.ProfileID,
		Type:      noteType,
		Title:     title,
		Body:      body,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.ErrorContext(ctx, "Failed to create notification", "profile_id", req.ProfileID, "error", err)
	}

	requester, err := s.profileRepo.GetByID(ctx, req.ProfileID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to get requester for email", "request_id", req.ID, "error", err)
		return
	}
	_ = s.emailSvc.SendAffiliationDecision(ctx, requester.Email, requester.DisplayName, org.Name, string(req.Status), req.AdminResponse)
}
