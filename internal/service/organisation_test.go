package service_test

import (
	"context"
	"testing"
	"time"

	"civichub-backend/internal/cache"
	"civichub-backend/internal/domain"
	"civichub-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type organisationMocks struct {
	orgRepo     *MockOrganisationRepo
	profileRepo *MockProfileRepo
	noteRepo    *MockNotificationRepo
	emailSvc    *MockEmailService
	publisher   *MockPublisher
}

func newOrganisationService() (service.OrganisationService, *organisationMocks) {
	m := &organisationMocks{
		orgRepo:     new(MockOrganisationRepo),
		profileRepo: new(MockProfileRepo),
		noteRepo:    new(MockNotificationRepo),
		emailSvc:    new(MockEmailService),
		publisher:   new(MockPublisher),
	}
	m.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	svc := service.NewOrganisationService(
		m.orgRepo, m.profileRepo, m.noteRepo, m.emailSvc, m.publisher,
		cache.NewMemoryCache(time.Minute, time.Minute),
	)
	return svc, m
}

func TestOrganisationService_RegisterOrganisation(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatedInPendingApprovalWithoutLink", func(t *testing.T) {
		svc, m := newOrganisationService()
		m.profileRepo.On("GetByID", ctx, "p1").Return(&domain.Profile{ID: "p1"}, nil).Once()
		m.orgRepo.On("Create", ctx, mock.MatchedBy(func(o *domain.Organisation) bool {
			return o.Status == domain.OrganisationStatusPendingApproval && o.CreatedBy == "p1"
		})).Return(nil).Once()

		org := &domain.Organisation{Name: "New Collective"}
		err := svc.RegisterOrganisation(ctx, "p1", org)
		assert.NoError(t, err)
		// The creator's profile is linked at approval time, not registration.
		m.profileRepo.AssertNotCalled(t, "SetOrganisation", mock.Anything, mock.Anything, mock.Anything)
		m.orgRepo.AssertExpectations(t)
	})

	t.Run("AffiliatedCreatorRejected", func(t *testing.T) {
		svc, m := newOrganisationService()
		m.profileRepo.On("GetByID", ctx, "p1").Return(&domain.Profile{ID: "p1", OrganisationID: strPtr("org-9")}, nil).Once()

		err := svc.RegisterOrganisation(ctx, "p1", &domain.Organisation{Name: "New Collective"})
		assert.ErrorIs(t, err, domain.ErrAlreadyAffiliated)
		m.orgRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestOrganisationService_TransitionOrganisation(t *testing.T) {
	ctx := context.Background()
	platform := domain.Actor{ProfileID: "staff-1", PlatformAdmin: true}

	t.Run("ApprovalActivatesAndLinksCreator", func(t *testing.T) {
		svc, m := newOrganisationService()
		org := &domain.Organisation{ID: "org-1", Name: "New Collective", Status: domain.OrganisationStatusPendingApproval, CreatedBy: "p1"}
		m.orgRepo.On("GetByID", ctx, "org-1").Return(org, nil).Once()
		m.orgRepo.On("Activate", ctx, org).Return(nil).Once()
		m.noteRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		m.profileRepo.On("GetByID", ctx, "p1").Return(&domain.Profile{ID: "p1", Email: "p1@example.org"}, nil).Once()
		m.emailSvc.On("SendOrganisationStatusNotification", ctx, "p1@example.org", mock.Anything, "New Collective", "active").Return(nil).Once()

		err := svc.TransitionOrganisation(ctx, platform, "org-1", domain.OrganisationStatusActive)
		assert.NoError(t, err)
		m.orgRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.orgRepo.AssertExpectations(t)
	})

	t.Run("FlaggingUsesGuardedUpdate", func(t *testing.T) {
		svc, m := newOrganisationService()
		org := &domain.Organisation{ID: "org-1", Name: "Civic Alliance", Status: domain.OrganisationStatusActive, CreatedBy: "p1"}
		m.orgRepo.On("GetByID", ctx, "org-1").Return(org, nil).Once()
		m.orgRepo.On("UpdateStatus", ctx, "org-1", domain.OrganisationStatusActive, domain.OrganisationStatusFlagged).Return(nil).Once()
		m.noteRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		m.profileRepo.On("GetByID", ctx, "p1").Return(&domain.Profile{ID: "p1"}, nil).Once()
		m.emailSvc.On("SendOrganisationStatusNotification", ctx, mock.Anything, mock.Anything, mock.Anything, "flagged").Return(nil).Once()

		err := svc.TransitionOrganisation(ctx, platform, "org-1", domain.OrganisationStatusFlagged)
		assert.NoError(t, err)
		m.orgRepo.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything)
	})

	t.Run("NonPlatformAdminDenied", func(t *testing.T) {
		svc, m := newOrganisationService()
		err := svc.TransitionOrganisation(ctx, domain.Actor{ProfileID: "p1"}, "org-1", domain.OrganisationStatusActive)
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
		m.orgRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("IllegalTransitionRejected", func(t *testing.T) {
		svc, m := newOrganisationService()
		org := &domain.Organisation{ID: "org-1", Status: domain.OrganisationStatusInactive, CreatedBy: "p1"}
		m.orgRepo.On("GetByID", ctx, "org-1").Return(org, nil).Once()

		err := svc.TransitionOrganisation(ctx, platform, "org-1", domain.OrganisationStatusFlagged)
		assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	})
}

func TestOrganisationService_UpdateOrganisation(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatorMayUpdate", func(t *testing.T) {
		svc, m := newOrganisationService()
		existing := &domain.Organisation{ID: "org-1", CreatedBy: "p1"}
		m.orgRepo.On("GetByID", ctx, "org-1").Return(existing, nil).Once()
		m.orgRepo.On("Update", ctx, mock.Anything).Return(nil).Once()

		err := svc.UpdateOrganisation(ctx, domain.Actor{ProfileID: "p1"}, &domain.Organisation{ID: "org-1", Name: "Renamed"})
		assert.NoError(t, err)
	})

	t.Run("StrangerDenied", func(t *testing.T) {
		svc, m := newOrganisationService()
		existing := &domain.Organisation{ID: "org-1", CreatedBy: "p1"}
		m.orgRepo.On("GetByID", ctx, "org-1").Return(existing, nil).Once()

		err := svc.UpdateOrganisation(ctx, domain.Actor{ProfileID: "p2"}, &domain.Organisation{ID: "org-1"})
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
		m.orgRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestOrganisationTransitions(t *testing.T) {
	tests := []struct {
		from    domain.OrganisationStatus
		to      domain.OrganisationStatus
		allowed bool
	}{
		{domain.OrganisationStatusPendingApproval, domain.OrganisationStatusActive, true},
		{domain.OrganisationStatusPendingApproval, domain.OrganisationStatusFlagged, false},
		{domain.OrganisationStatusActive, domain.OrganisationStatusFlagged, true},
		{domain.OrganisationStatusActive, domain.OrganisationStatusInactive, true},
		{domain.OrganisationStatusActive, domain.OrganisationStatusPendingApproval, false},
		{domain.OrganisationStatusFlagged, domain.OrganisationStatusActive, true},
		{domain.OrganisationStatusFlagged, domain.OrganisationStatusInactive, true},
		{domain.OrganisationStatusInactive, domain.OrganisationStatusActive, true},
		{domain.OrganisationStatusInactive, domain.OrganisationStatusFlagged, false},
	}
	for _, tt := range tests {
		org := &domain.Organisation{Status: tt.from}
		assert.Equal(t, tt.allowed, org.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}
