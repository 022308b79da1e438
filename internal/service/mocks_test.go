package service_test

import (
	"context"
	"time"

	"civichub-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockProfileRepo
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProfileRepo) SetOrganisation(ctx context.Context, profileID string, organisationID *string) error {
	args := m.Called(ctx, profileID, organisationID)
	return args.Error(0)
}
func (m *MockProfileRepo) ListByOrganisation(ctx context.Context, organisationID string, limit, offset int) ([]domain.Profile, int, error) {
	args := m.Called(ctx, organisationID, limit, offset)
	return args.Get(0).([]domain.Profile), args.Int(1), args.Error(2)
}

// MockOrganisationRepo
type MockOrganisationRepo struct {
	mock.Mock
}

func (m *MockOrganisationRepo) Create(ctx context.Context, o *domain.Organisation) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrganisationRepo) GetByID(ctx context.Context, id string) (*domain.Organisation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organisation), args.Error(1)
}
func (m *MockOrganisationRepo) Update(ctx context.Context, o *domain.Organisation) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrganisationRepo) List(ctx context.Context, limit, offset int) ([]domain.Organisation, int, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Organisation), args.Int(1), args.Error(2)
}
func (m *MockOrganisationRepo) Search(ctx context.Context, name, country string, limit, offset int) ([]domain.Organisation, int, error) {
	args := m.Called(ctx, name, country, limit, offset)
	return args.Get(0).([]domain.Organisation), args.Int(1), args.Error(2)
}
func (m *MockOrganisationRepo) UpdateStatus(ctx context.Context, id string, from, to domain.OrganisationStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
func (m *MockOrganisationRepo) Activate(ctx context.Context, o *domain.Organisation) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrganisationRepo) GetPendingByCreator(ctx context.Context, creatorProfileID string) (*domain.Organisation, error) {
	args := m.Called(ctx, creatorProfileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organisation), args.Error(1)
}

// MockAffiliationRequestRepo
type MockAffiliationRequestRepo struct {
	mock.Mock
}

func (m *MockAffiliationRequestRepo) Create(ctx context.Context, req *domain.AffiliationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockAffiliationRequestRepo) GetByID(ctx context.Context, id string) (*domain.AffiliationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AffiliationRequest), args.Error(1)
}
func (m *MockAffiliationRequestRepo) GetPendingByProfile(ctx context.Context, profileID string) (*domain.AffiliationRequest, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AffiliationRequest), args.Error(1)
}
func (m *MockAffiliationRequestRepo) ListByOrganisation(ctx context.Context, organisationID string) ([]domain.AffiliationRequest, error) {
	args := m.Called(ctx, organisationID)
	return args.Get(0).([]domain.AffiliationRequest), args.Error(1)
}
func (m *MockAffiliationRequestRepo) UpdateStatus(ctx context.Context, id string, status domain.AffiliationRequestStatus, adminResponse string, respondedAt time.Time) error {
	args := m.Called(ctx, id, status, adminResponse, respondedAt)
	return args.Error(0)
}
func (m *MockAffiliationRequestRepo) Approve(ctx context.Context, req *domain.AffiliationRequest, adminResponse string, respondedAt time.Time) error {
	args := m.Called(ctx, req, adminResponse, respondedAt)
	return args.Error(0)
}
func (m *MockAffiliationRequestRepo) ExpireOlderThan(ctx context.Context, cutoff time.Time, adminResponse string) (int64, error) {
	args := m.Called(ctx, cutoff, adminResponse)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockAffiliationRequestRepo) ListPendingGroupedByOrganisation(ctx context.Context) ([]domain.AffiliationRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AffiliationRequest), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, profileID string, limit, offset int) ([]domain.Notification, int, error) {
	args := m.Called(ctx, profileID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Int(1), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, profileID string) error {
	args := m.Called(ctx, id, profileID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendAffiliationRequestReceived(ctx context.Context, adminEmail, requesterName, orgName string) error {
	args := m.Called(ctx, adminEmail, requesterName, orgName)
	return args.Error(0)
}
func (m *MockEmailService) SendAffiliationDecision(ctx context.Context, email, name, orgName, status, response string) error {
	args := m.Called(ctx, email, name, orgName, status, response)
	return args.Error(0)
}
func (m *MockEmailService) SendOrganisationStatusNotification(ctx context.Context, email, name, orgName, status string) error {
	args := m.Called(ctx, email, name, orgName, status)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingRequestsDigest(ctx context.Context, adminEmail, orgName string, pendingCount int) error {
	args := m.Called(ctx, adminEmail, orgName, pendingCount)
	return args.Error(0)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, eventData interface{}) error {
	args := m.Called(ctx, routingKey, eventData)
	return args.Error(0)
}
func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
