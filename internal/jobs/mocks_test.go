package jobs

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"clublink/internal/domain"
	"clublink/internal/service"
)

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Get(ctx context.Context, clubID, userID int32) (*domain.Member, error) {
	args := m.Called(ctx, clubID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) Upsert(ctx context.Context, member *domain.Member) error {
	return m.Called(ctx, member).Error(0)
}
func (m *MockMemberRepo) SetStatus(ctx context.Context, clubID, userID int32, status domain.MemberStatus) error {
	return m.Called(ctx, clubID, userID, status).Error(0)
}
func (m *MockMemberRepo) CountRoster(ctx context.Context, clubID int32) (domain.RosterCounts, error) {
	args := m.Called(ctx, clubID)
	return args.Get(0).(domain.RosterCounts), args.Error(1)
}
func (m *MockMemberRepo) ListByClub(ctx context.Context, clubID int32) ([]domain.MemberProfile, error) {
	args := m.Called(ctx, clubID)
	return args.Get(0).([]domain.MemberProfile), args.Error(1)
}

// MockJoinRequestRepo
type MockJoinRequestRepo struct {
	mock.Mock
}

func (m *MockJoinRequestRepo) Create(ctx context.Context, req *domain.JoinRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *MockJoinRequestRepo) GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) Resolve(ctx context.Context, id int32, status domain.JoinRequestStatus, approverID *int32, at time.Time) (*domain.JoinRequest, error) {
	args := m.Called(ctx, id, status, approverID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) ListByClub(ctx context.Context, clubID int32, status domain.JoinRequestStatus) ([]domain.JoinRequest, error) {
	args := m.Called(ctx, clubID, status)
	return args.Get(0).([]domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) ListPendingWithContacts(ctx context.Context) ([]domain.PendingRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PendingRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) MarkInvited(ctx context.Context, id int32, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}
func (m *MockJoinRequestRepo) ListLapsedInvitations(ctx context.Context, invitedBefore time.Time) ([]domain.JoinRequest, error) {
	args := m.Called(ctx, invitedBefore)
	return args.Get(0).([]domain.JoinRequest), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWaitlistInvitation(ctx context.Context, email, name, clubName, acceptURL, declineURL string, expiresAt time.Time) error {
	return m.Called(ctx, email, name, clubName, acceptURL, declineURL, expiresAt).Error(0)
}
func (m *MockEmailService) SendJoinRequestDecision(ctx context.Context, email, name, clubName string, approved bool) error {
	return m.Called(ctx, email, name, clubName, approved).Error(0)
}

// MockMembershipService
type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) AttemptJoin(ctx context.Context, clubID, userID int32) (*service.JoinResult, error) {
	args := m.Called(ctx, clubID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.JoinResult), args.Error(1)
}
func (m *MockMembershipService) ApproveRequest(ctx context.Context, requestID, approverID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, requestID, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockMembershipService) DenyRequest(ctx context.Context, requestID, approverID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, requestID, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockMembershipService) AcceptOffer(ctx context.Context, requestID, inviteeID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, requestID, inviteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockMembershipService) DeclineOffer(ctx context.Context, requestID, inviteeID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, requestID, inviteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockMembershipService) ExpireRequest(ctx context.Context, requestID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockMembershipService) ActivateMembership(ctx context.Context, actorID, userID, clubID int32) error {
	return m.Called(ctx, actorID, userID, clubID).Error(0)
}
func (m *MockMembershipService) DeactivateMembership(ctx context.Context, actorID, userID, clubID int32) error {
	return m.Called(ctx, actorID, userID, clubID).Error(0)
}
