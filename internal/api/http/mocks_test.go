package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"clublink/internal/domain"
	"clublink/internal/service"
)

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

// MockClubService
type MockClubService struct {
	mock.Mock
}

func (m *MockClubService) ListClubs(ctx context.Context, university string) ([]domain.Club, error) {
	args := m.Called(ctx, university)
	return args.Get(0).([]domain.Club), args.Error(1)
}
func (m *MockClubService) GetClub(ctx context.Context, id int32) (*domain.Club, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Club), args.Error(1)
}
func (m *MockClubService) UpdateClub(ctx context.Context, actorID int32, club *domain.Club) (*domain.Club, error) {
	args := m.Called(ctx, actorID, club)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Club), args.Error(1)
}
func (m *MockClubService) ListMembers(ctx context.Context, clubID int32) ([]domain.MemberProfile, error) {
	args := m.Called(ctx, clubID)
	return args.Get(0).([]domain.MemberProfile), args.Error(1)
}
func (m *MockClubService) ListJoinRequests(ctx context.Context, clubID int32, status domain.JoinRequestStatus) ([]domain.JoinRequest, error) {
	args := m.Called(ctx, clubID, status)
	return args.Get(0).([]domain.JoinRequest), args.Error(1)
}

// MockInvitationService
type MockInvitationService struct {
	mock.Mock
}

func (m *MockInvitationService) Accept(ctx context.Context, token string, actorID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, token, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockInvitationService) Decline(ctx context.Context, token string, actorID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, token, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}
