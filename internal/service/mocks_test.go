package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"clublink/internal/domain"
	"clublink/internal/repository"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockClubRepo
type MockClubRepo struct {
	mock.Mock
}

func (m *MockClubRepo) GetByID(ctx context.Context, id int32) (*domain.Club, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Club), args.Error(1)
}
func (m *MockClubRepo) List(ctx context.Context, university string) ([]domain.Club, error) {
	args := m.Called(ctx, university)
	return args.Get(0).([]domain.Club), args.Error(1)
}
func (m *MockClubRepo) Update(ctx context.Context, club *domain.Club) error {
	args := m.Called(ctx, club)
	return args.Error(0)
}
func (m *MockClubRepo) UpdateRatio(ctx context.Context, clubID int32, ratio float64, popularity int32) error {
	args := m.Called(ctx, clubID, ratio, popularity)
	return args.Error(0)
}

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
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) SetStatus(ctx context.Context, clubID, userID int32, status domain.MemberStatus) error {
	args := m.Called(ctx, clubID, userID, status)
	return args.Error(0)
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
	args := m.Called(ctx, req)
	return args.Error(0)
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
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) ListLapsedInvitations(ctx context.Context, invitedBefore time.Time) ([]domain.JoinRequest, error) {
	args := m.Called(ctx, invitedBefore)
	return args.Get(0).([]domain.JoinRequest), args.Error(1)
}

// MockAuditRepo
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Append(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWaitlistInvitation(ctx context.Context, email, name, clubName, acceptURL, declineURL string, expiresAt time.Time) error {
	args := m.Called(ctx, email, name, clubName, acceptURL, declineURL, expiresAt)
	return args.Error(0)
}
func (m *MockEmailService) SendJoinRequestDecision(ctx context.Context, email, name, clubName string, approved bool) error {
	args := m.Called(ctx, email, name, clubName, approved)
	return args.Error(0)
}

// fakeUnitOfWork hands the same mocks to every transaction and counts the outcomes.
type fakeUnitOfWork struct {
	repos     repository.Repositories
	commits   int
	rollbacks int
}

func (u *fakeUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	if err := fn(ctx, u.repos); err != nil {
		u.rollbacks++
		return err
	}
	u.commits++
	return nil
}

type testRepos struct {
	users    *MockUserRepo
	clubs    *MockClubRepo
	members  *MockMemberRepo
	requests *MockJoinRequestRepo
	audit    *MockAuditRepo
	email    *MockEmailService
	uow      *fakeUnitOfWork
}

func newTestRepos() *testRepos {
	r := &testRepos{
		users:    new(MockUserRepo),
		clubs:    new(MockClubRepo),
		members:  new(MockMemberRepo),
		requests: new(MockJoinRequestRepo),
		audit:    new(MockAuditRepo),
		email:    new(MockEmailService),
	}
	r.uow = &fakeUnitOfWork{repos: r.repositories()}
	return r
}

func (r *testRepos) repositories() repository.Repositories {
	return repository.Repositories{
		Users:        r.users,
		Clubs:        r.clubs,
		Members:      r.members,
		JoinRequests: r.requests,
		Audit:        r.audit,
	}
}
