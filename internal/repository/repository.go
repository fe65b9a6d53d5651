package repository

import (
	"context"
	"time"

	"clublink/internal/domain"
)

// Lookups return domain.ErrNotFound when nothing matches. Driver failures come back as
// *domain.DependencyError.

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
}

type ClubRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Club, error)
	List(ctx context.Context, university string) ([]domain.Club, error)
	Update(ctx context.Context, club *domain.Club) error
	UpdateRatio(ctx context.Context, clubID int32, ratio float64, popularity int32) error
}

type MemberRepository interface {
	Get(ctx context.Context, clubID, userID int32) (*domain.Member, error)
	// Upsert inserts the member or, when a row for (club, user) exists, moves it to member.Status.
	Upsert(ctx context.Context, member *domain.Member) error
	SetStatus(ctx context.Context, clubID, userID int32, status domain.MemberStatus) error
	CountRoster(ctx context.Context, clubID int32) (domain.RosterCounts, error)
	ListByClub(ctx context.Context, clubID int32) ([]domain.MemberProfile, error)
}

type JoinRequestRepository interface {
	Create(ctx context.Context, req *domain.JoinRequest) error
	GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error)
	// Resolve moves a Pending request to status. A request that is missing or already
	// resolved yields domain.ErrNotFound, so concurrent resolutions have a single winner.
	Resolve(ctx context.Context, id int32, status domain.JoinRequestStatus, approverID *int32, at time.Time) (*domain.JoinRequest, error)
	ListByClub(ctx context.Context, clubID int32, status domain.JoinRequestStatus) ([]domain.JoinRequest, error)
	ListPendingWithContacts(ctx context.Context) ([]domain.PendingRequest, error)
	MarkInvited(ctx context.Context, id int32, at time.Time) error
	ListLapsedInvitations(ctx context.Context, invitedBefore time.Time) ([]domain.JoinRequest, error)
}

type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
}

// Repositories groups repositories bound to the same connection or transaction.
type Repositories struct {
	Users        UserRepository
	Clubs        ClubRepository
	Members      MemberRepository
	JoinRequests JoinRequestRepository
	Audit        AuditRepository
}

// UnitOfWork runs fn against repositories sharing one transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
