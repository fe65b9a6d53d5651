package service

import (
	"context"
	"time"

	"clublink/internal/domain"
)

// JoinOutcome tells the caller what AttemptJoin did with the requester.
type JoinOutcome string

const (
	JoinOutcomeAdmitted JoinOutcome = "admitted"
	JoinOutcomeQueued   JoinOutcome = "queued"
)

// JoinResult carries the member row for admitted students or the pending request for
// queued associates.
type JoinResult struct {
	Outcome JoinOutcome         `json:"outcome"`
	Member  *domain.Member      `json:"member,omitempty"`
	Request *domain.JoinRequest `json:"request,omitempty"`
	Ratio   float64             `json:"ratio"`
}

type MembershipService interface {
	AttemptJoin(ctx context.Context, clubID, userID int32) (*JoinResult, error)
	ApproveRequest(ctx context.Context, requestID, approverID int32) (*domain.JoinRequest, error)
	DenyRequest(ctx context.Context, requestID, approverID int32) (*domain.JoinRequest, error)
	ExpireRequest(ctx context.Context, requestID int32) (*domain.JoinRequest, error)
	// AcceptOffer and DeclineOffer resolve an invited request on behalf of its requester.
	AcceptOffer(ctx context.Context, requestID, inviteeID int32) (*domain.JoinRequest, error)
	DeclineOffer(ctx context.Context, requestID, inviteeID int32) (*domain.JoinRequest, error)
	ActivateMembership(ctx context.Context, actorID, userID, clubID int32) error
	DeactivateMembership(ctx context.Context, actorID, userID, clubID int32) error
}

type InvitationService interface {
	Accept(ctx context.Context, token string, actorID int32) (*domain.JoinRequest, error)
	Decline(ctx context.Context, token string, actorID int32) (*domain.JoinRequest, error)
}

type ClubService interface {
	ListClubs(ctx context.Context, university string) ([]domain.Club, error)
	GetClub(ctx context.Context, id int32) (*domain.Club, error)
	UpdateClub(ctx context.Context, actorID int32, club *domain.Club) (*domain.Club, error)
	ListMembers(ctx context.Context, clubID int32) ([]domain.MemberProfile, error)
	ListJoinRequests(ctx context.Context, clubID int32, status domain.JoinRequestStatus) ([]domain.JoinRequest, error)
}

type AuditLogger interface {
	Record(ctx context.Context, clubID int32, userID, memberID *int32, actionType string) error
}

type EmailService interface {
	SendWaitlistInvitation(ctx context.Context, email, name, clubName, acceptURL, declineURL string, expiresAt time.Time) error
	SendJoinRequestDecision(ctx context.Context, email, name, clubName string, approved bool) error
}
