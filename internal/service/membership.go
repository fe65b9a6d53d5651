package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clublink/internal/domain"
	"clublink/internal/logger"
	"clublink/internal/repository"
	"clublink/internal/utils"
)

type membershipService struct {
	repos    repository.Repositories
	uow      repository.UnitOfWork
	emailSvc EmailService
	now      func() time.Time
}

// NewMembershipService wires the join workflow. repos serves single-statement reads and
// writes; multi-table changes go through uow.
func NewMembershipService(repos repository.Repositories, uow repository.UnitOfWork, emailSvc EmailService) MembershipService {
	return &membershipService{
		repos:    repos,
		uow:      uow,
		emailSvc: emailSvc,
		now:      time.Now,
	}
}

func (s *membershipService) AttemptJoin(ctx context.Context, clubID, userID int32) (*JoinResult, error) {
	logger.EnterMethod("membershipService.AttemptJoin", "clubID", clubID, "userID", userID)

	if _, err := s.repos.Clubs.GetByID(ctx, clubID); err != nil {
		logger.ExitMethodWithError("membershipService.AttemptJoin", err, "reason", "club lookup")
		return nil, fmt.Errorf("failed to load club %d: %w", clubID, err)
	}
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		logger.ExitMethodWithError("membershipService.AttemptJoin", err, "reason", "user lookup")
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	existing, err := s.repos.Members.Get(ctx, clubID, userID)
	switch {
	case err == nil && existing.Status == domain.MemberStatusActive:
		logger.Warn("Join attempt by active member", "clubID", clubID, "userID", userID)
		return nil, fmt.Errorf("%w: user %d is already an active member of club %d", domain.ErrConflict, userID, clubID)
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("failed to load membership: %w", err)
	}

	var result *JoinResult
	switch requester := domain.ClassifyRequester(user).(type) {
	case domain.Student:
		result, err = s.admitStudent(ctx, clubID, requester)
	case domain.Associate:
		result, err = s.queueAssociate(ctx, clubID, requester)
	default:
		err = fmt.Errorf("%w: unclassified requester %T", domain.ErrInvalid, requester)
	}
	if err != nil {
		logger.ExitMethodWithError("membershipService.AttemptJoin", err, "clubID", clubID, "userID", userID)
		return nil, err
	}

	logger.ExitMethod("membershipService.AttemptJoin", "outcome", result.Outcome)
	return result, nil
}

func (s *membershipService) admitStudent(ctx context.Context, clubID int32, student domain.Student) (*JoinResult, error) {
	result := &JoinResult{Outcome: JoinOutcomeAdmitted}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		member, err := admit(ctx, repos, clubID, student.RequesterID())
		if err != nil {
			return err
		}
		result.Member = member
		result.Ratio, err = refreshClubRatio(ctx, repos, clubID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to admit student: %w", err)
	}
	logger.Info("Student admitted", "clubID", clubID, "userID", student.UserID, "ratio", result.Ratio)
	return result, nil
}

func (s *membershipService) queueAssociate(ctx context.Context, clubID int32, associate domain.Associate) (*JoinResult, error) {
	req := &domain.JoinRequest{
		ClubID:    clubID,
		UserID:    associate.RequesterID(),
		Status:    domain.JoinRequestStatusPending,
		CreatedOn: s.now().UTC(),
	}
	if err := s.repos.JoinRequests.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to queue join request: %w", err)
	}
	logger.Info("Associate queued", "clubID", clubID, "userID", associate.UserID, "requestID", req.ID)
	return &JoinResult{Outcome: JoinOutcomeQueued, Request: req}, nil
}

func (s *membershipService) ApproveRequest(ctx context.Context, requestID, approverID int32) (*domain.JoinRequest, error) {
	return s.resolve(ctx, requestID, approverID, domain.JoinRequestStatusApproved, s.committeeResolver)
}

func (s *membershipService) DenyRequest(ctx context.Context, requestID, approverID int32) (*domain.JoinRequest, error) {
	return s.resolve(ctx, requestID, approverID, domain.JoinRequestStatusDenied, s.committeeResolver)
}

func (s *membershipService) AcceptOffer(ctx context.Context, requestID, inviteeID int32) (*domain.JoinRequest, error) {
	return s.resolve(ctx, requestID, inviteeID, domain.JoinRequestStatusApproved, inviteeResolver)
}

func (s *membershipService) DeclineOffer(ctx context.Context, requestID, inviteeID int32) (*domain.JoinRequest, error) {
	return s.resolve(ctx, requestID, inviteeID, domain.JoinRequestStatusDenied, inviteeResolver)
}

// resolverCheck returns ErrUnauthorized unless actorID may resolve req.
type resolverCheck func(ctx context.Context, req *domain.JoinRequest, actorID int32) error

func (s *membershipService) committeeResolver(ctx context.Context, req *domain.JoinRequest, actorID int32) error {
	return requireCommittee(ctx, s.repos.Members, req.ClubID, actorID)
}

// inviteeResolver lets a requester answer their own request once it has been offered a place.
func inviteeResolver(_ context.Context, req *domain.JoinRequest, actorID int32) error {
	if req.UserID != actorID {
		return fmt.Errorf("%w: request %d belongs to another user", domain.ErrUnauthorized, req.ID)
	}
	if req.InvitedOn == nil {
		return fmt.Errorf("%w: request %d has not been offered a place", domain.ErrUnauthorized, req.ID)
	}
	return nil
}

// resolve approves or denies a pending request. The status change, its audit entry and, for
// approvals, the new member row and ratio commit together or not at all.
func (s *membershipService) resolve(ctx context.Context, requestID, approverID int32, status domain.JoinRequestStatus, check resolverCheck) (*domain.JoinRequest, error) {
	logger.EnterMethod("membershipService.resolve", "requestID", requestID, "approverID", approverID, "status", status)

	if approverID == 0 {
		return nil, fmt.Errorf("%w: approver is required", domain.ErrUnauthorized)
	}

	pending, err := s.repos.JoinRequests.GetByID(ctx, requestID)
	if err != nil {
		logger.ExitMethodWithError("membershipService.resolve", err, "requestID", requestID)
		return nil, fmt.Errorf("failed to load join request %d: %w", requestID, err)
	}
	if err := check(ctx, pending, approverID); err != nil {
		logger.Warn("Join request resolution refused", "requestID", requestID, "approverID", approverID, "error", err)
		return nil, err
	}

	action := domain.AuditActionDeny
	if status == domain.JoinRequestStatusApproved {
		action = domain.AuditActionApprove
	}

	var resolved *domain.JoinRequest
	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		req, err := repos.JoinRequests.Resolve(ctx, requestID, status, &approverID, s.now().UTC())
		if err != nil {
			return err
		}
		if err := NewAuditLogger(repos.Audit).Record(ctx, req.ClubID, &approverID, &req.UserID, action); err != nil {
			return err
		}
		if status == domain.JoinRequestStatusApproved {
			if _, err := admit(ctx, repos, req.ClubID, req.UserID); err != nil {
				return err
			}
			if _, err := refreshClubRatio(ctx, repos, req.ClubID); err != nil {
				return err
			}
		}
		resolved = req
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("membershipService.resolve", err, "requestID", requestID)
		return nil, fmt.Errorf("failed to resolve join request %d: %w", requestID, err)
	}

	s.notifyDecision(ctx, resolved)
	logger.ExitMethod("membershipService.resolve", "requestID", requestID, "status", resolved.Status)
	return resolved, nil
}

func (s *membershipService) ExpireRequest(ctx context.Context, requestID int32) (*domain.JoinRequest, error) {
	req, err := s.repos.JoinRequests.Resolve(ctx, requestID, domain.JoinRequestStatusCancelled, nil, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to expire join request %d: %w", requestID, err)
	}
	logger.Info("Join request expired", "requestID", requestID, "clubID", req.ClubID)
	return req, nil
}

func (s *membershipService) ActivateMembership(ctx context.Context, actorID, userID, clubID int32) error {
	return s.setMembershipStatus(ctx, actorID, userID, clubID, domain.MemberStatusActive, domain.AuditActionActivate)
}

func (s *membershipService) DeactivateMembership(ctx context.Context, actorID, userID, clubID int32) error {
	return s.setMembershipStatus(ctx, actorID, userID, clubID, domain.MemberStatusExpired, domain.AuditActionDeactivate)
}

func (s *membershipService) setMembershipStatus(ctx context.Context, actorID, userID, clubID int32, status domain.MemberStatus, action string) error {
	if err := requireCommittee(ctx, s.repos.Members, clubID, actorID); err != nil {
		return err
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := repos.Members.SetStatus(ctx, clubID, userID, status); err != nil {
			return err
		}
		if err := NewAuditLogger(repos.Audit).Record(ctx, clubID, &actorID, &userID, action); err != nil {
			return err
		}
		_, err := refreshClubRatio(ctx, repos, clubID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to set membership of user %d in club %d to %s: %w", userID, clubID, status, err)
	}
	logger.Info("Membership status changed", "clubID", clubID, "userID", userID, "status", status, "actorID", actorID)
	return nil
}

// notifyDecision emails the requester after commit. Failures are logged and never undo the
// decision.
func (s *membershipService) notifyDecision(ctx context.Context, req *domain.JoinRequest) {
	if s.emailSvc == nil {
		return
	}
	user, err := s.repos.Users.GetByID(ctx, req.UserID)
	if err != nil {
		logger.Warn("Skipping decision email, requester lookup failed", "requestID", req.ID, "error", err)
		return
	}
	club, err := s.repos.Clubs.GetByID(ctx, req.ClubID)
	if err != nil {
		logger.Warn("Skipping decision email, club lookup failed", "requestID", req.ID, "error", err)
		return
	}
	approved := req.Status == domain.JoinRequestStatusApproved
	if err := s.emailSvc.SendJoinRequestDecision(ctx, user.Email, user.Name, club.Name, approved); err != nil {
		logger.Error("Failed to send decision email", "requestID", req.ID, "error", err)
	}
}

// requireCommittee returns ErrUnauthorized unless actorID is an active committee member of
// clubID.
func requireCommittee(ctx context.Context, members repository.MemberRepository, clubID, actorID int32) error {
	if actorID == 0 {
		return fmt.Errorf("%w: actor is required", domain.ErrUnauthorized)
	}
	member, err := members.Get(ctx, clubID, actorID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: user %d is not a member of club %d", domain.ErrUnauthorized, actorID, clubID)
	}
	if err != nil {
		return fmt.Errorf("failed to load actor membership: %w", err)
	}
	if !member.IsCommittee() {
		return fmt.Errorf("%w: user %d is not on the committee of club %d", domain.ErrUnauthorized, actorID, clubID)
	}
	return nil
}

// admit makes userID an active member of clubID, reviving an existing row if there is one.
func admit(ctx context.Context, repos repository.Repositories, clubID, userID int32) (*domain.Member, error) {
	member := &domain.Member{
		ClubID:     clubID,
		UserID:     userID,
		MemberType: domain.MemberTypeMember,
		Status:     domain.MemberStatusActive,
	}
	if err := repos.Members.Upsert(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to admit user %d: %w", userID, err)
	}
	return member, nil
}

// refreshClubRatio recomputes the persisted display ratio and popularity from the active roster.
func refreshClubRatio(ctx context.Context, repos repository.Repositories, clubID int32) (float64, error) {
	counts, err := repos.Members.CountRoster(ctx, clubID)
	if err != nil {
		return 0, fmt.Errorf("failed to count roster: %w", err)
	}
	ratio := utils.ComputeDisplayRatio(counts.Students, counts.Associates)
	if err := repos.Clubs.UpdateRatio(ctx, clubID, ratio, int32(counts.Total())); err != nil {
		return 0, fmt.Errorf("failed to update club ratio: %w", err)
	}
	return ratio, nil
}
