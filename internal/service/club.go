package service

import (
	"context"
	"fmt"
	"strings"

	"clublink/internal/domain"
	"clublink/internal/repository"
)

type clubService struct {
	repos repository.Repositories
	uow   repository.UnitOfWork
}

func NewClubService(repos repository.Repositories, uow repository.UnitOfWork) ClubService {
	return &clubService{repos: repos, uow: uow}
}

func (s *clubService) ListClubs(ctx context.Context, university string) ([]domain.Club, error) {
	return s.repos.Clubs.List(ctx, strings.TrimSpace(university))
}

func (s *clubService) GetClub(ctx context.Context, id int32) (*domain.Club, error) {
	return s.repos.Clubs.GetByID(ctx, id)
}

// UpdateClub edits the descriptive fields of a club and records an "edit" audit entry. Only
// committee members may edit. Ratio and popularity are derived and cannot be set here.
func (s *clubService) UpdateClub(ctx context.Context, actorID int32, club *domain.Club) (*domain.Club, error) {
	club.Name = strings.TrimSpace(club.Name)
	if club.Name == "" {
		return nil, fmt.Errorf("%w: club name is required", domain.ErrInvalid)
	}
	if err := requireCommittee(ctx, s.repos.Members, club.ID, actorID); err != nil {
		return nil, err
	}

	var updated *domain.Club
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := repos.Clubs.Update(ctx, club); err != nil {
			return err
		}
		if err := NewAuditLogger(repos.Audit).Record(ctx, club.ID, &actorID, nil, domain.AuditActionEdit); err != nil {
			return err
		}
		var err error
		updated, err = repos.Clubs.GetByID(ctx, club.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update club %d: %w", club.ID, err)
	}
	return updated, nil
}

func (s *clubService) ListMembers(ctx context.Context, clubID int32) ([]domain.MemberProfile, error) {
	if _, err := s.repos.Clubs.GetByID(ctx, clubID); err != nil {
		return nil, err
	}
	return s.repos.Members.ListByClub(ctx, clubID)
}

// ListJoinRequests lists the club's requests, optionally filtered by status.
func (s *clubService) ListJoinRequests(ctx context.Context, clubID int32, status domain.JoinRequestStatus) ([]domain.JoinRequest, error) {
	switch status {
	case "", domain.JoinRequestStatusPending, domain.JoinRequestStatusApproved,
		domain.JoinRequestStatusDenied, domain.JoinRequestStatusCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown request status %q", domain.ErrInvalid, status)
	}
	if _, err := s.repos.Clubs.GetByID(ctx, clubID); err != nil {
		return nil, err
	}
	return s.repos.JoinRequests.ListByClub(ctx, clubID, status)
}
