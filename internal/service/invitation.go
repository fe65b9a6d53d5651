package service

import (
	"context"
	"errors"
	"fmt"

	"clublink/internal/domain"
	"clublink/internal/logger"
	"clublink/internal/repository"
	"clublink/internal/security"
)

type invitationService struct {
	requests   repository.JoinRequestRepository
	membership MembershipService
	tokens     security.TokenManager
}

func NewInvitationService(requests repository.JoinRequestRepository, membership MembershipService, tokens security.TokenManager) InvitationService {
	return &invitationService{
		requests:   requests,
		membership: membership,
		tokens:     tokens,
	}
}

// Accept approves the request bound to token on behalf of the invited requester.
func (s *invitationService) Accept(ctx context.Context, token string, actorID int32) (*domain.JoinRequest, error) {
	req, err := s.redeem(ctx, token, actorID)
	if err != nil {
		return nil, err
	}
	return s.membership.AcceptOffer(ctx, req.ID, actorID)
}

// Decline denies the request bound to token on behalf of the invited requester.
func (s *invitationService) Decline(ctx context.Context, token string, actorID int32) (*domain.JoinRequest, error) {
	req, err := s.redeem(ctx, token, actorID)
	if err != nil {
		return nil, err
	}
	return s.membership.DeclineOffer(ctx, req.ID, actorID)
}

// redeem validates token and returns the pending request it was issued for. A lapsed token
// cancels its request.
func (s *invitationService) redeem(ctx context.Context, token string, actorID int32) (*domain.JoinRequest, error) {
	if actorID == 0 {
		return nil, fmt.Errorf("%w: invitation must be redeemed by a signed-in user", domain.ErrUnauthorized)
	}

	claims, err := s.tokens.ValidateInvitationToken(token)
	if errors.Is(err, security.ErrExpiredToken) && claims != nil {
		if _, expErr := s.membership.ExpireRequest(ctx, claims.RequestID); expErr != nil && !errors.Is(expErr, domain.ErrNotFound) {
			logger.Error("Failed to cancel request for lapsed invitation", "requestID", claims.RequestID, "error", expErr)
		}
		return nil, fmt.Errorf("%w: invitation for request %d has lapsed", domain.ErrExpired, claims.RequestID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalid, err)
	}

	req, err := s.requests.GetByID(ctx, claims.RequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load join request %d: %w", claims.RequestID, err)
	}
	if req.UserID != actorID {
		logger.Warn("Invitation redeemed by another user", "requestID", req.ID, "actorID", actorID)
		return nil, fmt.Errorf("%w: invitation belongs to another user", domain.ErrUnauthorized)
	}
	return req, nil
}
