package jobs

import (
	"context"
	"errors"
	"fmt"

	"clublink/internal/domain"
	"clublink/internal/logger"
)

// ExpireLapsedInvitations cancels pending requests whose first invitation is older than the
// invitation TTL. It returns how many requests were cancelled.
func (jr *JobRunner) ExpireLapsedInvitations(ctx context.Context) (int, error) {
	cutoff := jr.now().UTC().Add(-jr.config.Waitlist.InvitationTTL)
	lapsed, err := jr.repos.JoinRequests.ListLapsedInvitations(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to load lapsed invitations: %w", err)
	}

	expired := 0
	for _, req := range lapsed {
		if _, err := jr.services.Membership.ExpireRequest(ctx, req.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Resolved since it was listed.
				continue
			}
			logger.Error("Failed to expire join request", "requestID", req.ID, "error", err)
			continue
		}
		expired++
	}
	return expired, nil
}
