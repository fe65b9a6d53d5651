package jobs

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"clublink/internal/domain"
	"clublink/internal/logger"
	"clublink/internal/utils"
)

// WaitlistRunStats summarises one waitlist notifier run.
type WaitlistRunStats struct {
	Pending     int // pending requests examined
	Invited     int // invitations sent in this run
	Outstanding int // requests still holding an unexpired earlier invitation
	Lapsed      int // requests whose offer lapsed, left for the sweep
	Skipped     int // requests whose offer would take the club past the admission threshold
	Failed      int
}

// NotifyWaitlist offers a time-boxed invitation to every pending requester whose club has room
// for one more associate under the admission threshold. Requests are taken oldest first and
// every offer made, in this run or an earlier one still open, counts as an associate, so a
// club whose offers are all accepted never ends above its threshold. A failure on one request
// is logged and the run moves on.
func (jr *JobRunner) NotifyWaitlist(ctx context.Context) (*WaitlistRunStats, error) {
	pending, err := jr.repos.JoinRequests.ListPendingWithContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending join requests: %w", err)
	}

	stats := &WaitlistRunStats{Pending: len(pending)}
	if len(pending) == 0 {
		logger.Info("No pending join requests, nothing to notify")
		return stats, nil
	}

	threshold := jr.config.Waitlist.AdmissionThreshold
	ttl := jr.config.Waitlist.InvitationTTL
	now := jr.now().UTC()
	rosters := make(map[int32]*domain.RosterCounts)

	for _, req := range pending {
		roster, ok := rosters[req.ClubID]
		if !ok {
			counts, err := jr.repos.Members.CountRoster(ctx, req.ClubID)
			if err != nil {
				stats.Failed++
				logger.Error("Failed to count club roster", "clubID", req.ClubID, "requestID", req.ID, "error", err)
				continue
			}
			roster = &counts
			rosters[req.ClubID] = roster
		}

		if req.InvitedOn != nil {
			if now.Sub(*req.InvitedOn) < ttl {
				roster.Associates++
				stats.Outstanding++
			} else {
				stats.Lapsed++
			}
			continue
		}

		if !utils.UnderAdmissionThreshold(roster.Students, roster.Associates, threshold) {
			stats.Skipped++
			logger.Debug("No room under admission threshold, leaving request pending",
				"clubID", req.ClubID, "requestID", req.ID,
				"ratio", utils.ComputeRatio(roster.Students, roster.Associates), "threshold", threshold)
			continue
		}

		if err := jr.invite(ctx, req); err != nil {
			stats.Failed++
			logger.Error("Failed to send waitlist invitation", "requestID", req.ID, "clubID", req.ClubID, "error", err)
			continue
		}
		roster.Associates++
		stats.Invited++
	}

	return stats, nil
}

func (jr *JobRunner) invite(ctx context.Context, req domain.PendingRequest) error {
	token, expiresAt, err := jr.tokens.GenerateInvitationToken(req.ID, jr.config.Waitlist.InvitationTTL)
	if err != nil {
		return domain.Dependency("token-signer", fmt.Errorf("failed to sign invitation: %w", err))
	}

	acceptURL := jr.invitationLink("accept", token)
	declineURL := jr.invitationLink("decline", token)
	if err := jr.services.Email.SendWaitlistInvitation(ctx, req.UserEmail, req.UserName, req.ClubName, acceptURL, declineURL, expiresAt); err != nil {
		return err
	}

	if err := jr.repos.JoinRequests.MarkInvited(ctx, req.ID, jr.now().UTC()); err != nil {
		// The email is out; the sweep just will not see this offer.
		logger.Warn("Failed to stamp invitation time", "requestID", req.ID, "error", err)
	}
	logger.Info("Waitlist invitation sent", "requestID", req.ID, "clubID", req.ClubID, "expiresAt", expiresAt)
	return nil
}

// invitationLink builds the front-end route that redeems token with action.
func (jr *JobRunner) invitationLink(action, token string) string {
	base := strings.TrimRight(jr.config.Waitlist.FrontendBaseURL, "/")
	return base + "/invitations/" + action + "?" + url.Values{"token": {token}}.Encode()
}
