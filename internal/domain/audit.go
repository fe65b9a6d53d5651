package domain

import "time"

const (
	AuditActionEdit       = "edit"
	AuditActionApprove    = "approve"
	AuditActionDeny       = "deny"
	AuditActionJoin       = "join"
	AuditActionActivate   = "Activate Membership"
	AuditActionDeactivate = "Deactivate Membership"
)

// AuditEntry is an append-only record of a state-changing action against a club.
// UserID is usually the actor; MemberID is the member acted upon, when there is one.
type AuditEntry struct {
	ID         int32     `json:"id"`
	ClubID     int32     `json:"club_id"`
	UserID     *int32    `json:"user_id,omitempty"`
	MemberID   *int32    `json:"member_id,omitempty"`
	ActionType string    `json:"action_type"`
	CreatedOn  time.Time `json:"created_on"`
}
