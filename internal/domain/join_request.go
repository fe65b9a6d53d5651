package domain

import "time"

type JoinRequestStatus string

const (
	JoinRequestStatusPending   JoinRequestStatus = "Pending"
	JoinRequestStatusApproved  JoinRequestStatus = "Approved"
	JoinRequestStatusDenied    JoinRequestStatus = "Denied"
	JoinRequestStatusCancelled JoinRequestStatus = "Cancelled"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s JoinRequestStatus) IsTerminal() bool {
	return s != JoinRequestStatusPending
}

type JoinRequest struct {
	ID         int32             `json:"id"`
	ClubID     int32             `json:"club_id"`
	UserID     int32             `json:"user_id"`
	Status     JoinRequestStatus `json:"status"`
	ApproverID *int32            `json:"approver_id,omitempty"`
	CreatedOn  time.Time         `json:"created_on"`
	ResolvedOn *time.Time        `json:"resolved_on,omitempty"`
	InvitedOn  *time.Time        `json:"invited_on,omitempty"` // first waitlist invitation email
}

// PendingRequest is a pending join request with the contact details the waitlist notifier needs.
type PendingRequest struct {
	JoinRequest
	ClubName  string `json:"club_name"`
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
}
