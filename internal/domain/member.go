package domain

import "time"

type MemberType string

const (
	MemberTypeMember    MemberType = "Member"
	MemberTypeCommittee MemberType = "Committee"
)

type MemberStatus string

const (
	MemberStatusActive  MemberStatus = "Active"
	MemberStatusPending MemberStatus = "Pending"
	MemberStatusExpired MemberStatus = "Expired"
)

type Member struct {
	ID         int32        `json:"id"`
	ClubID     int32        `json:"club_id"`
	UserID     int32        `json:"user_id"`
	MemberType MemberType   `json:"member_type"`
	Status     MemberStatus `json:"status"`
	CreatedOn  time.Time    `json:"created_on"`
}

// IsCommittee reports whether the member may run the club's membership workflow.
func (m *Member) IsCommittee() bool {
	return m.Status == MemberStatusActive && m.MemberType == MemberTypeCommittee
}

// MemberProfile is a member row joined with the user it belongs to, used by committee views.
type MemberProfile struct {
	Member
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	StudentNumber *string `json:"student_number,omitempty"`
}
