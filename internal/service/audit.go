package service

import (
	"context"
	"fmt"
	"time"

	"clublink/internal/domain"
	"clublink/internal/repository"
)

type auditLogger struct {
	repo repository.AuditRepository
	now  func() time.Time
}

// NewAuditLogger binds an audit logger to repo. Workflows build one per transaction so the
// entry commits or rolls back with the change it records.
func NewAuditLogger(repo repository.AuditRepository) AuditLogger {
	return &auditLogger{repo: repo, now: time.Now}
}

func (a *auditLogger) Record(ctx context.Context, clubID int32, userID, memberID *int32, actionType string) error {
	if actionType == "" {
		return fmt.Errorf("%w: audit action type is required", domain.ErrInvalid)
	}
	entry := &domain.AuditEntry{
		ClubID:     clubID,
		UserID:     userID,
		MemberID:   memberID,
		ActionType: actionType,
		CreatedOn:  a.now().UTC(),
	}
	if err := a.repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to record %q audit entry: %w", actionType, err)
	}
	return nil
}
