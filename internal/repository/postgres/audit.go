package postgres

import (
	"context"
	"time"

	"clublink/internal/domain"
	"clublink/internal/repository"
)

type auditRepository struct {
	db DBTX
}

func NewAuditRepository(db DBTX) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Append(ctx context.Context, e *domain.AuditEntry) error {
	if e.CreatedOn.IsZero() {
		e.CreatedOn = time.Now()
	}
	query := `INSERT INTO audit_log (club_id, user_id, member_id, action_type, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, e.ClubID, e.UserID, e.MemberID, e.ActionType, e.CreatedOn).Scan(&e.ID)
	return translateError(err)
}
