package postgres

import (
	"context"
	"time"

	"clublink/internal/domain"
	"clublink/internal/logger"
	"clublink/internal/repository"
)

type joinRequestRepository struct {
	db DBTX
}

func NewJoinRequestRepository(db DBTX) repository.JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

const joinRequestColumns = `id, club_id, user_id, status, approver_id, created_on, resolved_on, invited_on`

func scanJoinRequest(row interface{ Scan(dest ...any) error }, jr *domain.JoinRequest) error {
	return row.Scan(&jr.ID, &jr.ClubID, &jr.UserID, &jr.Status, &jr.ApproverID, &jr.CreatedOn, &jr.ResolvedOn, &jr.InvitedOn)
}

func (r *joinRequestRepository) Create(ctx context.Context, jr *domain.JoinRequest) error {
	if jr.Status == "" {
		jr.Status = domain.JoinRequestStatusPending
	}
	if jr.CreatedOn.IsZero() {
		jr.CreatedOn = time.Now()
	}
	query := `INSERT INTO join_requests (club_id, user_id, status, created_on)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	logger.DatabaseCall("INSERT", "join_requests", "clubID", jr.ClubID, "userID", jr.UserID)

	err := r.db.QueryRowContext(ctx, query, jr.ClubID, jr.UserID, jr.Status, jr.CreatedOn).Scan(&jr.ID)
	logger.DatabaseResult("INSERT", 1, err, "requestID", jr.ID)
	return translateError(err)
}

func (r *joinRequestRepository) GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error) {
	jr := &domain.JoinRequest{}
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests WHERE id = $1`
	if err := scanJoinRequest(r.db.QueryRowContext(ctx, query, id), jr); err != nil {
		return nil, translateError(err)
	}
	return jr, nil
}

func (r *joinRequestRepository) Resolve(ctx context.Context, id int32, status domain.JoinRequestStatus, approverID *int32, at time.Time) (*domain.JoinRequest, error) {
	jr := &domain.JoinRequest{}
	query := `UPDATE join_requests SET status = $1, approver_id = $2, resolved_on = $3
	          WHERE id = $4 AND status = 'Pending'
	          RETURNING ` + joinRequestColumns
	logger.DatabaseCall("UPDATE", "join_requests", "requestID", id, "status", status)

	err := scanJoinRequest(r.db.QueryRowContext(ctx, query, status, approverID, at, id), jr)
	logger.DatabaseResult("UPDATE", 1, err, "requestID", id)
	if err != nil {
		return nil, translateError(err)
	}
	return jr, nil
}

func (r *joinRequestRepository) ListByClub(ctx context.Context, clubID int32, status domain.JoinRequestStatus) ([]domain.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests
	          WHERE club_id = $1 AND ($2 = '' OR status = $2)
	          ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, clubID, string(status))
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var requests []domain.JoinRequest
	for rows.Next() {
		var jr domain.JoinRequest
		if err := scanJoinRequest(rows, &jr); err != nil {
			return nil, translateError(err)
		}
		requests = append(requests, jr)
	}
	return requests, translateError(rows.Err())
}

// ListPendingWithContacts returns every pending request, oldest first, with the club name and
// the requester's contact details.
func (r *joinRequestRepository) ListPendingWithContacts(ctx context.Context) ([]domain.PendingRequest, error) {
	query := `SELECT jr.id, jr.club_id, jr.user_id, jr.status, jr.approver_id, jr.created_on, jr.resolved_on, jr.invited_on,
	                 c.name, u.email, u.name
	          FROM join_requests jr
	          JOIN clubs c ON c.id = jr.club_id
	          JOIN users u ON u.id = jr.user_id
	          WHERE jr.status = 'Pending'
	          ORDER BY jr.created_on, jr.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var pending []domain.PendingRequest
	for rows.Next() {
		var p domain.PendingRequest
		if err := rows.Scan(&p.ID, &p.ClubID, &p.UserID, &p.Status, &p.ApproverID, &p.CreatedOn, &p.ResolvedOn, &p.InvitedOn,
			&p.ClubName, &p.UserEmail, &p.UserName); err != nil {
			return nil, translateError(err)
		}
		pending = append(pending, p)
	}
	return pending, translateError(rows.Err())
}

// MarkInvited stamps the first invitation time. Later invitations leave it unchanged.
func (r *joinRequestRepository) MarkInvited(ctx context.Context, id int32, at time.Time) error {
	query := `UPDATE join_requests SET invited_on = COALESCE(invited_on, $2) WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return translateError(err)
	}
	return expectRows(result)
}

func (r *joinRequestRepository) ListLapsedInvitations(ctx context.Context, invitedBefore time.Time) ([]domain.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests
	          WHERE status = 'Pending' AND invited_on IS NOT NULL AND invited_on < $1
	          ORDER BY invited_on`
	rows, err := r.db.QueryContext(ctx, query, invitedBefore)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var requests []domain.JoinRequest
	for rows.Next() {
		var jr domain.JoinRequest
		if err := scanJoinRequest(rows, &jr); err != nil {
			return nil, translateError(err)
		}
		requests = append(requests, jr)
	}
	return requests, translateError(rows.Err())
}
