package postgres

import (
	"context"
	"time"

	"clublink/internal/domain"
	"clublink/internal/logger"
	"clublink/internal/repository"
)

type memberRepository struct {
	db DBTX
}

func NewMemberRepository(db DBTX) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Get(ctx context.Context, clubID, userID int32) (*domain.Member, error) {
	m := &domain.Member{}
	query := `SELECT id, club_id, user_id, member_type, status, created_on FROM members WHERE club_id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, clubID, userID).Scan(&m.ID, &m.ClubID, &m.UserID, &m.MemberType, &m.Status, &m.CreatedOn)
	if err != nil {
		return nil, translateError(err)
	}
	return m, nil
}

func (r *memberRepository) Upsert(ctx context.Context, m *domain.Member) error {
	logger.EnterMethod("memberRepository.Upsert", "clubID", m.ClubID, "userID", m.UserID, "status", m.Status)

	if m.MemberType == "" {
		m.MemberType = domain.MemberTypeMember
	}
	query := `INSERT INTO members (club_id, user_id, member_type, status, created_on)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (club_id, user_id) DO UPDATE SET status = EXCLUDED.status
	          RETURNING id, member_type, created_on`
	logger.DatabaseCall("UPSERT", "members", "clubID", m.ClubID, "userID", m.UserID)

	err := r.db.QueryRowContext(ctx, query, m.ClubID, m.UserID, m.MemberType, m.Status, time.Now()).
		Scan(&m.ID, &m.MemberType, &m.CreatedOn)
	logger.DatabaseResult("UPSERT", 1, err, "memberID", m.ID)

	if err != nil {
		logger.ExitMethodWithError("memberRepository.Upsert", err, "clubID", m.ClubID, "userID", m.UserID)
		return translateError(err)
	}
	logger.ExitMethod("memberRepository.Upsert", "memberID", m.ID)
	return nil
}

func (r *memberRepository) SetStatus(ctx context.Context, clubID, userID int32, status domain.MemberStatus) error {
	query := `UPDATE members SET status = $1 WHERE club_id = $2 AND user_id = $3`
	result, err := r.db.ExecContext(ctx, query, status, clubID, userID)
	if err != nil {
		return translateError(err)
	}
	return expectRows(result)
}

// CountRoster splits the club's active members into students (non-empty student number)
// and associates.
func (r *memberRepository) CountRoster(ctx context.Context, clubID int32) (domain.RosterCounts, error) {
	query := `SELECT
	              COUNT(*) FILTER (WHERE COALESCE(u.student_number, '') <> ''),
	              COUNT(*) FILTER (WHERE COALESCE(u.student_number, '') = '')
	          FROM members m
	          JOIN users u ON u.id = m.user_id
	          WHERE m.club_id = $1 AND m.status = 'Active'`
	var counts domain.RosterCounts
	if err := r.db.QueryRowContext(ctx, query, clubID).Scan(&counts.Students, &counts.Associates); err != nil {
		return domain.RosterCounts{}, translateError(err)
	}
	return counts, nil
}

func (r *memberRepository) ListByClub(ctx context.Context, clubID int32) ([]domain.MemberProfile, error) {
	query := `SELECT m.id, m.club_id, m.user_id, m.member_type, m.status, m.created_on, u.name, u.email, u.student_number
	          FROM members m
	          JOIN users u ON u.id = m.user_id
	          WHERE m.club_id = $1
	          ORDER BY m.member_type, u.name`
	rows, err := r.db.QueryContext(ctx, query, clubID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var members []domain.MemberProfile
	for rows.Next() {
		var p domain.MemberProfile
		if err := rows.Scan(&p.ID, &p.ClubID, &p.UserID, &p.MemberType, &p.Status, &p.CreatedOn, &p.Name, &p.Email, &p.StudentNumber); err != nil {
			return nil, translateError(err)
		}
		members = append(members, p)
	}
	return members, translateError(rows.Err())
}
