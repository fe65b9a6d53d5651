package postgres

import (
	"context"
	"time"

	"clublink/internal/domain"
	"clublink/internal/repository"
)

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, name, student_number, created_on FROM users WHERE id = $1`
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.Name, &u.StudentNumber, &createdOn)
	if err != nil {
		return nil, translateError(err)
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	return u, nil
}
