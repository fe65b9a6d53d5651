package postgres

import (
	"context"

	"clublink/internal/domain"
	"clublink/internal/logger"
	"clublink/internal/repository"
)

type clubRepository struct {
	db DBTX
}

func NewClubRepository(db DBTX) repository.ClubRepository {
	return &clubRepository{db: db}
}

const clubColumns = `id, name, short_description, long_description, university, latitude, longitude, ratio, popularity, created_on`

func scanClub(row interface{ Scan(dest ...any) error }, c *domain.Club) error {
	return row.Scan(&c.ID, &c.Name, &c.ShortDescription, &c.LongDescription, &c.University,
		&c.Latitude, &c.Longitude, &c.Ratio, &c.Popularity, &c.CreatedOn)
}

func (r *clubRepository) GetByID(ctx context.Context, id int32) (*domain.Club, error) {
	c := &domain.Club{}
	query := `SELECT ` + clubColumns + ` FROM clubs WHERE id = $1`
	if err := scanClub(r.db.QueryRowContext(ctx, query, id), c); err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

func (r *clubRepository) List(ctx context.Context, university string) ([]domain.Club, error) {
	query := `SELECT ` + clubColumns + ` FROM clubs WHERE university ILIKE $1 ORDER BY popularity DESC, name`
	rows, err := r.db.QueryContext(ctx, query, "%"+university+"%")
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var clubs []domain.Club
	for rows.Next() {
		var c domain.Club
		if err := scanClub(rows, &c); err != nil {
			return nil, translateError(err)
		}
		clubs = append(clubs, c)
	}
	return clubs, translateError(rows.Err())
}

func (r *clubRepository) Update(ctx context.Context, c *domain.Club) error {
	query := `UPDATE clubs SET name = $1, short_description = $2, long_description = $3, university = $4,
	          latitude = $5, longitude = $6 WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query, c.Name, c.ShortDescription, c.LongDescription, c.University, c.Latitude, c.Longitude, c.ID)
	if err != nil {
		return translateError(err)
	}
	return expectRows(result)
}

func (r *clubRepository) UpdateRatio(ctx context.Context, clubID int32, ratio float64, popularity int32) error {
	query := `UPDATE clubs SET ratio = $1, popularity = $2 WHERE id = $3`
	logger.DatabaseCall("UPDATE", "clubs.ratio", "clubID", clubID, "ratio", ratio, "popularity", popularity)

	result, err := r.db.ExecContext(ctx, query, ratio, popularity, clubID)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "clubID", clubID)
		return translateError(err)
	}
	err = expectRows(result)
	logger.DatabaseResult("UPDATE", 1, err, "clubID", clubID)
	return err
}
