package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ljovanovic/movie-booking-api/internal/domain"
)

type PostgresAiringRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAiringRepository(db *pgxpool.Pool) *PostgresAiringRepository {
	return &PostgresAiringRepository{
		db: db,
	}
}

func (p *PostgresAiringRepository) GetBookableByMovie(ctx context.Context, movieID int) ([]domain.Airing, error) {
	// Undated airings are not bookable and stay out of the result set.
	query := `
		SELECT a.id, a.movie_id, a.hall_id, h.name, a.start_time,
			a.duration_secs, a.capacity, a.remaining_tickets
		FROM airings a
		JOIN halls h ON h.id = a.hall_id
		WHERE a.movie_id = $1
			AND a.remaining_tickets > 0
			AND a.start_time IS NOT NULL
		ORDER BY a.start_time, a.id`

	rows, err := p.db.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airings := make([]domain.Airing, 0)

	for rows.Next() {
		var airing domain.Airing

		err := rows.Scan(
			&airing.ID,
			&airing.MovieID,
			&airing.HallID,
			&airing.HallName,
			&airing.StartTime,
			&airing.DurationSecs,
			&airing.Capacity,
			&airing.RemainingTickets,
		)

		if err != nil {
			return nil, err
		}

		airings = append(airings, airing)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return airings, nil
}
