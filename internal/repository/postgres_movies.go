package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ljovanovic/movie-booking-api/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

// buildMovieListQuery assembles the listing query from an explicit
// predicate list. Each filter contributes one AND-ed condition; the
// category condition requires membership in every listed category, not
// merely one, which reproduces the intersective filter of the legacy
// system.
func buildMovieListQuery(filters domain.MovieFilters) (string, []any) {
	conds := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if filters.Term != "" {
		args = append(args, "%"+filters.Term+"%")
		conds = append(conds, fmt.Sprintf("m.title LIKE $%d", len(args)))
	}

	if len(filters.CategoryIDs) > 0 {
		args = append(args, filters.CategoryIDs)
		conds = append(conds, fmt.Sprintf(
			`m.id IN (
				SELECT mc.movie_id
				FROM movie_categories mc
				WHERE mc.category_id = ANY($%d)
				GROUP BY mc.movie_id
				HAVING COUNT(DISTINCT mc.category_id) = %d
			)`, len(args), len(filters.CategoryIDs)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT count(*) OVER(), m.id, m.title, m.description, m.poster_url,
			COALESCE((
				SELECT array_agg(mc.category_id ORDER BY mc.category_id)
				FROM movie_categories mc
				WHERE mc.movie_id = m.id
			), '{}')
		FROM movies m
		%s
		ORDER BY m.%s %s, m.id
		LIMIT $%d OFFSET $%d`,
		where, filters.SortColumn(), filters.SortDirection(), len(args)+1, len(args)+2)

	args = append(args, filters.Limit(), filters.Offset())

	return query, args
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
	query, args := buildMovieListQuery(filters)

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.PosterUrl,
			&movie.CategoryIDs,
		)

		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT m.id, m.title, m.description, m.poster_url, m.exportable,
			COALESCE((
				SELECT array_agg(mc.category_id ORDER BY mc.category_id)
				FROM movie_categories mc
				WHERE mc.movie_id = m.id
			), '{}')
		FROM movies m
		WHERE m.id = $1`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.PosterUrl,
		&movie.Exportable,
		&movie.CategoryIDs,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) GetExportable(ctx context.Context) ([]domain.ExportMovie, error) {
	query := `
		SELECT m.id, m.title, m.description, m.poster_url,
			COALESCE((
				SELECT array_agg(c.name ORDER BY c.id)
				FROM movie_categories mc
				JOIN categories c ON c.id = mc.category_id
				WHERE mc.movie_id = m.id
			), '{}')
		FROM movies m
		WHERE m.exportable
		ORDER BY m.id`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]domain.ExportMovie, 0)

	for rows.Next() {
		var movie domain.ExportMovie

		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.PosterUrl,
			&movie.Categories,
		)

		if err != nil {
			return nil, err
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}
