package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ljovanovic/movie-booking-api/internal/domain"
)

// errAiringVanished forces a rollback when the reservation insert hits a
// foreign-key violation. It cannot fire while the airing row is locked, but
// if it ever does the partial decrement must not survive.
var errAiringVanished = errors.New("airing disappeared during reservation")

// PostgresReservationRepository is the sole writer of
// airings.remaining_tickets and of reservation rows. Every mutation goes
// through Reserve, which serializes concurrent bookings of the same airing
// on a row lock.
type PostgresReservationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReservationRepository(db *pgxpool.Pool) *PostgresReservationRepository {
	return &PostgresReservationRepository{
		db: db,
	}
}

func (p *PostgresReservationRepository) Reserve(
	ctx context.Context,
	req domain.ReservationRequest) (domain.ReservationOutcome, *domain.Reservation, error) {

	var (
		outcome     domain.ReservationOutcome
		reservation *domain.Reservation
	)

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		// Lock the airing row for the rest of the transaction. Concurrent
		// bookings of the same airing queue up here, which is what makes
		// the read-decrement-insert sequence race free.
		query := `
			SELECT a.remaining_tickets, a.start_time, m.title
			FROM airings a
			JOIN movies m ON m.id = a.movie_id
			WHERE a.id = $1 AND a.movie_id = $2
			FOR UPDATE OF a`

		var (
			remaining int
			startTime *time.Time
			title     string
		)

		err := tx.QueryRow(ctx, query, req.AiringID, req.MovieID).Scan(&remaining, &startTime, &title)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				outcome = domain.OutcomeAiringNotFound
				return nil
			}

			return err
		}

		snapshot, err := loadMovieSnapshot(ctx, tx, req.MovieID, title)
		if err != nil {
			return err
		}

		// The pre-submission duplicate check is not sufficient under
		// concurrency; re-check while holding the lock.
		var exists bool

		query = `
			SELECT EXISTS(
				SELECT 1 FROM reservations
				WHERE customer_name = $1 AND reserved_movie_name = $2 AND airing_id = $3
			)`

		err = tx.QueryRow(ctx, query, req.CustomerName, snapshot.Title, req.AiringID).Scan(&exists)
		if err != nil {
			return err
		}

		if exists {
			outcome = domain.OutcomeAlreadyReserved
			return nil
		}

		switch {
		case remaining < 0:
			// Should be impossible while this method is the only writer;
			// surfaced distinctly so a concurrency bug cannot hide.
			outcome = domain.OutcomeNegativeInventory
			return nil
		case remaining == 0:
			outcome = domain.OutcomeNoTicketsAvailable
			return nil
		}

		_, err = tx.Exec(ctx,
			`UPDATE airings SET remaining_tickets = remaining_tickets - 1 WHERE id = $1`,
			req.AiringID)
		if err != nil {
			return err
		}

		r := domain.Reservation{
			DayOfReservation: req.Day,
			MovieName:        snapshot.Title,
			Genre:            snapshot.GenreLabel(),
			CustomerName:     req.CustomerName,
			AirDate:          startTime,
			AiringID:         req.AiringID,
		}

		query = `
			INSERT INTO reservations
				(day_of_reservation, reserved_movie_name, reserved_movie_genre,
				customer_name, movie_air_date, airing_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at`

		err = tx.QueryRow(ctx, query,
			r.DayOfReservation,
			r.MovieName,
			r.Genre,
			r.CustomerName,
			r.AirDate,
			r.AiringID).Scan(&r.ID, &r.CreatedAt)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
				return errAiringVanished
			}

			return err
		}

		outcome = domain.OutcomeRecorded
		reservation = &r

		return nil
	})

	if err != nil {
		if errors.Is(err, errAiringVanished) {
			return domain.OutcomeAiringNotFound, nil, nil
		}

		return 0, nil, err
	}

	return outcome, reservation, nil
}

func (p *PostgresReservationRepository) Exists(
	ctx context.Context,
	customerName, movieName string,
	airingID int) (bool, error) {

	query := `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE customer_name = $1 AND reserved_movie_name = $2 AND airing_id = $3
		)`

	var exists bool

	err := p.db.QueryRow(ctx, query, customerName, movieName, airingID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// loadMovieSnapshot captures the denormalized movie fields stored on the
// reservation row, so the record stays accurate if the movie is later
// edited or removed.
func loadMovieSnapshot(ctx context.Context, tx pgx.Tx, movieID int, title string) (domain.MovieSnapshot, error) {
	query := `
		SELECT c.name
		FROM movie_categories mc
		JOIN categories c ON c.id = mc.category_id
		WHERE mc.movie_id = $1
		ORDER BY c.id`

	rows, err := tx.Query(ctx, query, movieID)
	if err != nil {
		return domain.MovieSnapshot{}, err
	}
	defer rows.Close()

	categories := make([]string, 0)

	for rows.Next() {
		var name string

		err := rows.Scan(&name)
		if err != nil {
			return domain.MovieSnapshot{}, err
		}

		categories = append(categories, name)
	}

	if err = rows.Err(); err != nil {
		return domain.MovieSnapshot{}, err
	}

	return domain.MovieSnapshot{Title: title, Categories: categories}, nil
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}
