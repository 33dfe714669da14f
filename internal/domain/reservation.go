package domain

import (
	"context"
	"strings"
	"time"
)

// Reservation is a booking record. Movie name, genre and air date are
// snapshots captured at booking time so the record survives later edits or
// deletion of the movie itself.
type Reservation struct {
	ID               int
	DayOfReservation string
	MovieName        string
	Genre            string
	CustomerName     string
	AirDate          *time.Time
	AiringID         int
	CreatedAt        time.Time
}

// MovieSnapshot carries the denormalized movie fields written into a
// reservation row.
type MovieSnapshot struct {
	Title      string
	Categories []string
}

// GenreLabel renders the legacy slash-terminated genre encoding, e.g.
// "Comedy/Horror/". Consumers of exported reservation records depend on
// this exact format.
func (s MovieSnapshot) GenreLabel() string {
	if len(s.Categories) == 0 {
		return ""
	}

	return strings.Join(s.Categories, "/") + "/"
}

// ReservationRequest is a validated booking submission.
type ReservationRequest struct {
	CustomerName string
	MovieID      int
	Day          string
	AiringID     int
}

// ReservationOutcome is the result of one reservation attempt.
type ReservationOutcome int

const (
	OutcomeRecorded ReservationOutcome = iota + 1
	OutcomeAlreadyReserved
	OutcomeNoTicketsAvailable
	OutcomeNegativeInventory
	OutcomeAiringNotFound
)

func (o ReservationOutcome) String() string {
	switch o {
	case OutcomeRecorded:
		return "recorded"
	case OutcomeAlreadyReserved:
		return "already reserved"
	case OutcomeNoTicketsAvailable:
		return "no tickets available"
	case OutcomeNegativeInventory:
		return "negative inventory"
	case OutcomeAiringNotFound:
		return "airing not found"
	default:
		return "unknown"
	}
}

// IntegrityFault reports whether the outcome signals a data problem that
// should never occur while Reserve is the sole inventory writer.
func (o ReservationOutcome) IntegrityFault() bool {
	return o == OutcomeNegativeInventory || o == OutcomeAiringNotFound
}

type ReservationRepository interface {
	// Reserve runs the booking transaction: it locks the airing row,
	// re-checks the duplicate rule, and on success decrements the
	// remaining-ticket count and inserts the reservation as one atomic
	// unit. A non-nil error means the store failed and nothing was
	// committed.
	Reserve(ctx context.Context, req ReservationRequest) (ReservationOutcome, *Reservation, error)

	// Exists reports whether the customer already holds a reservation for
	// the airing under the given movie name.
	Exists(ctx context.Context, customerName, movieName string, airingID int) (bool, error)
}
