package domain

import (
	"context"
	"time"
)

// Airing is a scheduled showing of a movie. RemainingTickets is mutated
// exclusively by ReservationRepository.Reserve and never increases within
// a sales period; there is no refund path.
type Airing struct {
	ID               int
	MovieID          int
	HallID           int
	HallName         string
	StartTime        *time.Time
	DurationSecs     int
	Capacity         int
	RemainingTickets int
}

// AiringView is the record the booking widget renders for one showing.
type AiringView struct {
	HallName         string
	RemainingTickets int
	DayOfWeek        string
	AiringID         int
	TimeOfDay        string
}

// View derives the widget record from the airing's start datetime. The
// caller must ensure StartTime is set.
func (a Airing) View() AiringView {
	return AiringView{
		HallName:         a.HallName,
		RemainingTickets: a.RemainingTickets,
		DayOfWeek:        a.StartTime.Weekday().String(),
		AiringID:         a.ID,
		TimeOfDay:        a.StartTime.Format("15:04:05"),
	}
}

// BookableViews maps airings to widget records, dropping sold-out entries
// and entries without a start datetime. Undated airings are treated as not
// currently bookable rather than given a placeholder day. Input order is
// preserved.
func BookableViews(airings []Airing) []AiringView {
	views := make([]AiringView, 0, len(airings))

	for _, a := range airings {
		if a.RemainingTickets <= 0 || a.StartTime == nil {
			continue
		}

		views = append(views, a.View())
	}

	return views
}

type AiringRepository interface {
	// GetBookableByMovie returns the movie's airings that still have
	// tickets and a known start datetime, ordered by start datetime.
	GetBookableByMovie(ctx context.Context, movieID int) ([]Airing, error)
}
