package app

import "github.com/ljovanovic/movie-booking-api/internal/domain"

// Status codes surfaced to the booking page. These are a stable contract
// with the presentation layer and with any consumer of the legacy widget;
// do not rename them.
const (
	StatusNone              = ""
	StatusRecorded          = "recorded"
	StatusAlreadyReserved   = "already_reserved"
	StatusNoTickets         = "no_avail_tickets"
	StatusNegativeInventory = "num_tickets_negative"
	StatusMissingName       = "no_customer_name"
	StatusMissingSelection  = "no_selection"
	StatusAiringNotFound    = "airing_not_found"
	StatusFailed            = "reservation_failed"
)

// reservationStatus maps a transaction outcome to its status code. Pure,
// no side effects; logging of integrity faults happens at the call site.
func reservationStatus(outcome domain.ReservationOutcome) string {
	switch outcome {
	case domain.OutcomeRecorded:
		return StatusRecorded
	case domain.OutcomeAlreadyReserved:
		return StatusAlreadyReserved
	case domain.OutcomeNoTicketsAvailable:
		return StatusNoTickets
	case domain.OutcomeNegativeInventory:
		return StatusNegativeInventory
	case domain.OutcomeAiringNotFound:
		return StatusAiringNotFound
	default:
		return StatusFailed
	}
}
