// Package api holds the request and response types exchanged with clients.
package api

import "time"

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"request_id"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validation_errors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"system_info"`
}

type Metadata struct {
	CurrentPage  int `json:"current_page"`
	FirstPage    int `json:"first_page"`
	LastPage     int `json:"last_page"`
	PageSize     int `json:"page_size"`
	TotalRecords int `json:"total_records"`
}

type MovieSummary struct {
	Id          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PosterUrl   string `json:"poster_url"`
	CategoryIds []int  `json:"category_ids"`
}

type MovieListResponse struct {
	Movies   []MovieSummary `json:"movies"`
	Metadata *Metadata      `json:"metadata,omitempty"`
}

// GetMoviesParams are the decoded query parameters of the movie listing.
// Categories carries AND semantics: a movie must belong to every listed
// category to match.
type GetMoviesParams struct {
	Page       *int    `validate:"omitempty,min=1"`
	PageSize   *int    `validate:"omitempty,min=1,max=100"`
	Sort       *string `validate:"omitempty,oneof=id -id title -title"`
	Term       *string `validate:"omitempty,max=50"`
	Categories []int   `validate:"omitempty,dive,min=1"`
}

type CategoryTerm struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

// AiringInfo mirrors the legacy booking widget record for a single showing.
type AiringInfo struct {
	HallName         string `json:"hall_name"`
	RemainingTickets int    `json:"remaining_tickets"`
	DayOfWeek        string `json:"day_of_week"`
	AiringId         int    `json:"air_info_id"`
	TimeOfDay        string `json:"time_of_day"`
}

type MovieAiringsResponse struct {
	MovieId int          `json:"movie_id"`
	Airings []AiringInfo `json:"airings"`
}

// BookingPageResponse is the data contract consumed by the booking page.
// ReservationStatus is empty when no submission occurred.
type BookingPageResponse struct {
	Movies            []MovieSummary `json:"movies"`
	MovieCategories   []CategoryTerm `json:"movie_categories"`
	Halls             map[int]string `json:"halls"`
	CustomerName      string         `json:"customer_name"`
	ReservationStatus string         `json:"reservation_status"`
}
