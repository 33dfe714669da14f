package app

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ljovanovic/movie-booking-api/api"
	"github.com/ljovanovic/movie-booking-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Legacy form field names consumed by the booking submission. Kept verbatim
// for compatibility with the existing booking widget.
const (
	formCustomerName = "movie_reservation.customer_name_validated"
	formMovieID      = "movie_reservation.movie_id_for_reservation"
	formDay          = "movie_reservation.day_for_reservation"
	formAiringID     = "movie_reservation.air_info_id"
)

// The booking page lists the full catalog; this caps a runaway one.
const bookingPageMovieLimit = 100

// bookingForm field order matters: validation failures are reported for
// the first failing field, and the name check must come before the
// selection checks.
type bookingForm struct {
	CustomerName string `validate:"notblank"`
	MovieID      int    `validate:"required,min=1"`
	Day          string `validate:"required"`
	AiringID     int    `validate:"required,min=1"`
}

func (app *Application) GetBookingPage(w http.ResponseWriter, r *http.Request) {
	resp, err := app.bookingPageResponse(r, StatusNone)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CreateReservation handles a booking submission: ordered validation, a
// read-time duplicate check, then the atomic reservation transaction. The
// result is always the booking page contract with reservation_status set;
// user input errors and business rejections are status codes, not HTTP
// faults.
func (app *Application) CreateReservation(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	err := r.ParseForm()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	form := bookingForm{
		CustomerName: strings.TrimSpace(r.PostForm.Get(formCustomerName)),
		Day:          r.PostForm.Get(formDay),
	}
	form.MovieID, _ = strconv.Atoi(r.PostForm.Get(formMovieID))
	form.AiringID, _ = strconv.Atoi(r.PostForm.Get(formAiringID))

	if status := app.validateBookingForm(form); status != StatusNone {
		logger.Warn("booking submission rejected", "status", status)
		app.respondWithStatus(w, r, http.StatusOK, status)
		return
	}

	// Read-time duplicate check. Not sufficient on its own under
	// concurrency, so the transaction re-checks it while holding the
	// airing lock.
	status, err := app.checkDuplicate(r.Context(), form)
	if err != nil {
		app.reservationFailed(w, r, err)
		return
	}

	if status != StatusNone {
		logger.Warn("duplicate reservation attempt", "airing_id", form.AiringID)
		app.respondWithStatus(w, r, http.StatusOK, status)
		return
	}

	req := domain.ReservationRequest{
		CustomerName: form.CustomerName,
		MovieID:      form.MovieID,
		Day:          form.Day,
		AiringID:     form.AiringID,
	}

	outcome, reservation, err := app.reservationRepo.Reserve(r.Context(), req)
	if err != nil {
		app.reservationFailed(w, r, err)
		return
	}

	status = reservationStatus(outcome)
	app.countOutcome(r.Context(), status)

	switch {
	case outcome == domain.OutcomeRecorded:
		logger.Info("reservation recorded",
			"reservation_id", reservation.ID,
			"airing_id", reservation.AiringID,
		)
		app.sessionManager.Put(r.Context(), SessionKeyCustomerName.String(), form.CustomerName)
	case outcome.IntegrityFault():
		logger.Error("reservation integrity fault",
			"outcome", outcome.String(),
			"airing_id", form.AiringID,
			"movie_id", form.MovieID,
		)
		app.sendIntegrityAlert(r, outcome, form)
	default:
		logger.Warn("reservation rejected", "status", status, "airing_id", form.AiringID)
	}

	app.respondWithStatus(w, r, http.StatusOK, status)
}

// validateBookingForm maps the first failing form field to its status
// code: a blank name short-circuits before the selection checks.
func (app *Application) validateBookingForm(form bookingForm) string {
	err := app.validator.Struct(form)
	if err == nil {
		return StatusNone
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return StatusMissingSelection
	}

	if validationErrors[0].Field() == "CustomerName" {
		return StatusMissingName
	}

	return StatusMissingSelection
}

func (app *Application) checkDuplicate(ctx context.Context, form bookingForm) (string, error) {
	movie, err := app.movieRepo.GetById(ctx, form.MovieID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			// Let the transaction surface this as airing_not_found.
			return StatusNone, nil
		}

		return StatusNone, err
	}

	exists, err := app.reservationRepo.Exists(ctx, form.CustomerName, movie.Title, form.AiringID)
	if err != nil {
		return StatusNone, err
	}

	if exists {
		return StatusAlreadyReserved, nil
	}

	return StatusNone, nil
}

// reservationFailed handles store faults around the transaction. The
// failure must never be reported as recorded, and must stay visible to
// operators.
func (app *Application) reservationFailed(w http.ResponseWriter, r *http.Request, err error) {
	app.contextGetLogger(r).Error("reservation transaction failed", "error", err)
	app.countOutcome(r.Context(), StatusFailed)
	app.respondWithStatus(w, r, http.StatusInternalServerError, StatusFailed)
}

func (app *Application) respondWithStatus(w http.ResponseWriter, r *http.Request, httpStatus int, status string) {
	resp, err := app.bookingPageResponse(r, status)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, httpStatus, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// bookingPageResponse assembles the data contract the booking page
// renders: movies, categories, the hall id to name mapping, the customer
// prefill from the session, and the reservation status of this request.
func (app *Application) bookingPageResponse(r *http.Request, status string) (api.BookingPageResponse, error) {
	ctx := r.Context()

	filters := domain.MovieFilters{
		Page:     DefaultPage,
		PageSize: bookingPageMovieLimit,
		Sort:     DefaultSort,
	}

	movies, _, err := app.movieRepo.GetAll(ctx, filters)
	if err != nil {
		return api.BookingPageResponse{}, err
	}

	categories, err := app.catalogRepo.GetCategories(ctx)
	if err != nil {
		return api.BookingPageResponse{}, err
	}

	halls, err := app.catalogRepo.GetHalls(ctx)
	if err != nil {
		return api.BookingPageResponse{}, err
	}

	categoryTerms := make([]api.CategoryTerm, len(categories))
	for i, c := range categories {
		categoryTerms[i] = api.CategoryTerm{Id: c.ID, Name: c.Name}
	}

	hallNames := make(map[int]string, len(halls))
	for _, h := range halls {
		hallNames[h.ID] = h.Name
	}

	return api.BookingPageResponse{
		Movies:            toMovieSummaries(movies),
		MovieCategories:   categoryTerms,
		Halls:             hallNames,
		CustomerName:      app.sessionManager.GetString(ctx, SessionKeyCustomerName.String()),
		ReservationStatus: status,
	}, nil
}

func (app *Application) countOutcome(ctx context.Context, status string) {
	app.reservationOutcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

// sendIntegrityAlert mails the operator about a data-integrity fault in
// the background; the booking response does not wait for SMTP.
func (app *Application) sendIntegrityAlert(r *http.Request, outcome domain.ReservationOutcome, form bookingForm) {
	recipient := app.config.SMTP.AlertRecipient
	if recipient == "" {
		return
	}

	go func(ctx context.Context) {
		gLogger := app.contextGetLogger(r.WithContext(ctx))

		defer func() {
			if err := recover(); err != nil {
				gLogger.Error("panic occurred during sending integrity alert", "panic", err)
			}
		}()

		data := map[string]any{
			"Outcome":    outcome.String(),
			"AiringID":   form.AiringID,
			"MovieID":    form.MovieID,
			"OccurredAt": time.Now().UTC().Format(time.RFC3339),
		}

		err := app.mailer.Send(recipient, "integrity_alert.tmpl", data)
		if err != nil {
			gLogger.Error("failed to send integrity alert mail", "error", err)
		}
	}(context.WithoutCancel(r.Context()))
}
