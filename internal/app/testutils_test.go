package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/ljovanovic/movie-booking-api/api"
	"github.com/ljovanovic/movie-booking-api/internal/domain"
	"github.com/ljovanovic/movie-booking-api/internal/mailer"
	"github.com/ljovanovic/movie-booking-api/internal/mocks"
	"github.com/ljovanovic/movie-booking-api/internal/validator"
	"go.opentelemetry.io/otel/metric/noop"
)

func newTestApplication(opts ...func(*Application)) *Application {
	counter, _ := noop.NewMeterProvider().Meter("test").Int64Counter("reservation.outcomes")

	app := &Application{
		validator:           validator.NewValidator(),
		logger:              slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionManager:      scs.New(),
		mailer:              mailer.NewMockMailer(),
		movieRepo:           &mocks.MockMovieRepo{},
		catalogRepo:         &mocks.MockCatalogRepo{},
		airingRepo:          &mocks.MockAiringRepo{},
		reservationRepo:     &mocks.MockReservationRepo{},
		reservationOutcomes: counter,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// withBookingPageData stubs the three catalog reads the booking page
// contract is assembled from.
func withBookingPageData() func(*Application) {
	return func(app *Application) {
		app.movieRepo = &mocks.MockMovieRepo{
			GetAllFunc: func(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
				return testBookingMovies(), &domain.Metadata{}, nil
			},
			GetByIdFunc: func(ctx context.Context, id int) (*domain.Movie, error) {
				for _, m := range testBookingMovies() {
					if m.ID == id {
						return m, nil
					}
				}
				return nil, domain.ErrRecordNotFound
			},
		}
		app.catalogRepo = &mocks.MockCatalogRepo{
			GetCategoriesFunc: func(ctx context.Context) ([]domain.Category, error) {
				return []domain.Category{{ID: 1, Name: "Comedy"}, {ID: 2, Name: "Horror"}}, nil
			},
			GetHallsFunc: func(ctx context.Context) ([]domain.Hall, error) {
				return []domain.Hall{{ID: 1, Name: "Grand Hall"}, {ID: 2, Name: "Studio 2"}}, nil
			},
		}
	}
}

func testBookingMovies() []*domain.Movie {
	return []*domain.Movie{
		{ID: 1, Title: "The Long Night", Description: "A slow burn.", CategoryIDs: []int{2}},
		{ID: 2, Title: "Punchline", Description: "Stand-up gone wrong.", CategoryIDs: []int{1, 2}},
	}
}

func setupTestSession(t *testing.T, app *Application, r *http.Request) *http.Request {
	t.Helper()

	ctx, err := app.sessionManager.Load(r.Context(), "session")
	if err != nil {
		t.Errorf("Failed to load session: %v", err)
	}

	return r.WithContext(ctx)
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	jsonData, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, bytes.NewReader(jsonData))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func executeFormRequest(t *testing.T, target string, form url.Values) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	t.Helper()

	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
