package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ljovanovic/movie-booking-api/api"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp":  {},
	"request_id": {},
	"created_at": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func executeAgainstRoutes(t testing.TB, app *TestApp, req *http.Request) *http.Response {
	t.Helper()

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	return rec.Result()
}

func formRequestBody(form url.Values) (io.Reader, map[string]string) {
	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}

	return strings.NewReader(form.Encode()), headers
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func decodeBookingResponse(t testing.TB, body io.Reader) api.BookingPageResponse {
	var resp api.BookingPageResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))

	return resp
}

// resetState empties every table and drops the catalog cache, so each
// scenario starts from a blank slate.
func resetState(t testing.TB, app *TestApp) {
	ctx := context.Background()

	_, err := app.DB.Exec(ctx, `
		TRUNCATE reservations, airings, movie_categories, movies, categories, halls
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	require.NoError(t, app.Redis.FlushAll(ctx).Err())
}

type testMovie struct {
	Title       string
	Description string
	PosterUrl   string
	Exportable  bool
	Categories  []string
}

func insertMovie(t testing.TB, db *pgxpool.Pool, m testMovie) int {
	ctx := context.Background()

	var movieID int
	err := db.QueryRow(ctx, `
		INSERT INTO movies (title, description, poster_url, exportable)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		m.Title, m.Description, m.PosterUrl, m.Exportable).Scan(&movieID)
	require.NoError(t, err)

	for _, category := range m.Categories {
		var categoryID int
		err = db.QueryRow(ctx, `
			INSERT INTO categories (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`,
			category).Scan(&categoryID)
		require.NoError(t, err)

		_, err = db.Exec(ctx, `
			INSERT INTO movie_categories (movie_id, category_id) VALUES ($1, $2)`,
			movieID, categoryID)
		require.NoError(t, err)
	}

	return movieID
}

func insertHall(t testing.TB, db *pgxpool.Pool, name string) int {
	var hallID int
	err := db.QueryRow(context.Background(),
		`INSERT INTO halls (name) VALUES ($1) RETURNING id`, name).Scan(&hallID)
	require.NoError(t, err)

	return hallID
}

func insertAiring(t testing.TB, db *pgxpool.Pool, movieID, hallID int, startTime *time.Time, remaining int) int {
	var airingID int
	err := db.QueryRow(context.Background(), `
		INSERT INTO airings (movie_id, hall_id, start_time, capacity, remaining_tickets)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		movieID, hallID, startTime, remaining, remaining).Scan(&airingID)
	require.NoError(t, err)

	return airingID
}

func remainingTickets(t testing.TB, db *pgxpool.Pool, airingID int) int {
	var remaining int
	err := db.QueryRow(context.Background(),
		`SELECT remaining_tickets FROM airings WHERE id = $1`, airingID).Scan(&remaining)
	require.NoError(t, err)

	return remaining
}

func countReservations(t testing.TB, db *pgxpool.Pool, airingID int) int {
	var count int
	err := db.QueryRow(context.Background(),
		`SELECT count(*) FROM reservations WHERE airing_id = $1`, airingID).Scan(&count)
	require.NoError(t, err)

	return count
}
