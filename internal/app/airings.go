package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ljovanovic/movie-booking-api/api"
	"github.com/ljovanovic/movie-booking-api/internal/domain"
)

// GetMovieAirings returns the bookable showings of one movie. A movie with
// no bookable airings yields an empty list, not an error: that is a valid
// "not currently reservable" state.
func (app *Application) GetMovieAirings(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.Atoi(chi.URLParam(r, "movieID"))
	if err != nil || movieID < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("movie ID must be a positive integer"))
		return
	}

	_, err = app.movieRepo.GetById(r.Context(), movieID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	airings, err := app.airingRepo.GetBookableByMovie(r.Context(), movieID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieAiringsResponse{
		MovieId: movieID,
		Airings: toAiringInfos(domain.BookableViews(airings)),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toAiringInfos(views []domain.AiringView) []api.AiringInfo {
	infos := make([]api.AiringInfo, len(views))

	for i, v := range views {
		infos[i] = api.AiringInfo{
			HallName:         v.HallName,
			RemainingTickets: v.RemainingTickets,
			DayOfWeek:        v.DayOfWeek,
			AiringId:         v.AiringID,
			TimeOfDay:        v.TimeOfDay,
		}
	}

	return infos
}
