package app

import (
	"net/http"

	"github.com/ljovanovic/movie-booking-api/api"
	"github.com/ljovanovic/movie-booking-api/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSort     = "id"
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	params := app.readMoviesParams(r)

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters := toMovieFilters(params)

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies:   toMovieSummaries(movies),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) readMoviesParams(r *http.Request) api.GetMoviesParams {
	qs := r.URL.Query()

	params := api.GetMoviesParams{
		Categories: app.readCSVInts(qs, "categories"),
	}

	if qs.Get("page") != "" {
		params.Page = ptrTo(app.readInt(qs, "page", DefaultPage))
	}
	if qs.Get("pageSize") != "" {
		params.PageSize = ptrTo(app.readInt(qs, "pageSize", DefaultPageSize))
	}
	if qs.Get("sort") != "" {
		params.Sort = ptrTo(app.readString(qs, "sort", DefaultSort))
	}
	if qs.Get("term") != "" {
		params.Term = ptrTo(app.readString(qs, "term", ""))
	}

	return params
}

func toMovieFilters(params api.GetMoviesParams) domain.MovieFilters {
	filters := domain.MovieFilters{
		Page:        DefaultPage,
		PageSize:    DefaultPageSize,
		Sort:        DefaultSort,
		CategoryIDs: params.Categories,
	}

	if params.Page != nil {
		filters.Page = *params.Page
	}
	if params.PageSize != nil {
		filters.PageSize = *params.PageSize
	}
	if params.Sort != nil {
		filters.Sort = *params.Sort
	}
	if params.Term != nil {
		filters.Term = *params.Term
	}

	return filters
}

func toMovieSummaries(movies []*domain.Movie) []api.MovieSummary {
	summaries := make([]api.MovieSummary, len(movies))

	for i, movie := range movies {
		summaries[i] = toMovieSummary(movie)
	}

	return summaries
}

func toMovieSummary(movie *domain.Movie) api.MovieSummary {
	if movie == nil {
		return api.MovieSummary{}
	}

	return api.MovieSummary{
		Id:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		PosterUrl:   movie.PosterUrl,
		CategoryIds: movie.CategoryIDs,
	}
}

func toApiMetadata(metadata *domain.Metadata) *api.Metadata {
	if metadata == nil {
		return nil
	}

	return &api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}

func ptrTo[T any](v T) *T {
	return &v
}
