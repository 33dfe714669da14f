package app

import (
	"net/http"

	"github.com/ljovanovic/movie-booking-api/internal/export"
)

// ExportMovies serves the exportable slice of the catalog as an XML
// document for downstream syndication.
func (app *Application) ExportMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := app.movieRepo.GetExportable(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	out, err := export.Marshal(export.NewDocument(movies))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(out)
	if err != nil {
		app.contextGetLogger(r).Error("failed to write export document", "error", err)
	}
}
