// Package export converts export-flagged movie records into a generic
// tree-structured XML document.
package export

import (
	"encoding/xml"
	"time"

	"github.com/google/uuid"
	"github.com/ljovanovic/movie-booking-api/internal/domain"
)

type Document struct {
	XMLName     xml.Name `xml:"movies"`
	ExportID    string   `xml:"export_id,attr"`
	GeneratedAt string   `xml:"generated_at,attr"`
	Movies      []Movie  `xml:"movie"`
}

type Movie struct {
	ID          int      `xml:"id,attr"`
	Title       string   `xml:"title"`
	Description string   `xml:"description"`
	Image       string   `xml:"image"`
	Categories  []string `xml:"categories>category"`
}

// NewDocument builds an export document from the given movies, stamped
// with a fresh export id and generation timestamp.
func NewDocument(movies []domain.ExportMovie) Document {
	doc := Document{
		ExportID:    uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Movies:      make([]Movie, 0, len(movies)),
	}

	for _, m := range movies {
		doc.Movies = append(doc.Movies, Movie{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Image:       m.PosterUrl,
			Categories:  m.Categories,
		})
	}

	return doc
}

// Marshal renders the document with the standard XML header.
func Marshal(doc Document) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), body...), nil
}
