package domain

import (
	"context"
	"strings"
)

// Movie is reference data owned by content management; this service only
// reads it.
type Movie struct {
	ID          int
	Title       string
	Description string
	PosterUrl   string
	CategoryIDs []int
	Exportable  bool
}

type Category struct {
	ID   int
	Name string
}

type Hall struct {
	ID   int
	Name string
}

// ExportMovie is a movie prepared for the XML export, with category names
// resolved in place of ids.
type ExportMovie struct {
	ID          int
	Title       string
	Description string
	PosterUrl   string
	Categories  []string
}

type Metadata struct {
	CurrentPage  int
	FirstPage    int
	LastPage     int
	PageSize     int
	TotalRecords int
}

func NewMetadata(totalRecords, page, pageSize int) *Metadata {
	return &Metadata{
		CurrentPage:  page,
		FirstPage:    1,
		LastPage:     (totalRecords + pageSize - 1) / pageSize,
		PageSize:     pageSize,
		TotalRecords: totalRecords,
	}
}

// MovieFilters narrows the movie listing. CategoryIDs is intersective: a
// movie matches only if it belongs to all listed categories. Term matches
// as a title substring; an unknown category id simply yields no rows.
type MovieFilters struct {
	Page        int
	PageSize    int
	Term        string
	CategoryIDs []int
	Sort        string
}

func (f MovieFilters) SortColumn() string {
	return strings.TrimPrefix(f.Sort, "-")
}

func (f MovieFilters) SortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return "DESC"
	}

	return "ASC"
}

func (f MovieFilters) Limit() int {
	return f.PageSize
}

func (f MovieFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	GetExportable(ctx context.Context) ([]ExportMovie, error)
}

type CatalogRepository interface {
	GetCategories(ctx context.Context) ([]Category, error)
	GetHalls(ctx context.Context) ([]Hall, error)
}
