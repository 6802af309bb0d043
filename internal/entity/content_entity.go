package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Kind values match the database enum spelling.
type Kind string

const (
	KindMovie  Kind = "film"
	KindSeries Kind = "dizi"
	KindBook   Kind = "kitap"
)

func (k Kind) String() string {
	return string(k)
}

type ApiSource string

const (
	ApiSourceTmdb        ApiSource = "tmdb"
	ApiSourceGoogleBooks ApiSource = "google_books"
	ApiSourceOther       ApiSource = "diger"
)

// ContentItem is the read-only catalog row consumed by the AI pipeline.
type ContentItem struct {
	Id              int64
	ExternalId      string
	ApiSource       ApiSource
	Kind            Kind
	Title           string
	Synopsis        string
	PosterUrl       string
	ReleaseDate     *time.Time
	AverageRating   float64
	RatingCount     int
	PopularityScore float64
	Metadata        datatypes.JSON
	IsDeleted       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (c *ContentItem) ReleaseYear() *int {
	if c.ReleaseDate == nil {
		return nil
	}
	y := c.ReleaseDate.Year()
	return &y
}

// SearchCandidate is the trimmed projection handed to an LLM prompt.
type SearchCandidate struct {
	Id          int64
	Title       string
	Kind        Kind
	ReleaseDate *time.Time
	Synopsis    string
	PosterUrl   string
}

func (c *ContentItem) ToCandidate() SearchCandidate {
	return SearchCandidate{
		Id:          c.Id,
		Title:       c.Title,
		Kind:        c.Kind,
		ReleaseDate: c.ReleaseDate,
		Synopsis:    c.Synopsis,
		PosterUrl:   c.PosterUrl,
	}
}
