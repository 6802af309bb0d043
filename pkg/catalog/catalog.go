// Package catalog wraps the third-party catalogs (TMDB, Google Books,
// Open Library) behind one normalized Item shape.
package catalog

import (
	"context"
	"strings"
)

type Source string

const (
	SourceTmdb        Source = "tmdb"
	SourceGoogleBooks Source = "google_books"
	SourceOpenLibrary Source = "open_library"
)

// Item is a normalized external search hit. It has no local id.
type Item struct {
	ExternalId  string   `json:"externalId"`
	Source      Source   `json:"source"`
	Kind        string   `json:"tur"`
	Title       string   `json:"baslik"`
	Authors     []string `json:"yazarlar,omitempty"`
	Synopsis    string   `json:"aciklama,omitempty"`
	ReleaseDate string   `json:"yayinTarihi,omitempty"`
	PosterUrl   string   `json:"posterUrl,omitempty"`
	Rating      float64  `json:"puan,omitempty"`
	VoteCount   int      `json:"oySayisi,omitempty"`
	PageCount   *int     `json:"sayfaSayisi,omitempty"`
	Categories  []string `json:"kategoriler,omitempty"`
}

// FirstAuthor returns the first listed author or "".
func (i Item) FirstAuthor() string {
	if len(i.Authors) == 0 {
		return ""
	}
	return i.Authors[0]
}

// DedupKey is lower-cased "title|first author". Distinct works sharing a
// title and first author collapse into one entry.
func (i Item) DedupKey() string {
	return strings.ToLower(strings.TrimSpace(i.Title)) + "|" + strings.ToLower(strings.TrimSpace(i.FirstAuthor()))
}

type MovieCatalog interface {
	SearchMovies(ctx context.Context, query string, page int) ([]Item, error)
	SearchSeries(ctx context.Context, query string, page int) ([]Item, error)
}

type BookCatalog interface {
	SearchBooks(ctx context.Context, query string, limit int) ([]Item, error)
}
