package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	OpenLibraryBaseURL  = "https://openlibrary.org"
	openLibraryCoverURL = "https://covers.openlibrary.org/b"
	maxSubjects         = 10
)

type OpenLibraryClient struct {
	baseURL string
	fetch   *fetcher
}

var _ BookCatalog = &OpenLibraryClient{}

type openLibrarySearchResponse struct {
	Docs []struct {
		Key              string   `json:"key"`
		Title            string   `json:"title"`
		AuthorName       []string `json:"author_name"`
		FirstPublishYear *int     `json:"first_publish_year"`
		CoverId          *int     `json:"cover_i"`
		EditionKey       []string `json:"edition_key"`
		Isbn             []string `json:"isbn"`
		NumberOfPages    *int     `json:"number_of_pages_median"`
		Subject          []string `json:"subject"`
		RatingsAverage   float64  `json:"ratings_average"`
		RatingsCount     int      `json:"ratings_count"`
	} `json:"docs"`
}

func NewOpenLibraryClient(baseURL string, httpClient *http.Client) *OpenLibraryClient {
	if baseURL == "" {
		baseURL = OpenLibraryBaseURL
	}
	return &OpenLibraryClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetch:   newFetcher("open_library", httpClient),
	}
}

func (c *OpenLibraryClient) SearchBooks(ctx context.Context, query string, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = 20
	}
	q := url.Values{}
	q.Set("q", query)
	q.Set("page", "1")
	q.Set("limit", strconv.Itoa(limit))

	var resp openLibrarySearchResponse
	if err := c.fetch.getJSON(ctx, c.baseURL+"/search.json?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(resp.Docs))
	for _, d := range resp.Docs {
		if d.Title == "" {
			continue
		}
		externalId := strings.TrimPrefix(d.Key, "/works/")
		if externalId == "" && len(d.EditionKey) > 0 {
			externalId = d.EditionKey[0]
		}
		if externalId == "" {
			continue
		}

		item := Item{
			ExternalId: externalId,
			Source:     SourceOpenLibrary,
			Kind:       "kitap",
			Title:      d.Title,
			Authors:    d.AuthorName,
			PageCount:  d.NumberOfPages,
			Rating:     d.RatingsAverage,
			VoteCount:  d.RatingsCount,
			PosterUrl:  coverURL(d.CoverId, d.Isbn, d.EditionKey),
		}
		if d.FirstPublishYear != nil {
			item.ReleaseDate = strconv.Itoa(*d.FirstPublishYear)
		}
		if len(d.Subject) > 0 {
			n := len(d.Subject)
			if n > maxSubjects {
				n = maxSubjects
			}
			item.Categories = d.Subject[:n]
		}
		items = append(items, item)
	}
	return items, nil
}

// coverURL prefers the cover id, then ISBN, then the edition OLID.
func coverURL(coverId *int, isbn, editions []string) string {
	switch {
	case coverId != nil && *coverId > 0:
		return fmt.Sprintf("%s/id/%d-L.jpg", openLibraryCoverURL, *coverId)
	case len(isbn) > 0:
		return fmt.Sprintf("%s/isbn/%s-L.jpg", openLibraryCoverURL, isbn[0])
	case len(editions) > 0:
		return fmt.Sprintf("%s/olid/%s-L.jpg", openLibraryCoverURL, editions[0])
	}
	return ""
}
